package sqlite

const createTable = `
CREATE TABLE IF NOT EXISTS messages (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  session_id TEXT NOT NULL,
  role TEXT NOT NULL,
  content TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL
);`

const createSessionIndex = `
CREATE INDEX IF NOT EXISTS idx_messages_session_id ON messages (session_id);`

const insertMessage = `
INSERT INTO messages (session_id, role, content, created_at)
VALUES (?, ?, ?, ?);`

const selectBySession = `
SELECT id, role, content, created_at
FROM messages
WHERE session_id = ?
ORDER BY id ASC;`

const deleteBySession = `
DELETE FROM messages
WHERE session_id = ?;`
