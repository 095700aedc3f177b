package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/reubstahh/cf-ai-chat/internal/domain"
)

// Store is a SQLite-backed domain.MessageStore: one append-only messages
// table, keyed by session_id and ordered by the auto-increment id.
//
// AUTOINCREMENT ids are never reused, which carries the "sequence values are
// never reused" invariant across process restarts.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Init creates the messages table and its session index if needed.
func (s *Store) Init() error {
	if _, err := s.db.Exec(createTable); err != nil {
		return fmt.Errorf("sqlite create messages table: %w", err)
	}
	if _, err := s.db.Exec(createSessionIndex); err != nil {
		return fmt.Errorf("sqlite create session index: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) AppendMessage(ctx context.Context, sessionID domain.SessionID, role domain.Role, content string) error {
	_, err := s.db.ExecContext(ctx, insertMessage, string(sessionID), string(role), content, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("sqlite insert message: %w", err)
	}
	return nil
}

func (s *Store) History(ctx context.Context, sessionID domain.SessionID) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx, selectBySession, string(sessionID))
	if err != nil {
		return nil, fmt.Errorf("sqlite select messages: %w", err)
	}
	defer rows.Close()

	out := []domain.Message{}
	for rows.Next() {
		var (
			m    domain.Message
			role string
		)
		if err := rows.Scan(&m.Sequence, &role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite scan message row: %w", err)
		}
		m.Role = domain.Role(role)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite iterate message rows: %w", err)
	}

	return out, nil
}

func (s *Store) Clear(ctx context.Context, sessionID domain.SessionID) error {
	if _, err := s.db.ExecContext(ctx, deleteBySession, string(sessionID)); err != nil {
		return fmt.Errorf("sqlite delete messages: %w", err)
	}
	return nil
}
