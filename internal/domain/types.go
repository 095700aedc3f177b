package domain

import "time"

type SessionID string

// DefaultSessionID is used whenever a caller omits the session id.
const DefaultSessionID SessionID = "default"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is a single turn in a session's conversation log.
// Immutable once appended: the store that created it owns it.
type Message struct {
	Role      Role
	Content   string
	Sequence  int64
	CreatedAt time.Time
}
