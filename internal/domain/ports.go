package domain

import (
	"context"
	"errors"
)

// ErrEmptyMessage is returned when a chat turn is attempted with no content.
var ErrEmptyMessage = errors.New("message is required")

// LLMClient defines how the core application talks to a hosted model.
// The input is the full ordered conversation, system preamble included.
type LLMClient interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// MessageStore defines the per-session ordered message log.
//
// A session is created implicitly by its first AppendMessage; History on an
// unknown session returns an empty log, never an error. Within one session,
// Sequence values are strictly increasing and never reused while messages
// exist (Clear may reset the counter).
type MessageStore interface {
	AppendMessage(ctx context.Context, sessionID SessionID, role Role, content string) error
	History(ctx context.Context, sessionID SessionID) ([]Message, error)
	Clear(ctx context.Context, sessionID SessionID) error
}
