package chat

import (
	"context"
	"fmt"

	"github.com/reubstahh/cf-ai-chat/internal/domain"
	"github.com/reubstahh/cf-ai-chat/internal/observability"
)

// Service orchestrates chat turns over a message store and a hosted model.
//
// Every operation runs under a per-session lock, so calls targeting the same
// session id are totally ordered and never interleave their storage effects.
// Calls for different session ids are independent.
type Service struct {
	llm   domain.LLMClient
	store domain.MessageStore
	locks *sessionLocks
}

func NewService(llm domain.LLMClient, store domain.MessageStore) *Service {
	return &Service{
		llm:   llm,
		store: store,
		locks: newSessionLocks(),
	}
}

// Chat appends the user message, sends the full history (with the system
// preamble prepended) to the model, appends the reply and returns it.
//
// If the model call fails the error propagates and the user message stays
// persisted without an assistant turn; partial progress is kept on purpose,
// there is no rollback and no retry.
func (s *Service) Chat(ctx context.Context, sessionID domain.SessionID, userMessage string) (string, error) {
	if userMessage == "" {
		return "", domain.ErrEmptyMessage
	}

	mu := s.locks.acquire(sessionID)
	defer mu.Unlock()

	log := observability.LoggerFromContext(ctx).With("session_id", sessionID)
	log.Info("chat turn started")

	if err := s.store.AppendMessage(ctx, sessionID, domain.RoleUser, userMessage); err != nil {
		log.Error("failed to append user message", "error", err)
		return "", fmt.Errorf("append user message: %w", err)
	}

	history, err := s.store.History(ctx, sessionID)
	if err != nil {
		log.Error("failed to load history", "error", err)
		return "", fmt.Errorf("load history: %w", err)
	}

	input := make([]domain.Message, 0, len(history)+1)
	input = append(input, domain.Message{Role: domain.RoleSystem, Content: systemPrompt})
	input = append(input, history...)

	reply, err := s.llm.Complete(ctx, input)
	if err != nil {
		log.Error("model call failed", "error", err)
		return "", fmt.Errorf("complete: %w", err)
	}

	if err := s.store.AppendMessage(ctx, sessionID, domain.RoleAssistant, reply); err != nil {
		log.Error("failed to append assistant message", "error", err)
		return "", fmt.Errorf("append assistant message: %w", err)
	}

	log.Info("chat turn completed", "history_len", len(history)+1)

	return reply, nil
}

// History returns the session's log in insertion order.
func (s *Service) History(ctx context.Context, sessionID domain.SessionID) ([]domain.Message, error) {
	mu := s.locks.acquire(sessionID)
	defer mu.Unlock()

	msgs, err := s.store.History(ctx, sessionID)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("failed to load history", "session_id", sessionID, "error", err)
		return nil, fmt.Errorf("load history: %w", err)
	}
	return msgs, nil
}

// Clear removes every message for the session. The session id itself is not
// deleted; the next append starts a fresh log.
func (s *Service) Clear(ctx context.Context, sessionID domain.SessionID) error {
	mu := s.locks.acquire(sessionID)
	defer mu.Unlock()

	if err := s.store.Clear(ctx, sessionID); err != nil {
		observability.LoggerFromContext(ctx).Error("failed to clear session", "session_id", sessionID, "error", err)
		return fmt.Errorf("clear session: %w", err)
	}

	observability.LoggerFromContext(ctx).Info("session cleared", "session_id", sessionID)
	return nil
}
