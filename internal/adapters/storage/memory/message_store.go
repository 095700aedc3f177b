package memory

import (
	"context"
	"sync"
	"time"

	"github.com/reubstahh/cf-ai-chat/internal/domain"
)

// MessageStore is an in-memory implementation of domain.MessageStore.
// It is NOT persistent and is only suitable for development / local mode.
type MessageStore struct {
	mu       sync.RWMutex
	messages map[domain.SessionID][]domain.Message
	nextSeq  map[domain.SessionID]int64
}

func NewMessageStore() *MessageStore {
	return &MessageStore{
		messages: make(map[domain.SessionID][]domain.Message),
		nextSeq:  make(map[domain.SessionID]int64),
	}
}

func (s *MessageStore) AppendMessage(ctx context.Context, sessionID domain.SessionID, role domain.Role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.nextSeq[sessionID] + 1
	s.nextSeq[sessionID] = seq

	s.messages[sessionID] = append(s.messages[sessionID], domain.Message{
		Role:      role,
		Content:   content,
		Sequence:  seq,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

func (s *MessageStore) History(ctx context.Context, sessionID domain.SessionID) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages[sessionID]

	// Defensive copy: callers must never see later appends through the slice.
	out := make([]domain.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (s *MessageStore) Clear(ctx context.Context, sessionID domain.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.messages, sessionID)
	delete(s.nextSeq, sessionID)
	return nil
}
