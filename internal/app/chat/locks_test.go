package chat_test

import (
	"context"
	"sync"
	"testing"

	"github.com/reubstahh/cf-ai-chat/internal/adapters/llm"
	memstore "github.com/reubstahh/cf-ai-chat/internal/adapters/storage/memory"
	"github.com/reubstahh/cf-ai-chat/internal/app/chat"
	"github.com/reubstahh/cf-ai-chat/internal/domain"
)

// Concurrent chats against one session must serialize: every user turn is
// immediately followed by its assistant turn, never interleaved with another
// chat's appends.
func TestConcurrentChatsSameSessionStayOrdered(t *testing.T) {
	ctx := context.Background()
	svc := chat.NewService(llm.NewMockLLM(), memstore.NewMessageStore())

	const turns = 20

	var wg sync.WaitGroup
	errs := make(chan error, turns)
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Chat(ctx, "shared", "ping"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("Chat failed: %v", err)
	}

	msgs, err := svc.History(ctx, "shared")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(msgs) != 2*turns {
		t.Fatalf("expected %d messages, got %d", 2*turns, len(msgs))
	}

	var lastSeq int64
	for i, m := range msgs {
		want := domain.RoleUser
		if i%2 == 1 {
			want = domain.RoleAssistant
		}
		if m.Role != want {
			t.Fatalf("message %d: got role %s, want %s", i, m.Role, want)
		}
		if m.Sequence <= lastSeq {
			t.Fatalf("message %d: sequence %d not strictly increasing after %d", i, m.Sequence, lastSeq)
		}
		lastSeq = m.Sequence
	}
}

// Chats on different sessions must not block each other's logs from forming
// correctly.
func TestConcurrentChatsDifferentSessions(t *testing.T) {
	ctx := context.Background()
	svc := chat.NewService(llm.NewMockLLM(), memstore.NewMessageStore())

	sessions := []domain.SessionID{"s1", "s2", "s3", "s4"}

	var wg sync.WaitGroup
	for _, id := range sessions {
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func(id domain.SessionID) {
				defer wg.Done()
				if _, err := svc.Chat(ctx, id, "hello"); err != nil {
					t.Errorf("Chat(%s) failed: %v", id, err)
				}
			}(id)
		}
	}
	wg.Wait()

	for _, id := range sessions {
		msgs, err := svc.History(ctx, id)
		if err != nil {
			t.Fatalf("History(%s) failed: %v", id, err)
		}
		if len(msgs) != 10 {
			t.Fatalf("session %s: expected 10 messages, got %d", id, len(msgs))
		}
	}
}
