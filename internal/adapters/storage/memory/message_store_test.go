package memory_test

import (
	"context"
	"testing"

	memstore "github.com/reubstahh/cf-ai-chat/internal/adapters/storage/memory"
	"github.com/reubstahh/cf-ai-chat/internal/domain"
)

func TestAppendPreservesOrderAndContent(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewMessageStore()

	turns := []struct {
		role    domain.Role
		content string
	}{
		{domain.RoleUser, "first"},
		{domain.RoleAssistant, "second"},
		{domain.RoleUser, "third with spaces  and \"quotes\""},
	}

	for _, turn := range turns {
		if err := store.AppendMessage(ctx, "s1", turn.role, turn.content); err != nil {
			t.Fatalf("AppendMessage failed: %v", err)
		}
	}

	msgs, err := store.History(ctx, "s1")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(msgs) != len(turns) {
		t.Fatalf("expected %d messages, got %d", len(turns), len(msgs))
	}

	var lastSeq int64
	for i, m := range msgs {
		if m.Role != turns[i].role || m.Content != turns[i].content {
			t.Fatalf("message %d: got {%s %q}, want {%s %q}", i, m.Role, m.Content, turns[i].role, turns[i].content)
		}
		if m.Sequence <= lastSeq {
			t.Fatalf("message %d: sequence %d not strictly increasing after %d", i, m.Sequence, lastSeq)
		}
		lastSeq = m.Sequence
	}
}

func TestHistoryOnUnknownSessionIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewMessageStore()

	msgs, err := store.History(ctx, "never-written")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("expected empty history, got %d messages", len(msgs))
	}
}

func TestClearStartsAFreshLog(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewMessageStore()

	if err := store.AppendMessage(ctx, "s1", domain.RoleUser, "old"); err != nil {
		t.Fatalf("AppendMessage failed: %v", err)
	}
	if err := store.Clear(ctx, "s1"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	msgs, err := store.History(ctx, "s1")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("expected empty history after clear, got %d messages", len(msgs))
	}

	if err := store.AppendMessage(ctx, "s1", domain.RoleUser, "new"); err != nil {
		t.Fatalf("AppendMessage failed: %v", err)
	}
	msgs, err = store.History(ctx, "s1")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Content != "new" {
		t.Fatalf("expected only the fresh message, got %v", msgs)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewMessageStore()

	if err := store.AppendMessage(ctx, "a", domain.RoleUser, "for a"); err != nil {
		t.Fatalf("AppendMessage failed: %v", err)
	}

	msgs, err := store.History(ctx, "b")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("session b should not see session a's messages, got %d", len(msgs))
	}
}
