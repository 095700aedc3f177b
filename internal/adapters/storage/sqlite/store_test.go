package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	sqlitestore "github.com/reubstahh/cf-ai-chat/internal/adapters/storage/sqlite"
	"github.com/reubstahh/cf-ai-chat/internal/domain"
)

func newTestStore(t *testing.T) *sqlitestore.Store {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening in-memory sqlite: %v", err)
	}

	store := sqlitestore.NewStore(db)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})

	return store
}

func TestAppendPreservesOrderAndContent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	turns := []struct {
		role    domain.Role
		content string
	}{
		{domain.RoleUser, "hello"},
		{domain.RoleAssistant, "hi there"},
		{domain.RoleUser, "tell me more"},
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

func TestClearRemovesOnlyThatSession(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.AppendMessage(ctx, "a", domain.RoleUser, "for a"); err != nil {
		t.Fatalf("AppendMessage failed: %v", err)
	}
	if err := store.AppendMessage(ctx, "b", domain.RoleUser, "for b"); err != nil {
		t.Fatalf("AppendMessage failed: %v", err)
	}

	if err := store.Clear(ctx, "a"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	msgsA, err := store.History(ctx, "a")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(msgsA) != 0 {
		t.Fatalf("expected empty history for a, got %d messages", len(msgsA))
	}

	msgsB, err := store.History(ctx, "b")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(msgsB) != 1 || msgsB[0].Content != "for b" {
		t.Fatalf("session b's log should be untouched, got %v", msgsB)
	}
}

func TestHistoryOnUnknownSessionIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	msgs, err := store.History(ctx, "never-written")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("expected empty history, got %d messages", len(msgs))
	}
}
