package llm

import (
	"context"
	"fmt"

	"github.com/reubstahh/cf-ai-chat/internal/domain"
)

type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

// Complete echoes the latest user message, so local dev gets deterministic
// replies without any hosted model.
func (m *MockLLM) Complete(ctx context.Context, messages []domain.Message) (string, error) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == domain.RoleUser {
			return fmt.Sprintf("You said %q. Tell me more.", messages[i].Content), nil
		}
	}
	return "Hello! How can I help you today?", nil
}
