package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/reubstahh/cf-ai-chat/internal/domain"
)

const workersAIBaseURL = "https://api.cloudflare.com/client/v4"

// missingCompletionReply stands in when the model answered but the response
// shape is missing the completion text. An unexpected shape is degraded, not
// treated as an error.
const missingCompletionReply = "Sorry, I couldn't generate a response."

// WorkersAIClient calls the Cloudflare Workers AI REST endpoint.
// Transport and HTTP errors propagate untouched: no retry, no backoff.
type WorkersAIClient struct {
	httpClient *http.Client
	baseURL    string
	accountID  string
	apiToken   string
	model      string
}

func NewWorkersAIClient(accountID, apiToken, model string) (*WorkersAIClient, error) {
	if accountID == "" || apiToken == "" {
		return nil, fmt.Errorf("accountID and apiToken are required for Workers AI")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required for Workers AI")
	}

	return &WorkersAIClient{
		// No client timeout: a slow model call holds its request until the
		// transport gives up, matching the rest of the pipeline.
		httpClient: &http.Client{},
		baseURL:    workersAIBaseURL,
		accountID:  accountID,
		apiToken:   apiToken,
		model:      model,
	}, nil
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type runRequest struct {
	Messages []wireMessage `json:"messages"`
}

type runResponse struct {
	Result struct {
		Response *string `json:"response"`
	} `json:"result"`
	Success bool `json:"success"`
	Errors  []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// Complete implements domain.LLMClient against /accounts/{id}/ai/run/{model}.
func (c *WorkersAIClient) Complete(ctx context.Context, messages []domain.Message) (string, error) {
	body := runRequest{Messages: make([]wireMessage, 0, len(messages))}
	for _, m := range messages {
		body.Messages = append(body.Messages, wireMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode workers ai request: %w", err)
	}

	url := fmt.Sprintf("%s/accounts/%s/ai/run/%s", c.baseURL, c.accountID, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build workers ai request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("workers ai request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read workers ai response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("workers ai returned status %d: %s", resp.StatusCode, raw)
	}

	var out runResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode workers ai response: %w", err)
	}

	if !out.Success {
		if len(out.Errors) > 0 {
			return "", fmt.Errorf("workers ai error %d: %s", out.Errors[0].Code, out.Errors[0].Message)
		}
		return "", fmt.Errorf("workers ai reported failure with no error detail")
	}

	if out.Result.Response == nil {
		return missingCompletionReply, nil
	}
	return *out.Result.Response, nil
}
