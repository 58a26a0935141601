package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SaiNageswarS/bible-rag-custom-gpt/model"
)

const defaultChatTimeout = 60 * time.Second

// Model is the opaque chat-generation capability. The raw response shape is
// provider-specific; ExtractText knows how to read it.
type Model interface {
	Generate(ctx context.Context, history []model.ChatMessage) (any, error)
}

// ChatClient talks to an OpenAI-compatible chat-completions endpoint. The
// response body is decoded loosely so extraction can handle the shape
// variations different providers and API revisions produce.
type ChatClient struct {
	endpoint  string
	apiKey    string
	model     string
	maxTokens int
	client    *http.Client
}

func NewChatClient(endpoint, apiKey, chatModel string, maxTokens int) *ChatClient {
	return &ChatClient{
		endpoint:  strings.TrimSpace(endpoint),
		apiKey:    strings.TrimSpace(apiKey),
		model:     chatModel,
		maxTokens: maxTokens,
		client:    &http.Client{Timeout: defaultChatTimeout},
	}
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens,omitempty"`
	Messages  []wireMessage `json:"messages"`
}

// Generate sends the assembled history and returns the decoded response.
func (c *ChatClient) Generate(ctx context.Context, history []model.ChatMessage) (any, error) {
	if c.endpoint == "" || c.apiKey == "" {
		return nil, errors.New("chat model is not configured")
	}

	payload := chatRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages:  make([]wireMessage, 0, len(history)),
	}
	for _, m := range history {
		role := m.Role
		if role == model.RoleModel {
			role = "assistant"
		}
		payload.Messages = append(payload.Messages, wireMessage{Role: role, Content: m.Content})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Error bodies may echo request internals; report only the status.
		return nil, fmt.Errorf("chat endpoint returned status %d", resp.StatusCode)
	}

	var decoded any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}
	return decoded, nil
}
