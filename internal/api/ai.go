package api

import (
	"context"
	"net/http"

	"estatecli/internal/model"
)

// AssistantAPI covers the chat conversation and staff prompt templates.
type AssistantAPI interface {
	History(ctx context.Context) ([]model.Message, error)
	CreateConversation(ctx context.Context) error
	Send(ctx context.Context, content string) (model.Message, error)
	Prompts(ctx context.Context) ([]model.Prompt, error)
	UpdatePrompt(ctx context.Context, p model.Prompt) error
}

// History returns the conversation's messages. A 404 means the backend has
// not lazily created the conversation yet; callers recover via
// CreateConversation and a single retry.
func (a *Client) History(ctx context.Context) ([]model.Message, error) {
	var out []model.Message
	err := a.c.Do(ctx, http.MethodGet, "/api/ai/conversations/messages", nil, &out)
	return out, err
}

func (a *Client) CreateConversation(ctx context.Context) error {
	return a.c.Do(ctx, http.MethodPost, "/api/ai/conversations", nil, nil)
}

// Send posts a user turn and returns the AI's reply turn.
func (a *Client) Send(ctx context.Context, content string) (model.Message, error) {
	var reply model.Message
	err := a.c.Do(ctx, http.MethodPost, "/api/ai/conversations/messages",
		map[string]string{"content": content}, &reply)
	return reply, err
}

func (a *Client) Prompts(ctx context.Context) ([]model.Prompt, error) {
	var out []model.Prompt
	err := a.c.Do(ctx, http.MethodGet, "/api/ai/system-prompts", nil, &out)
	return out, err
}

func (a *Client) UpdatePrompt(ctx context.Context, p model.Prompt) error {
	return a.c.Do(ctx, http.MethodPut, "/api/ai/system-prompt", p, nil)
}
