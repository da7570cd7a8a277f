// Package chat wraps the external text-completion service used by the
// assistant. The wire protocol is the OpenAI-compatible chat completion API;
// the base URL is configurable so any compatible host works.
package chat

import (
	"context"
	"fmt"

	"go-coach-app/internal/config"
	"go-coach-app/internal/data"

	openai "github.com/sashabaranov/go-openai"
)

// Client forwards a conversation history plus the fixed system instruction
// to the completion service and returns the assistant's reply text.
type Client struct {
	api          *openai.Client
	model        string
	maxTokens    int
	systemPrompt string
}

// NewClient creates a completion client from configuration.
func NewClient(cfg config.ChatConfig) *Client {
	apiConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiConfig.BaseURL = cfg.BaseURL
	}
	return &Client{
		api:          openai.NewClientWithConfig(apiConfig),
		model:        cfg.Model,
		maxTokens:    cfg.MaxTokens,
		systemPrompt: cfg.SystemPrompt,
	}
}

// Complete sends the full ordered history and returns the reply text.
func (c *Client) Complete(ctx context.Context, history []data.ChatMessage) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: c.systemPrompt,
	})
	for _, msg := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages:  messages,
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion response contained no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
