package service

import (
	"context"
	"fmt"
	"strings"

	"go-coach-app/internal/apperr"
	"go-coach-app/internal/data"
	"go-coach-app/internal/logger"
)

// ChatMessageRepository defines the interface for the conversation log.
type ChatMessageRepository interface {
	Create(ctx context.Context, msg *data.ChatMessage) error
	ListByUser(ctx context.Context, userID int64) ([]data.ChatMessage, error)
	DeleteByUser(ctx context.Context, userID int64) error
}

// Completer generates an assistant reply from a conversation history.
type Completer interface {
	Complete(ctx context.Context, history []data.ChatMessage) (string, error)
}

// ChatService proxies conversations to the completion service and persists
// both sides of each exchange.
type ChatService struct {
	repo      ChatMessageRepository
	completer Completer
	log       logger.Logger
}

// NewChatService creates a new ChatService.
func NewChatService(repo ChatMessageRepository, completer Completer, log logger.Logger) *ChatService {
	return &ChatService{repo: repo, completer: completer, log: log}
}

// List returns the caller's conversation history in creation order.
func (s *ChatService) List(ctx context.Context, userID int64) ([]data.ChatMessage, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Send persists the user's turn, asks the completion service for a reply
// over the full history, and persists the assistant's turn. When the remote
// call fails the user turn stays persisted, no assistant row is written, and
// the failure is surfaced as an upstream error.
func (s *ChatService) Send(ctx context.Context, userID int64, content string) ([]data.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.New(apperr.Validation, "Content is required.")
	}

	userMsg := &data.ChatMessage{UserID: userID, Role: data.RoleUser, Content: content}
	if err := s.repo.Create(ctx, userMsg); err != nil {
		return nil, err
	}

	history, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	reply, err := s.completer.Complete(ctx, history)
	if err != nil {
		s.log.Error(err, "completion service call failed")
		return nil, apperr.Wrap(apperr.Upstream, "Failed to get response from AI.", err)
	}

	assistantMsg := &data.ChatMessage{UserID: userID, Role: data.RoleAssistant, Content: reply}
	if err := s.repo.Create(ctx, assistantMsg); err != nil {
		return nil, err
	}

	return []data.ChatMessage{*userMsg, *assistantMsg}, nil
}

// Clear deletes the caller's history only.
func (s *ChatService) Clear(ctx context.Context, userID int64) error {
	if err := s.repo.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	s.log.Info(fmt.Sprintf("cleared chat history for user %d", userID))
	return nil
}
