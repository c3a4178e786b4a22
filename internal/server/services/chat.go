package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/orionapp/companion/internal/common"
	"github.com/orionapp/companion/internal/server/models"
	"github.com/orionapp/companion/internal/server/repositories/repomanager"
)

// ChatService persists chatbot conversations. The bot replies are produced
// on the device; the server only stores both sides of the exchange.
type ChatService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewChatService(db *sql.DB, m repomanager.RepositoryManager) *ChatService {
	return &ChatService{db: db, repomanager: m}
}

// SaveMessage appends one message. The repository trims the history so at
// most the newest 50 messages survive.
func (s *ChatService) SaveMessage(ctx context.Context, userID, text string, isBot bool) (*models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, common.NewValidationError("Message text is required")
	}
	if len(text) > 1000 {
		return nil, common.NewValidationError("Message text cannot exceed 1000 characters")
	}

	msg, err := s.repomanager.ChatMessages(s.db).Append(ctx, &models.ChatMessage{
		UserID: userID,
		Text:   text,
		IsBot:  isBot,
	})
	if err != nil {
		return nil, fmt.Errorf("saving chat message: %w", err)
	}
	return msg, nil
}

func (s *ChatService) History(ctx context.Context, userID string) ([]*models.ChatMessage, error) {
	return s.repomanager.ChatMessages(s.db).ListByUser(ctx, userID)
}

func (s *ChatService) ClearHistory(ctx context.Context, userID string) error {
	return s.repomanager.ChatMessages(s.db).Clear(ctx, userID)
}

func (s *ChatService) Stats(ctx context.Context, userID string) (*models.ChatStats, error) {
	return s.repomanager.ChatMessages(s.db).Stats(ctx, userID)
}
