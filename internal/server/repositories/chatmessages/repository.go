package chatmessages

import (
	"context"

	"github.com/orionapp/companion/internal/server/models"
)

// Repository persists chatbot conversations. Append trims the history so
// each user keeps at most HistoryLimit messages.
type Repository interface {
	Append(ctx context.Context, msg *models.ChatMessage) (*models.ChatMessage, error)
	ListByUser(ctx context.Context, userID string) ([]*models.ChatMessage, error)
	Clear(ctx context.Context, userID string) error
	Stats(ctx context.Context, userID string) (*models.ChatStats, error)
}

// HistoryLimit is the maximum number of messages kept per user. Older
// messages are pruned on append.
const HistoryLimit = 50
