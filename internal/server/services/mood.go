package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/orionapp/companion/internal/common"
	"github.com/orionapp/companion/internal/server/models"
	"github.com/orionapp/companion/internal/server/repositories/repomanager"
)

// musicRecommendations is the static mood to playlist table. Unknown moods
// get an empty list, not an error.
var musicRecommendations = map[string][]string{
	"happy":    {"Upbeat Pop", "Dance Hits", "Feel Good Indie"},
	"sad":      {"Chill Acoustic", "Soft Piano", "Emotional Ballads"},
	"stressed": {"Relaxing Instrumentals", "Nature Sounds", "Calm Lo-Fi"},
	"relaxed":  {"Ambient", "Jazz", "Chillhop"},
}

// MoodService records mood selections and serves the static music
// recommendation table.
type MoodService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewMoodService(db *sql.DB, m repomanager.RepositoryManager) *MoodService {
	return &MoodService{db: db, repomanager: m}
}

func (s *MoodService) Log(ctx context.Context, userID, mood string) (*models.MoodLog, error) {
	mood = strings.ToLower(strings.TrimSpace(mood))
	if mood == "" {
		return nil, common.NewValidationError("User and mood required")
	}

	log, err := s.repomanager.MoodLogs(s.db).Create(ctx, &models.MoodLog{
		UserID: userID,
		Mood:   mood,
	})
	if err != nil {
		return nil, fmt.Errorf("saving mood: %w", err)
	}
	return log, nil
}

// Latest returns the user's most recent mood, or nil if none was logged.
func (s *MoodService) Latest(ctx context.Context, userID string) (*models.MoodLog, error) {
	log, err := s.repomanager.MoodLogs(s.db).LatestByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return log, nil
}

func (s *MoodService) History(ctx context.Context, userID string, limit int) ([]*models.MoodLog, error) {
	return s.repomanager.MoodLogs(s.db).ListByUser(ctx, userID, limit)
}

// Recommendations returns the playlists for a mood.
func (s *MoodService) Recommendations(mood string) []string {
	recs := musicRecommendations[strings.ToLower(strings.TrimSpace(mood))]
	if recs == nil {
		return []string{}
	}
	return recs
}
