package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/orionapp/companion/internal/common"
	"github.com/orionapp/companion/internal/logging"
	"github.com/orionapp/companion/internal/server/imagestore"
	"github.com/orionapp/companion/internal/server/models"
	"github.com/orionapp/companion/internal/server/repositories/repomanager"
)

// MaxImageSize is the upload ceiling for profile images.
const MaxImageSize = 5 << 20

// ProfileService stores profile images in the object store and keeps the
// user row pointing at the current one.
type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	images      imagestore.Store
	logger      logging.Logger
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager, images imagestore.Store, logger logging.Logger) *ProfileService {
	return &ProfileService{db: db, repomanager: m, images: images, logger: logger}
}

// UploadImage stores a new profile image and deletes the previous object
// best-effort.
func (s *ProfileService) UploadImage(ctx context.Context, userID string, data []byte, contentType string) (*models.Profile, error) {
	if len(data) == 0 {
		return nil, common.NewValidationError("Please upload an image file")
	}
	if len(data) > MaxImageSize {
		return nil, common.NewValidationError("Image size cannot exceed 5MB")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, common.NewValidationError("Please upload an image file")
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	oldKey := user.ImageKey
	key, url, err := s.images.Put(ctx, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("storing image: %w", err)
	}

	user.ImageKey = key
	user.ImageURL = url
	if err := repo.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	if oldKey != "" {
		if err := s.images.Delete(ctx, oldKey); err != nil {
			s.logger.Warn(ctx, "deleting previous profile image failed", "key", oldKey, "error", err)
		}
	}
	return user.FullProfile(), nil
}

// DeleteImage removes the current profile image, if any.
func (s *ProfileService) DeleteImage(ctx context.Context, userID string) (*models.Profile, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.ImageKey != "" {
		if err := s.images.Delete(ctx, user.ImageKey); err != nil {
			s.logger.Warn(ctx, "deleting profile image failed", "key", user.ImageKey, "error", err)
		}
	}
	user.ImageKey = ""
	user.ImageURL = ""
	if err := repo.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return user.FullProfile(), nil
}
