package service

import (
	"log/slog"

	"github.com/recipebox/backend-go/internal/database/models"
	"github.com/recipebox/backend-go/internal/database/repository"
)

// TagService defines the interface for tag business logic. Tags are
// strictly owner-scoped: no staff or public read carve-out applies, and
// there is no direct create operation.
type TagService interface {
	List(user *models.User, assignedOnly bool) ([]models.Tag, error)
	Rename(id uint, user *models.User, name string) (*models.Tag, error)
	Delete(id uint, user *models.User) error
}

type tagService struct {
	tagRepo repository.TagRepository
	logger  *slog.Logger
}

// NewTagService creates a new tag service instance
func NewTagService(tagRepo repository.TagRepository, logger *slog.Logger) TagService {
	return &tagService{
		tagRepo: tagRepo,
		logger:  logger,
	}
}

func (s *tagService) List(user *models.User, assignedOnly bool) ([]models.Tag, error) {
	return s.tagRepo.ListByUser(user.ID, assignedOnly)
}

func (s *tagService) Rename(id uint, user *models.User, name string) (*models.Tag, error) {
	tag, err := s.tagRepo.Rename(id, user.ID, name)
	if err != nil {
		return nil, err
	}
	s.logger.Info("✅ [TagService] Tag renamed", "tag_id", id, "user_id", user.ID)
	return tag, nil
}

func (s *tagService) Delete(id uint, user *models.User) error {
	if err := s.tagRepo.Delete(id, user.ID); err != nil {
		return err
	}
	s.logger.Info("✅ [TagService] Tag deleted", "tag_id", id, "user_id", user.ID)
	return nil
}
