package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/recipebox/backend-go/internal/database/models"
)

// TagRepository defines the interface for tag data operations. Tags are
// never created here directly; they come into existence through recipe
// reconciliation.
type TagRepository interface {
	ListByUser(userID uint, assignedOnly bool) ([]models.Tag, error)
	FindByIDAndUser(id, userID uint) (*models.Tag, error)
	Rename(id, userID uint, name string) (*models.Tag, error)
	Delete(id, userID uint) error
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository instance
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// ListByUser returns the user's tags ordered by descending name. With
// assignedOnly, only tags linked to at least one recipe are returned,
// each once regardless of how many recipes reference it.
func (r *tagRepository) ListByUser(userID uint, assignedOnly bool) ([]models.Tag, error) {
	q := r.db.Model(&models.Tag{}).Where("tags.user_id = ?", userID)

	if assignedOnly {
		// Join rows of soft-deleted recipes are still present, so
		// assignment has to check recipe liveness too.
		q = q.Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
			Joins("JOIN recipes ON recipes.id = recipe_tags.recipe_id AND recipes.deleted_at IS NULL")
	}

	var tags []models.Tag
	err := q.Distinct("tags.*").Order("tags.name DESC").Find(&tags).Error
	return tags, err
}

func (r *tagRepository) FindByIDAndUser(id, userID uint) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) Rename(id, userID uint, name string) (*models.Tag, error) {
	result := r.db.Model(&models.Tag{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("name", name)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return nil, ErrDuplicateName
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrTagNotFound
	}
	return r.FindByIDAndUser(id, userID)
}

func (r *tagRepository) Delete(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Tag{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTagNotFound
	}
	return nil
}
