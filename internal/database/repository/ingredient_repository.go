package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/recipebox/backend-go/internal/database/models"
)

// IngredientRepository defines the interface for ingredient data
// operations, mirroring TagRepository.
type IngredientRepository interface {
	ListByUser(userID uint, assignedOnly bool) ([]models.Ingredient, error)
	FindByIDAndUser(id, userID uint) (*models.Ingredient, error)
	Rename(id, userID uint, name string) (*models.Ingredient, error)
	Delete(id, userID uint) error
}

type ingredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new ingredient repository instance
func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) ListByUser(userID uint, assignedOnly bool) ([]models.Ingredient, error) {
	q := r.db.Model(&models.Ingredient{}).Where("ingredients.user_id = ?", userID)

	if assignedOnly {
		// Join rows of soft-deleted recipes are still present, so
		// assignment has to check recipe liveness too.
		q = q.Joins("JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id").
			Joins("JOIN recipes ON recipes.id = recipe_ingredients.recipe_id AND recipes.deleted_at IS NULL")
	}

	var ingredients []models.Ingredient
	err := q.Distinct("ingredients.*").Order("ingredients.name DESC").Find(&ingredients).Error
	return ingredients, err
}

func (r *ingredientRepository) FindByIDAndUser(id, userID uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&ingredient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) Rename(id, userID uint, name string) (*models.Ingredient, error) {
	result := r.db.Model(&models.Ingredient{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("name", name)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return nil, ErrDuplicateName
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrIngredientNotFound
	}
	return r.FindByIDAndUser(id, userID)
}

func (r *ingredientRepository) Delete(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Ingredient{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrIngredientNotFound
	}
	return nil
}
