package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/recipebox/backend-go/internal/database/models"
)

// RecipeRepository defines the interface for recipe data operations.
// Create and Update reconcile the recipe together with its tag and
// ingredient sets inside a single transaction.
type RecipeRepository interface {
	CreateWithAttributes(recipe *models.Recipe, tagNames, ingredientNames []string) error
	FindByID(id uint) (*models.Recipe, error)
	UpdateWithAttributes(recipe *models.Recipe, fields map[string]interface{}, tagNames, ingredientNames *[]string) error
	UpdateImage(id uint, image string) (*models.Recipe, error)
	Delete(id, ownerID uint) error
	List(user *models.User, tagIDs, ingredientIDs []uint) ([]models.Recipe, error)
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository instance
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateWithAttributes(recipe *models.Recipe, tagNames, ingredientNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		if err := attachTags(tx, recipe, tagNames); err != nil {
			return err
		}
		return attachIngredients(tx, recipe, ingredientNames)
	})
}

func (r *recipeRepository) FindByID(id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.Preload("Tags").Preload("Ingredients").First(&recipe, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// UpdateWithAttributes applies scalar field changes and, when tagNames or
// ingredientNames is non-nil, replaces the corresponding association set.
// A nil slice pointer leaves the existing associations untouched; a
// pointer to an empty slice clears them. Everything commits or nothing
// does.
func (r *recipeRepository) UpdateWithAttributes(recipe *models.Recipe, fields map[string]interface{}, tagNames, ingredientNames *[]string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			if err := tx.Model(recipe).Updates(fields).Error; err != nil {
				return err
			}
		}

		if tagNames != nil {
			if err := tx.Model(recipe).Association("Tags").Clear(); err != nil {
				return err
			}
			recipe.Tags = nil
			if err := attachTags(tx, recipe, *tagNames); err != nil {
				return err
			}
		}

		if ingredientNames != nil {
			if err := tx.Model(recipe).Association("Ingredients").Clear(); err != nil {
				return err
			}
			recipe.Ingredients = nil
			if err := attachIngredients(tx, recipe, *ingredientNames); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *recipeRepository) UpdateImage(id uint, image string) (*models.Recipe, error) {
	result := r.db.Model(&models.Recipe{}).Where("id = ?", id).Update("image", image)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecipeNotFound
	}
	return r.FindByID(id)
}

// Delete removes a recipe, but only for its exact owner. A non-owner id
// match leaves zero rows affected, which is reported as not found.
func (r *recipeRepository) Delete(id, ownerID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, ownerID).Delete(&models.Recipe{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

// List returns the recipes visible to user, optionally restricted to
// those linked to any of the given tag or ingredient ids. Staff see all
// recipes; everyone else sees public recipes plus their own. Results are
// de-duplicated and ordered newest first.
func (r *recipeRepository) List(user *models.User, tagIDs, ingredientIDs []uint) ([]models.Recipe, error) {
	q := r.db.Model(&models.Recipe{}).
		Preload("Tags").
		Preload("Ingredients")

	if !user.IsStaff {
		q = q.Where("recipes.public = ? OR recipes.user_id = ?", true, user.ID)
	}

	if len(tagIDs) > 0 {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", tagIDs)
	}
	if len(ingredientIDs) > 0 {
		q = q.Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", ingredientIDs)
	}

	var recipes []models.Recipe
	err := q.Distinct("recipes.*").
		Order("recipes.id DESC").
		Find(&recipes).Error
	return recipes, err
}

// attachTags looks up or creates each named tag for the recipe's owner
// and associates it. The (user_id, name) unique index is the guard
// against concurrent creates: a lost insert race falls through to the
// re-lookup instead of surfacing a duplicate-key error.
func attachTags(tx *gorm.DB, recipe *models.Recipe, names []string) error {
	for _, name := range names {
		tag := models.Tag{UserID: recipe.UserID, Name: name}
		err := tx.Where("user_id = ? AND name = ?", recipe.UserID, name).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&tag)
			if res.Error != nil && !isUniqueViolation(res.Error) {
				return res.Error
			}
			if res.RowsAffected == 0 || tag.ID == 0 {
				if err := tx.Where("user_id = ? AND name = ?", recipe.UserID, name).First(&tag).Error; err != nil {
					return err
				}
			}
		} else if err != nil {
			return err
		}

		if err := tx.Model(recipe).Association("Tags").Append(&tag); err != nil {
			return err
		}
	}
	return nil
}

func attachIngredients(tx *gorm.DB, recipe *models.Recipe, names []string) error {
	for _, name := range names {
		ingredient := models.Ingredient{UserID: recipe.UserID, Name: name}
		err := tx.Where("user_id = ? AND name = ?", recipe.UserID, name).First(&ingredient).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&ingredient)
			if res.Error != nil && !isUniqueViolation(res.Error) {
				return res.Error
			}
			if res.RowsAffected == 0 || ingredient.ID == 0 {
				if err := tx.Where("user_id = ? AND name = ?", recipe.UserID, name).First(&ingredient).Error; err != nil {
					return err
				}
			}
		} else if err != nil {
			return err
		}

		if err := tx.Model(recipe).Association("Ingredients").Append(&ingredient); err != nil {
			return err
		}
	}
	return nil
}
