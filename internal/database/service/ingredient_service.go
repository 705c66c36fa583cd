package service

import (
	"log/slog"

	"github.com/recipebox/backend-go/internal/database/models"
	"github.com/recipebox/backend-go/internal/database/repository"
)

// IngredientService mirrors TagService for the ingredient attribute.
type IngredientService interface {
	List(user *models.User, assignedOnly bool) ([]models.Ingredient, error)
	Rename(id uint, user *models.User, name string) (*models.Ingredient, error)
	Delete(id uint, user *models.User) error
}

type ingredientService struct {
	ingredientRepo repository.IngredientRepository
	logger         *slog.Logger
}

// NewIngredientService creates a new ingredient service instance
func NewIngredientService(ingredientRepo repository.IngredientRepository, logger *slog.Logger) IngredientService {
	return &ingredientService{
		ingredientRepo: ingredientRepo,
		logger:         logger,
	}
}

func (s *ingredientService) List(user *models.User, assignedOnly bool) ([]models.Ingredient, error) {
	return s.ingredientRepo.ListByUser(user.ID, assignedOnly)
}

func (s *ingredientService) Rename(id uint, user *models.User, name string) (*models.Ingredient, error) {
	ingredient, err := s.ingredientRepo.Rename(id, user.ID, name)
	if err != nil {
		return nil, err
	}
	s.logger.Info("✅ [IngredientService] Ingredient renamed", "ingredient_id", id, "user_id", user.ID)
	return ingredient, nil
}

func (s *ingredientService) Delete(id uint, user *models.User) error {
	if err := s.ingredientRepo.Delete(id, user.ID); err != nil {
		return err
	}
	s.logger.Info("✅ [IngredientService] Ingredient deleted", "ingredient_id", id, "user_id", user.ID)
	return nil
}
