package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/recipebox/backend-go/internal/config"
	"github.com/recipebox/backend-go/internal/database/models"
	"github.com/recipebox/backend-go/internal/database/repository"
)

// RecipeCreateInput carries the fields for creating a recipe or fully
// replacing one. Tag and ingredient names are reconciled per owner.
type RecipeCreateInput struct {
	Title       string
	TimeMinutes int
	Price       decimal.Decimal
	Description string
	Link        string
	Public      bool
	Tags        *[]string
	Ingredients *[]string
}

// RecipeUpdateInput carries a partial update. Nil pointers mean "leave
// unchanged"; for Tags/Ingredients a pointer to an empty slice clears
// the set, which is different from omitting it.
type RecipeUpdateInput struct {
	Title       *string
	TimeMinutes *int
	Price       *decimal.Decimal
	Description *string
	Link        *string
	Public      *bool
	Tags        *[]string
	Ingredients *[]string
}

// RecipeService defines the interface for recipe business logic
type RecipeService interface {
	Create(user *models.User, in RecipeCreateInput) (*models.Recipe, error)
	Get(id uint, user *models.User) (*models.Recipe, error)
	Update(id uint, user *models.User, in RecipeUpdateInput) (*models.Recipe, error)
	Replace(id uint, user *models.User, in RecipeCreateInput) (*models.Recipe, error)
	Delete(id uint, user *models.User) error
	List(user *models.User, tagIDs, ingredientIDs []uint) ([]models.Recipe, error)
	UploadImage(id uint, user *models.User, data io.Reader) (*models.Recipe, error)
}

type recipeService struct {
	recipeRepo repository.RecipeRepository
	cfg        *config.Config
	logger     *slog.Logger
}

// NewRecipeService creates a new recipe service instance
func NewRecipeService(recipeRepo repository.RecipeRepository, cfg *config.Config, logger *slog.Logger) RecipeService {
	return &recipeService{
		recipeRepo: recipeRepo,
		cfg:        cfg,
		logger:     logger,
	}
}

func (s *recipeService) Create(user *models.User, in RecipeCreateInput) (*models.Recipe, error) {
	recipe := &models.Recipe{
		UserID:      user.ID,
		Title:       in.Title,
		TimeMinutes: in.TimeMinutes,
		Price:       in.Price,
		Description: in.Description,
		Link:        in.Link,
		Public:      in.Public,
	}

	var tags, ingredients []string
	if in.Tags != nil {
		tags = *in.Tags
	}
	if in.Ingredients != nil {
		ingredients = *in.Ingredients
	}

	if err := s.recipeRepo.CreateWithAttributes(recipe, tags, ingredients); err != nil {
		s.logger.Error("❌ [RecipeService] Failed to create recipe", "user_id", user.ID, "error", err)
		return nil, err
	}

	s.logger.Info("✅ [RecipeService] Recipe created", "recipe_id", recipe.ID, "user_id", user.ID)
	return recipe, nil
}

// Get resolves a recipe for reading. A recipe that exists but is not
// visible to the user is indistinguishable from one that does not exist.
func (s *recipeService) Get(id uint, user *models.User) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !recipe.VisibleTo(user) {
		return nil, repository.ErrRecipeNotFound
	}
	return recipe, nil
}

// Update applies a partial update. Resolution goes through the
// visibility check, not strict ownership, so a staff user can patch a
// recipe they cannot delete. The owner field is never touched.
func (s *recipeService) Update(id uint, user *models.User, in RecipeUpdateInput) (*models.Recipe, error) {
	recipe, err := s.Get(id, user)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.TimeMinutes != nil {
		fields["time_minutes"] = *in.TimeMinutes
	}
	if in.Price != nil {
		fields["price"] = *in.Price
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Link != nil {
		fields["link"] = *in.Link
	}
	if in.Public != nil {
		fields["public"] = *in.Public
	}

	if err := s.recipeRepo.UpdateWithAttributes(recipe, fields, in.Tags, in.Ingredients); err != nil {
		s.logger.Error("❌ [RecipeService] Failed to update recipe", "recipe_id", id, "error", err)
		return nil, err
	}

	return s.recipeRepo.FindByID(id)
}

// Replace is the full-update variant: all required scalars must be
// present (enforced by the handler binding) and omitted optional scalars
// come in as their zero values, resetting them. Omitted tag/ingredient
// sets are left as they are.
func (s *recipeService) Replace(id uint, user *models.User, in RecipeCreateInput) (*models.Recipe, error) {
	recipe, err := s.Get(id, user)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"title":        in.Title,
		"time_minutes": in.TimeMinutes,
		"price":        in.Price,
		"description":  in.Description,
		"link":         in.Link,
		"public":       in.Public,
	}

	if err := s.recipeRepo.UpdateWithAttributes(recipe, fields, in.Tags, in.Ingredients); err != nil {
		s.logger.Error("❌ [RecipeService] Failed to replace recipe", "recipe_id", id, "error", err)
		return nil, err
	}

	return s.recipeRepo.FindByID(id)
}

// Delete is stricter than read resolution: only the exact owner may
// delete, and anyone else gets not-found.
func (s *recipeService) Delete(id uint, user *models.User) error {
	if err := s.recipeRepo.Delete(id, user.ID); err != nil {
		return err
	}
	s.logger.Info("✅ [RecipeService] Recipe deleted", "recipe_id", id, "user_id", user.ID)
	return nil
}

func (s *recipeService) List(user *models.User, tagIDs, ingredientIDs []uint) ([]models.Recipe, error) {
	return s.recipeRepo.List(user, tagIDs, ingredientIDs)
}

// UploadImage validates that the payload decodes as a supported raster
// image, stores it under the upload directory with a uuid name and
// updates the recipe's image reference.
func (s *recipeService) UploadImage(id uint, user *models.User, data io.Reader) (*models.Recipe, error) {
	recipe, err := s.Get(id, user)
	if err != nil {
		return nil, err
	}

	payload, err := io.ReadAll(io.LimitReader(data, s.cfg.MaxImageSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(payload)) > s.cfg.MaxImageSize {
		return nil, ErrInvalidImage
	}

	_, format, err := image.Decode(bytes.NewReader(payload))
	if err != nil {
		s.logger.Warn("⚠️ [RecipeService] Rejected image upload", "recipe_id", id, "error", err)
		return nil, ErrInvalidImage
	}

	dirPath := filepath.Join(s.cfg.UploadDir, "recipe")
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		s.logger.Error("❌ [RecipeService] Failed to create upload directory", "path", dirPath, "error", err)
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	fileName := fmt.Sprintf("%s.%s", uuid.New().String(), format)
	filePath := filepath.Join(dirPath, fileName)
	if err := os.WriteFile(filePath, payload, 0644); err != nil {
		s.logger.Error("❌ [RecipeService] Failed to store image", "path", filePath, "error", err)
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	// The stored reference is relative to the upload dir, so clients
	// never see the server layout and a volume move needs no rewrite.
	imageRef := path.Join("recipe", fileName)

	old := recipe.Image
	updated, err := s.recipeRepo.UpdateImage(recipe.ID, imageRef)
	if err != nil {
		os.Remove(filePath)
		return nil, err
	}

	// Replaced files are removed best-effort; the record is already
	// consistent.
	if old != nil && *old != imageRef {
		os.Remove(filepath.Join(s.cfg.UploadDir, filepath.FromSlash(*old)))
	}

	s.logger.Info("✅ [RecipeService] Image uploaded", "recipe_id", id, "image", imageRef)
	return updated, nil
}

// Service errors
var (
	ErrInvalidImage = errors.New("payload is not a supported image format")
)
