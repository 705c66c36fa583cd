package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/recipebox/backend-go/internal/database/models"
	"github.com/recipebox/backend-go/internal/database/repository"
	"github.com/recipebox/backend-go/internal/database/service"
	"github.com/recipebox/backend-go/internal/middleware"
)

// RecipeHandler handles HTTP requests for recipes
type RecipeHandler struct {
	service service.RecipeService
	logger  *slog.Logger
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(service service.RecipeService, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{
		service: service,
		logger:  logger,
	}
}

// AttrInput is the wire shape for a nested tag or ingredient: an object
// carrying the name only, ids are assigned server-side.
type AttrInput struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

type CreateRecipeRequest struct {
	Title       string          `json:"title" binding:"required,max=255"`
	TimeMinutes int             `json:"time_minutes" binding:"required,gt=0"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Description string          `json:"description"`
	Link        string          `json:"link" binding:"omitempty,url"`
	Public      bool            `json:"public"`
	Tags        *[]AttrInput    `json:"tags"`
	Ingredients *[]AttrInput    `json:"ingredients"`
}

type UpdateRecipeRequest struct {
	Title       *string          `json:"title" binding:"omitempty,max=255"`
	TimeMinutes *int             `json:"time_minutes" binding:"omitempty,gt=0"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
	Link        *string          `json:"link" binding:"omitempty,url"`
	Public      *bool            `json:"public"`
	Tags        *[]AttrInput     `json:"tags"`
	Ingredients *[]AttrInput     `json:"ingredients"`
}

// Response shapes. The list view deliberately omits description and
// image; the detail view carries them; image upload answers with id and
// image reference only.
type AttrResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type RecipeListItem struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	TimeMinutes int             `json:"time_minutes"`
	Price       decimal.Decimal `json:"price"`
	Link        string          `json:"link"`
	Public      bool            `json:"public"`
	Tags        []AttrResponse  `json:"tags"`
	Ingredients []AttrResponse  `json:"ingredients"`
}

type RecipeDetail struct {
	RecipeListItem
	Description string  `json:"description"`
	Image       *string `json:"image"`
}

type RecipeImageResponse struct {
	ID    uint    `json:"id"`
	Image *string `json:"image"`
}

func tagResponses(tags []models.Tag) []AttrResponse {
	out := make([]AttrResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, AttrResponse{ID: t.ID, Name: t.Name})
	}
	return out
}

func ingredientResponses(ingredients []models.Ingredient) []AttrResponse {
	out := make([]AttrResponse, 0, len(ingredients))
	for _, i := range ingredients {
		out = append(out, AttrResponse{ID: i.ID, Name: i.Name})
	}
	return out
}

func recipeListItem(r *models.Recipe) RecipeListItem {
	return RecipeListItem{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Public:      r.Public,
		Tags:        tagResponses(r.Tags),
		Ingredients: ingredientResponses(r.Ingredients),
	}
}

func recipeDetail(r *models.Recipe) RecipeDetail {
	return RecipeDetail{
		RecipeListItem: recipeListItem(r),
		Description:    r.Description,
		Image:          r.Image,
	}
}

func attrNames(attrs *[]AttrInput) *[]string {
	if attrs == nil {
		return nil
	}
	names := make([]string, 0, len(*attrs))
	for _, a := range *attrs {
		names = append(names, a.Name)
	}
	return &names
}

// parseIDList converts a comma separated query value like "1,3" into
// ids. Malformed entries invalidate the whole parameter.
func parseIDList(value string) ([]uint, error) {
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return 0, false
	}
	return uint(id), true
}

// List handles GET /recipes with optional tags/ingredients id filters
func (h *RecipeHandler) List(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	tagIDs, err := parseIDList(c.Query("tags"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tags filter"})
		return
	}
	ingredientIDs, err := parseIDList(c.Query("ingredients"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ingredients filter"})
		return
	}

	recipes, err := h.service.List(user, tagIDs, ingredientIDs)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	items := make([]RecipeListItem, 0, len(recipes))
	for i := range recipes {
		items = append(items, recipeListItem(&recipes[i]))
	}
	c.JSON(http.StatusOK, items)
}

// Create handles POST /recipes
func (h *RecipeHandler) Create(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [RecipeHandler] Invalid create request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.service.Create(user, service.RecipeCreateInput{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Description: req.Description,
		Link:        req.Link,
		Public:      req.Public,
		Tags:        attrNames(req.Tags),
		Ingredients: attrNames(req.Ingredients),
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipeDetail(recipe))
}

// Get handles GET /recipes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	recipe, err := h.service.Get(id, user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipeDetail(recipe))
}

// Update handles PATCH /recipes/:id (partial update)
func (h *RecipeHandler) Update(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [RecipeHandler] Invalid update request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.service.Update(id, user, service.RecipeUpdateInput{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Description: req.Description,
		Link:        req.Link,
		Public:      req.Public,
		Tags:        attrNames(req.Tags),
		Ingredients: attrNames(req.Ingredients),
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipeDetail(recipe))
}

// Replace handles PUT /recipes/:id (full update)
func (h *RecipeHandler) Replace(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [RecipeHandler] Invalid replace request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.service.Replace(id, user, service.RecipeCreateInput{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Description: req.Description,
		Link:        req.Link,
		Public:      req.Public,
		Tags:        attrNames(req.Tags),
		Ingredients: attrNames(req.Ingredients),
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipeDetail(recipe))
}

// Delete handles DELETE /recipes/:id
func (h *RecipeHandler) Delete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(id, user); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadImage handles POST /recipes/:id/upload-image
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file required"})
		return
	}
	defer file.Close()

	recipe, err := h.service.UploadImage(id, user, file)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, RecipeImageResponse{ID: recipe.ID, Image: recipe.Image})
}

// handleServiceError maps service errors to HTTP responses
func (h *RecipeHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
	case errors.Is(err, service.ErrInvalidImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payload is not a supported image"})
	default:
		h.logger.Error("❌ [RecipeHandler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
