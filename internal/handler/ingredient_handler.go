package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipebox/backend-go/internal/database/repository"
	"github.com/recipebox/backend-go/internal/database/service"
	"github.com/recipebox/backend-go/internal/middleware"
)

// IngredientHandler handles HTTP requests for the user's ingredients
type IngredientHandler struct {
	service service.IngredientService
	logger  *slog.Logger
}

// NewIngredientHandler creates a new ingredient handler
func NewIngredientHandler(service service.IngredientService, logger *slog.Logger) *IngredientHandler {
	return &IngredientHandler{
		service: service,
		logger:  logger,
	}
}

// List handles GET /ingredients with an optional assigned_only=1 filter
func (h *IngredientHandler) List(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	assignedOnly := c.Query("assigned_only") == "1"

	ingredients, err := h.service.List(user, assignedOnly)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	out := make([]AttrResponse, 0, len(ingredients))
	for _, i := range ingredients {
		out = append(out, AttrResponse{ID: i.ID, Name: i.Name})
	}
	c.JSON(http.StatusOK, out)
}

// Update handles PATCH/PUT /ingredients/:id
func (h *IngredientHandler) Update(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req AttrInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient, err := h.service.Rename(id, user, req.Name)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, AttrResponse{ID: ingredient.ID, Name: ingredient.Name})
}

// Delete handles DELETE /ingredients/:id
func (h *IngredientHandler) Delete(c *gin.Context) {
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

// handleServiceError maps service errors to HTTP responses
func (h *IngredientHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrIngredientNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found"})
	case errors.Is(err, repository.ErrDuplicateName):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ingredient with this name already exists"})
	default:
		h.logger.Error("❌ [IngredientHandler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
