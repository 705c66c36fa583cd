package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/recipebox/backend-go/internal/database/models"
	"github.com/recipebox/backend-go/internal/database/repository"
	"github.com/recipebox/backend-go/internal/database/service"
	"github.com/recipebox/backend-go/internal/middleware"
)

// EventHandler handles HTTP requests for scheduled events
type EventHandler struct {
	service service.EventService
	logger  *slog.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(service service.EventService, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		logger:  logger,
	}
}

// EventRequest is shared by create and update. A client-sent title is
// accepted on the wire but never used: the title always comes from the
// referenced recipe.
type EventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	RecipeID    *uint      `json:"recipe"`
}

func (r *EventRequest) toInput() service.EventInput {
	return service.EventInput{
		Description: r.Description,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		RecipeID:    r.RecipeID,
	}
}

// List handles GET /events
func (h *EventHandler) List(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	events, err := h.service.List(user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// Create handles POST /events
func (h *EventHandler) Create(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.service.Create(user, req.toInput())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// Get handles GET /events/:id
func (h *EventHandler) Get(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	event, err := h.service.Get(id, user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// Update handles PATCH /events/:id
func (h *EventHandler) Update(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.service.Update(id, user, req.toInput())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// Delete handles DELETE /events/:id
func (h *EventHandler) Delete(c *gin.Context) {
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
func (h *EventHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.Is(err, repository.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
	case errors.Is(err, models.ErrEventIncomplete):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("❌ [EventHandler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
