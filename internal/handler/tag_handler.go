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

// TagHandler handles HTTP requests for the authenticated user's tags
type TagHandler struct {
	service service.TagService
	logger  *slog.Logger
}

// NewTagHandler creates a new tag handler
func NewTagHandler(service service.TagService, logger *slog.Logger) *TagHandler {
	return &TagHandler{
		service: service,
		logger:  logger,
	}
}

// List handles GET /tags with an optional assigned_only=1 filter
func (h *TagHandler) List(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	assignedOnly := c.Query("assigned_only") == "1"

	tags, err := h.service.List(user, assignedOnly)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	out := make([]AttrResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, AttrResponse{ID: t.ID, Name: t.Name})
	}
	c.JSON(http.StatusOK, out)
}

// Update handles PATCH/PUT /tags/:id
func (h *TagHandler) Update(c *gin.Context) {
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

	tag, err := h.service.Rename(id, user, req.Name)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, AttrResponse{ID: tag.ID, Name: tag.Name})
}

// Delete handles DELETE /tags/:id
func (h *TagHandler) Delete(c *gin.Context) {
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
func (h *TagHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrTagNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
	case errors.Is(err, repository.ErrDuplicateName):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tag with this name already exists"})
	default:
		h.logger.Error("❌ [TagHandler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
