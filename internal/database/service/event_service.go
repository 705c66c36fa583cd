package service

import (
	"log/slog"
	"time"

	"github.com/recipebox/backend-go/internal/database/models"
	"github.com/recipebox/backend-go/internal/database/repository"
)

// EventInput carries create/update fields for an event. The title is
// absent on purpose: it is always derived from the referenced recipe and
// client-supplied values are discarded.
type EventInput struct {
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
	RecipeID    *uint
}

// EventService defines the interface for scheduled event business logic
type EventService interface {
	Create(user *models.User, in EventInput) (*models.Event, error)
	Get(id uint, user *models.User) (*models.Event, error)
	Update(id uint, user *models.User, in EventInput) (*models.Event, error)
	Delete(id uint, user *models.User) error
	List(user *models.User) ([]models.Event, error)
}

type eventService struct {
	eventRepo  repository.EventRepository
	recipeRepo repository.RecipeRepository
	logger     *slog.Logger
}

// NewEventService creates a new event service instance
func NewEventService(eventRepo repository.EventRepository, recipeRepo repository.RecipeRepository, logger *slog.Logger) EventService {
	return &eventService{
		eventRepo:  eventRepo,
		recipeRepo: recipeRepo,
		logger:     logger,
	}
}

// resolveRecipe fetches the referenced recipe, owner-scoped. A recipe
// owned by someone else reads as not found.
func (s *eventService) resolveRecipe(recipeID uint, user *models.User) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.FindByID(recipeID)
	if err != nil {
		return nil, err
	}
	if !recipe.OwnedBy(user) {
		return nil, repository.ErrRecipeNotFound
	}
	return recipe, nil
}

func (s *eventService) Create(user *models.User, in EventInput) (*models.Event, error) {
	event := &models.Event{
		UserID:    user.ID,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
	}
	if in.Description != nil {
		event.Description = *in.Description
	}

	if in.RecipeID != nil {
		recipe, err := s.resolveRecipe(*in.RecipeID, user)
		if err != nil {
			return nil, err
		}
		event.RecipeID = &recipe.ID
		event.Title = recipe.Title
	}

	// The model guard rejects a missing title or time bound before any
	// row is written.
	if err := s.eventRepo.Create(event); err != nil {
		s.logger.Warn("⚠️ [EventService] Failed to create event", "user_id", user.ID, "error", err)
		return nil, err
	}

	s.logger.Info("✅ [EventService] Event created", "event_id", event.ID, "user_id", user.ID)
	return event, nil
}

func (s *eventService) Get(id uint, user *models.User) (*models.Event, error) {
	return s.eventRepo.FindByIDAndUser(id, user.ID)
}

// Update applies a partial update. A patch that carries a recipe
// reference re-derives the title from that recipe, overriding whatever
// the client sent.
func (s *eventService) Update(id uint, user *models.User, in EventInput) (*models.Event, error) {
	event, err := s.eventRepo.FindByIDAndUser(id, user.ID)
	if err != nil {
		return nil, err
	}

	if in.Description != nil {
		event.Description = *in.Description
	}
	if in.StartTime != nil {
		event.StartTime = in.StartTime
	}
	if in.EndTime != nil {
		event.EndTime = in.EndTime
	}
	if in.RecipeID != nil {
		recipe, err := s.resolveRecipe(*in.RecipeID, user)
		if err != nil {
			return nil, err
		}
		event.RecipeID = &recipe.ID
		event.Title = recipe.Title
	}

	if err := s.eventRepo.Update(event); err != nil {
		s.logger.Warn("⚠️ [EventService] Failed to update event", "event_id", id, "error", err)
		return nil, err
	}

	return event, nil
}

func (s *eventService) Delete(id uint, user *models.User) error {
	if err := s.eventRepo.Delete(id, user.ID); err != nil {
		return err
	}
	s.logger.Info("✅ [EventService] Event deleted", "event_id", id, "user_id", user.ID)
	return nil
}

func (s *eventService) List(user *models.User) ([]models.Event, error) {
	return s.eventRepo.ListByUser(user.ID)
}
