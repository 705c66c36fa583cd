package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/recipebox/backend-go/internal/database/models"
)

// EventRepository defines the interface for event data operations.
// Events follow strict ownership: no staff or public carve-out.
type EventRepository interface {
	Create(event *models.Event) error
	FindByIDAndUser(id, userID uint) (*models.Event, error)
	Update(event *models.Event) error
	Delete(id, userID uint) error
	ListByUser(userID uint) ([]models.Event, error)
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository instance
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(event *models.Event) error {
	return r.db.Create(event).Error
}

func (r *eventRepository) FindByIDAndUser(id, userID uint) (*models.Event, error) {
	var event models.Event
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) Update(event *models.Event) error {
	result := r.db.Save(event)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *eventRepository) Delete(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Event{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *eventRepository) ListByUser(userID uint) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Where("user_id = ?", userID).Order("start_time").Find(&events).Error
	return events, err
}
