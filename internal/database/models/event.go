package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrEventIncomplete is returned when an event reaches the database with
// a missing title or time bound. The write is aborted before any row is
// touched.
var ErrEventIncomplete = errors.New("event requires title, start_time and end_time")

// Event schedules a recipe into a time slot. Title is a denormalized
// copy of the recipe's title, maintained by the service layer and never
// writable by clients.
type Event struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	RecipeID    *uint      `gorm:"index" json:"recipe"`
	Title       string     `gorm:"not null;size:255" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	StartTime   *time.Time `gorm:"not null" json:"start_time"`
	EndTime     *time.Time `gorm:"not null" json:"end_time"`
	CreatedAt   time.Time  `json:"-"`
	UpdatedAt   time.Time  `json:"-"`

	User   User    `gorm:"foreignKey:UserID" json:"-"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID" json:"-"`
}

// TableName overrides the table name
func (Event) TableName() string {
	return "events"
}

// BeforeSave enforces the required-field invariant at persistence time.
// The NOT NULL columns guard postgres; this hook gives the same atomic
// failure on every dialect.
func (e *Event) BeforeSave(tx *gorm.DB) error {
	if e.Title == "" || e.StartTime == nil || e.EndTime == nil {
		return ErrEventIncomplete
	}
	return nil
}
