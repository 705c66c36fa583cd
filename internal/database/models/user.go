package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account in the system. Every domain record (recipe,
// tag, ingredient, event) is owned by exactly one user.
type User struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Email       string         `gorm:"uniqueIndex;not null" json:"email"`
	Name        string         `gorm:"not null" json:"name"`
	Password    string         `gorm:"not null" json:"-"`
	IsStaff     bool           `gorm:"not null;default:false" json:"is_staff"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	IsSuperuser bool           `gorm:"not null;default:false" json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}
