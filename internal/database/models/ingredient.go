package models

import "time"

// Ingredient is a user-owned recipe component. Like tags, names are
// unique per owner only.
type Ingredient struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_ingredients_user_name" json:"-"`
	Name      string    `gorm:"not null;uniqueIndex:idx_ingredients_user_name" json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	User    User     `gorm:"foreignKey:UserID" json:"-"`
	Recipes []Recipe `gorm:"many2many:recipe_ingredients;" json:"-"`
}

// TableName overrides the table name
func (Ingredient) TableName() string {
	return "ingredients"
}
