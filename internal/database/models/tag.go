package models

import "time"

// Tag is a user-owned label attached to recipes. Names are unique per
// owner, not globally: two users can each have their own "Vegan" tag.
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_tags_user_name" json:"-"`
	Name      string    `gorm:"not null;uniqueIndex:idx_tags_user_name" json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	User    User     `gorm:"foreignKey:UserID" json:"-"`
	Recipes []Recipe `gorm:"many2many:recipe_tags;" json:"-"`
}

// TableName overrides the table name
func (Tag) TableName() string {
	return "tags"
}
