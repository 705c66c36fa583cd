package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Recipe is the central aggregate: scalar fields owned by one user plus
// two independent many-to-many sets (tags, ingredients) scoped to the
// same owner. Public recipes and recipes owned by staff are readable by
// everyone; mutation stays owner-bound.
type Recipe struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	UserID      uint            `gorm:"not null;index" json:"-"`
	Title       string          `gorm:"not null;size:255" json:"title"`
	TimeMinutes int             `gorm:"not null" json:"time_minutes"`
	Price       decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"price"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	Link        string          `gorm:"size:255" json:"link"`
	Image       *string         `gorm:"size:512" json:"image,omitempty"`
	Public      bool            `gorm:"not null;default:false" json:"public"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	User        User         `gorm:"foreignKey:UserID" json:"-"`
	Tags        []Tag        `gorm:"many2many:recipe_tags;" json:"tags"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;" json:"ingredients"`
}

// TableName overrides the table name
func (Recipe) TableName() string {
	return "recipes"
}

// VisibleTo reports whether the recipe may be read by the given user.
// Staff see everything, public recipes are open, otherwise owner only.
func (r *Recipe) VisibleTo(u *User) bool {
	if u == nil {
		return false
	}
	return u.IsStaff || r.Public || r.UserID == u.ID
}

// OwnedBy reports whether the user is the exact owner. Mutation rights
// never extend past the owner, whatever the visibility rules say.
func (r *Recipe) OwnedBy(u *User) bool {
	return u != nil && r.UserID == u.ID
}
