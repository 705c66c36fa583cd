package repository

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/recipebox/backend-go/internal/database/models"
)

// setupTestDB creates a new in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.Event{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:    email,
		Name:     "Test User",
		Password: "hashedpassword",
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestRecipe(t *testing.T, db *gorm.DB, user *models.User, title string) *models.Recipe {
	t.Helper()

	recipe := &models.Recipe{
		UserID:      user.ID,
		Title:       title,
		TimeMinutes: 10,
		Price:       decimal.RequireFromString("5.25"),
		Description: "Sample description",
		Link:        "https://example.com/recipe",
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func timeNowPlusHour() time.Time {
	return time.Now().Add(time.Hour)
}
