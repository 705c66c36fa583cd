package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/recipebox/backend-go/internal/database/models"
	"github.com/recipebox/backend-go/internal/database/repository"
)

func newEventService(t *testing.T) (EventService, RecipeService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	recipeRepo := repository.NewRecipeRepository(db)
	eventSvc := NewEventService(repository.NewEventRepository(db), recipeRepo, testLogger())
	recipeSvc := NewRecipeService(recipeRepo, testConfig(t), testLogger())
	return eventSvc, recipeSvc, db
}

func eventTimes(start time.Time) (*time.Time, *time.Time) {
	end := start.Add(time.Hour)
	return &start, &end
}

func TestEventService_CreateDerivesTitle(t *testing.T) {
	eventSvc, recipeSvc, db := newEventService(t)
	user := createTestUser(t, db, "owner@example.com")

	recipe, err := recipeSvc.Create(user, sampleCreateInput("Sunday roast"))
	require.NoError(t, err)

	start, end := eventTimes(time.Now().Add(24 * time.Hour))
	event, err := eventSvc.Create(user, EventInput{
		RecipeID:  &recipe.ID,
		StartTime: start,
		EndTime:   end,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sunday roast", event.Title)
	assert.Equal(t, recipe.ID, *event.RecipeID)
}

func TestEventService_CreateMissingStartTime(t *testing.T) {
	eventSvc, recipeSvc, db := newEventService(t)
	user := createTestUser(t, db, "owner@example.com")

	recipe, err := recipeSvc.Create(user, sampleCreateInput("Sunday roast"))
	require.NoError(t, err)

	end := time.Now().Add(time.Hour)
	_, err = eventSvc.Create(user, EventInput{
		RecipeID: &recipe.ID,
		EndTime:  &end,
	})
	require.ErrorIs(t, err, models.ErrEventIncomplete)

	// The failed write left no row behind.
	var count int64
	require.NoError(t, db.Model(&models.Event{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestEventService_CreateWithForeignRecipe(t *testing.T) {
	eventSvc, recipeSvc, db := newEventService(t)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")

	recipe, err := recipeSvc.Create(owner, sampleCreateInput("Sunday roast"))
	require.NoError(t, err)

	start, end := eventTimes(time.Now())
	_, err = eventSvc.Create(other, EventInput{
		RecipeID:  &recipe.ID,
		StartTime: start,
		EndTime:   end,
	})
	assert.ErrorIs(t, err, repository.ErrRecipeNotFound)
}

func TestEventService_UpdateRederivesTitle(t *testing.T) {
	eventSvc, recipeSvc, db := newEventService(t)
	user := createTestUser(t, db, "owner@example.com")

	roast, err := recipeSvc.Create(user, sampleCreateInput("Sunday roast"))
	require.NoError(t, err)
	stew, err := recipeSvc.Create(user, sampleCreateInput("Beef stew"))
	require.NoError(t, err)

	start, end := eventTimes(time.Now().Add(24 * time.Hour))
	event, err := eventSvc.Create(user, EventInput{
		RecipeID:  &roast.ID,
		StartTime: start,
		EndTime:   end,
	})
	require.NoError(t, err)

	// Re-pointing the event at a new recipe re-derives the title.
	updated, err := eventSvc.Update(event.ID, user, EventInput{RecipeID: &stew.ID})
	require.NoError(t, err)
	assert.Equal(t, "Beef stew", updated.Title)
	assert.Equal(t, stew.ID, *updated.RecipeID)
}

func TestEventService_UpdateByOtherUser(t *testing.T) {
	eventSvc, recipeSvc, db := newEventService(t)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")

	recipe, err := recipeSvc.Create(owner, sampleCreateInput("Sunday roast"))
	require.NoError(t, err)

	start, end := eventTimes(time.Now())
	event, err := eventSvc.Create(owner, EventInput{
		RecipeID:  &recipe.ID,
		StartTime: start,
		EndTime:   end,
	})
	require.NoError(t, err)

	later := time.Now().Add(48 * time.Hour)
	_, err = eventSvc.Update(event.ID, other, EventInput{StartTime: &later})
	assert.ErrorIs(t, err, repository.ErrEventNotFound)

	assert.ErrorIs(t, eventSvc.Delete(event.ID, other), repository.ErrEventNotFound)
}

func TestEventService_ListLimitedToUser(t *testing.T) {
	eventSvc, recipeSvc, db := newEventService(t)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")

	ownRecipe, err := recipeSvc.Create(owner, sampleCreateInput("Sunday roast"))
	require.NoError(t, err)
	otherRecipe, err := recipeSvc.Create(other, sampleCreateInput("Monday stew"))
	require.NoError(t, err)

	start, end := eventTimes(time.Now())
	_, err = eventSvc.Create(owner, EventInput{RecipeID: &ownRecipe.ID, StartTime: start, EndTime: end})
	require.NoError(t, err)
	_, err = eventSvc.Create(other, EventInput{RecipeID: &otherRecipe.ID, StartTime: start, EndTime: end})
	require.NoError(t, err)

	events, err := eventSvc.List(owner)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Sunday roast", events[0].Title)
}
