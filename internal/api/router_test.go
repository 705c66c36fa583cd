package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/recipebox/backend-go/internal/config"
	"github.com/recipebox/backend-go/internal/database/models"
	"github.com/recipebox/backend-go/internal/database/repository"
	"github.com/recipebox/backend-go/internal/database/service"
	"github.com/recipebox/backend-go/internal/handler"
	"github.com/recipebox/backend-go/internal/middleware"
)

// setupTestServer wires the full stack against an in-memory database,
// with the no-op rate limiter standing in for Redis.
func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.Event{},
	))

	cfg := &config.Config{
		JWTSecret:              "test-secret",
		AccessTokenExpiration:  900,
		RefreshTokenExpiration: 604800,
		UploadDir:              t.TempDir(),
		MaxImageSize:           5 * 1024 * 1024,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	tagRepo := repository.NewTagRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	eventRepo := repository.NewEventRepository(db)

	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg, log)
	userService := service.NewUserService(userRepo, log)
	recipeService := service.NewRecipeService(recipeRepo, cfg, log)
	tagService := service.NewTagService(tagRepo, log)
	ingredientService := service.NewIngredientService(ingredientRepo, log)
	eventService := service.NewEventService(eventRepo, recipeRepo, log)

	return SetupRouter(
		handler.NewAuthHandler(authService, log),
		handler.NewUserHandler(userService, log),
		handler.NewRecipeHandler(recipeService, log),
		handler.NewTagHandler(tagService, log),
		handler.NewIngredientHandler(ingredientService, log),
		handler.NewEventHandler(eventService, log),
		middleware.NewAuthMiddleware(authService, userRepo, log),
		middleware.NewNoOpRateLimiter(log),
		log,
	)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    email,
		"name":     "Test User",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func createRecipe(t *testing.T, r *gin.Engine, token string, body gin.H) uint {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/v1/recipes", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

func TestHealthEndpoint(t *testing.T) {
	r := setupTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	r := setupTestServer(t)

	for _, path := range []string{"/api/v1/recipes", "/api/v1/tags", "/api/v1/ingredients", "/api/v1/events", "/api/v1/me"} {
		w := doJSON(t, r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/recipes", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRecipeOwnershipIsolation(t *testing.T) {
	r := setupTestServer(t)
	alice := registerUser(t, r, "alice@example.com")
	bob := registerUser(t, r, "bob@example.com")

	soupID := createRecipe(t, r, alice, gin.H{
		"title":        "Soup",
		"time_minutes": 20,
		"price":        "4.50",
		"tags":         []gin.H{{"name": "vegan"}},
	})
	createRecipe(t, r, bob, gin.H{
		"title":        "Steak",
		"time_minutes": 45,
		"price":        "19.99",
		"tags":         []gin.H{{"name": "vegan"}},
	})

	// Each user sees only their own private recipes.
	w := doJSON(t, r, http.MethodGet, "/api/v1/recipes", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var recipes []struct {
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipes))
	require.Len(t, recipes, 1)
	assert.Equal(t, "Soup", recipes[0].Title)

	// Bob cannot read Alice's private recipe; it reads as missing.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/recipes/%d", soupID), bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Same tag name, but each user owns their own record.
	w = doJSON(t, r, http.MethodGet, "/api/v1/tags", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var aliceTags []struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &aliceTags))
	require.Len(t, aliceTags, 1)
	assert.Equal(t, "vegan", aliceTags[0].Name)

	w = doJSON(t, r, http.MethodGet, "/api/v1/tags", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var bobTags []struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bobTags))
	require.Len(t, bobTags, 1)
	assert.NotEqual(t, aliceTags[0].ID, bobTags[0].ID)
}

func TestRecipeListFiltersAndDetail(t *testing.T) {
	r := setupTestServer(t)
	token := registerUser(t, r, "cook@example.com")

	createRecipe(t, r, token, gin.H{
		"title":        "Curry",
		"time_minutes": 30,
		"price":        "7.25",
		"description":  "Spicy",
		"tags":         []gin.H{{"name": "spicy"}},
		"ingredients":  []gin.H{{"name": "rice"}},
	})
	createRecipe(t, r, token, gin.H{
		"title":        "Salad",
		"time_minutes": 10,
		"price":        "3.00",
	})

	// Tag list filtered to assigned tags only.
	w := doJSON(t, r, http.MethodGet, "/api/v1/tags?assigned_only=1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tags []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tags))
	require.Len(t, tags, 1)
	assert.Equal(t, "spicy", tags[0].Name)

	// List items omit description; the detail view carries it.
	w = doJSON(t, r, http.MethodGet, "/api/v1/recipes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Spicy")

	var items []struct {
		ID    uint   `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 2)
	// Newest first.
	assert.Equal(t, "Salad", items[0].Title)

	curryID := items[1].ID
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/recipes/%d", curryID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Spicy")
}

func TestUploadImageRejectsNonImage(t *testing.T) {
	r := setupTestServer(t)
	token := registerUser(t, r, "cook@example.com")
	id := createRecipe(t, r, token, gin.H{
		"title":        "Curry",
		"time_minutes": 30,
		"price":        "7.25",
	})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "notes.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("not an image"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/recipes/%d/upload-image", id), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventFlow(t *testing.T) {
	r := setupTestServer(t)
	token := registerUser(t, r, "cook@example.com")
	id := createRecipe(t, r, token, gin.H{
		"title":        "Curry night",
		"time_minutes": 30,
		"price":        "7.25",
	})

	// The client title is ignored; the recipe's title wins.
	w := doJSON(t, r, http.MethodPost, "/api/v1/events", token, gin.H{
		"recipe":     id,
		"title":      "My own title",
		"start_time": "2026-09-01T18:00:00Z",
		"end_time":   "2026-09-01T20:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var event struct {
		ID    uint   `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &event))
	assert.Equal(t, "Curry night", event.Title)

	// Missing start_time is rejected.
	w = doJSON(t, r, http.MethodPost, "/api/v1/events", token, gin.H{
		"recipe":   id,
		"end_time": "2026-09-01T20:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMeProfile(t *testing.T) {
	r := setupTestServer(t)
	token := registerUser(t, r, "cook@example.com")

	w := doJSON(t, r, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cook@example.com")
	assert.NotContains(t, w.Body.String(), "password")

	w = doJSON(t, r, http.MethodPatch, "/api/v1/me", token, gin.H{"name": "New Name"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "New Name")
}
