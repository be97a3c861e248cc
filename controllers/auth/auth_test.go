package authController_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"lms/config"
	"lms/database"
	"lms/models"
	authRoutes "lms/routers/authRoutes"
	userRoutes "lms/routers/userRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload interface{}, headers map[string]string) (int, apiResponse) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))

	return resp.StatusCode, envelope
}

func TestRegisterAndLogin(t *testing.T) {
	app := setupTestApp(t)

	code, resp := doJSON(t, app, "POST", "/api/auth/register", fiber.Map{
		"name": "Ada Lovelace", "email": "ada@example.com", "password": "password1",
	}, nil)
	require.Equal(t, fiber.StatusCreated, code)

	var registered struct {
		ID    uint   `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &registered))
	assert.NotZero(t, registered.ID)
	assert.Equal(t, "ada@example.com", registered.Email)

	code, resp = doJSON(t, app, "POST", "/api/auth/login", fiber.Map{
		"email": "ada@example.com", "password": "password1",
	}, nil)
	require.Equal(t, fiber.StatusOK, code)

	var loggedIn struct {
		ID    uint   `json:"id"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &loggedIn))
	assert.Equal(t, registered.ID, loggedIn.ID)
	assert.NotEmpty(t, loggedIn.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := setupTestApp(t)

	payload := fiber.Map{"name": "Ada", "email": "ada@example.com", "password": "password1"}

	code, _ := doJSON(t, app, "POST", "/api/auth/register", payload, nil)
	require.Equal(t, fiber.StatusCreated, code)

	code, resp := doJSON(t, app, "POST", "/api/auth/register", payload, nil)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Email is already taken!", resp.Message)
}

func TestLoginWrongPassword(t *testing.T) {
	app := setupTestApp(t)

	code, _ := doJSON(t, app, "POST", "/api/auth/register", fiber.Map{
		"name": "Ada", "email": "ada@example.com", "password": "password1",
	}, nil)
	require.Equal(t, fiber.StatusCreated, code)

	code, resp := doJSON(t, app, "POST", "/api/auth/login", fiber.Map{
		"email": "ada@example.com", "password": "wrong-password",
	}, nil)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Invalid email or password!", resp.Message)

	// Unknown email reports the same error.
	code, resp = doJSON(t, app, "POST", "/api/auth/login", fiber.Map{
		"email": "nobody@example.com", "password": "password1",
	}, nil)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Invalid email or password!", resp.Message)
}

func TestMeRequiresToken(t *testing.T) {
	app := setupTestApp(t)

	code, _ := doJSON(t, app, "POST", "/api/auth/register", fiber.Map{
		"name": "Ada", "email": "ada@example.com", "password": "password1",
	}, nil)
	require.Equal(t, fiber.StatusCreated, code)

	code, resp := doJSON(t, app, "POST", "/api/auth/login", fiber.Map{
		"email": "ada@example.com", "password": "password1",
	}, nil)
	require.Equal(t, fiber.StatusOK, code)

	var loggedIn struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &loggedIn))

	code, resp = doJSON(t, app, "GET", "/api/auth/me", nil, map[string]string{
		"Authorization": "Bearer " + loggedIn.Token,
	})
	require.Equal(t, fiber.StatusOK, code)

	var me models.User
	require.NoError(t, json.Unmarshal(resp.Data, &me))
	assert.Equal(t, "ada@example.com", me.Email)

	code, _ = doJSON(t, app, "GET", "/api/auth/me", nil, nil)
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

func TestGetUserByID(t *testing.T) {
	app := setupTestApp(t)

	user := models.User{Name: "Ada", Email: "ada@example.com", Password: "password1"}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	code, resp := doJSON(t, app, "GET", "/api/users/1", nil, nil)
	require.Equal(t, fiber.StatusOK, code)

	var fetched models.User
	require.NoError(t, json.Unmarshal(resp.Data, &fetched))
	assert.Equal(t, user.Email, fetched.Email)

	code, _ = doJSON(t, app, "GET", "/api/users/999", nil, nil)
	assert.Equal(t, fiber.StatusNotFound, code)
}
