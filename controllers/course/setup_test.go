package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"lms/config"
	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
	certificateRoutes "lms/routers/certificateRoutes"
	courseRoutes "lms/routers/courseRoutes"
	enrollmentRoutes "lms/routers/enrollmentRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// setupTestApp wires the course, enrollment and certificate routes
// against a fresh in-memory database.
func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:        "test-secret",
		UploadDir:     t.TempDir(),
		PublicBaseURL: "http://localhost:3000",
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&courseModels.Course{},
		&courseModels.CourseUnit{},
		&courseModels.Enrollment{},
		&courseModels.Certificate{},
	))

	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	enrollmentRoutes.SetupEnrollmentRoutes(app)
	certificateRoutes.SetupCertificateRoutes(app)

	return app, db
}

// doJSON performs a JSON request against the app and decodes the
// response envelope.
func doJSON(t *testing.T, app *fiber.App, method, path string, payload interface{}) (int, apiResponse) {
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

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))

	return resp.StatusCode, envelope
}

func createTestUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()

	user := models.User{Name: "Test User", Email: email, Password: "secret123"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestCourse(t *testing.T, db *gorm.DB, authorID uint, unitCount int) courseModels.Course {
	t.Helper()

	course := courseModels.Course{
		Title:       "Intro to Go",
		Description: "A hands-on introduction",
		Category:    "programming",
		AuthorID:    authorID,
	}
	for i := 0; i < unitCount; i++ {
		course.Units = append(course.Units, courseModels.CourseUnit{
			Title:      fmt.Sprintf("Unit %d", i),
			Content:    fmt.Sprintf("Content of unit %d", i),
			OrderIndex: i,
		})
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func createTestEnrollment(t *testing.T, db *gorm.DB, userID, courseID uint, completed bool) courseModels.Enrollment {
	t.Helper()

	enrollment := courseModels.Enrollment{
		UserID:         userID,
		CourseID:       courseID,
		EnrollmentDate: time.Now(),
		Completed:      completed,
	}
	require.NoError(t, db.Create(&enrollment).Error)
	return enrollment
}
