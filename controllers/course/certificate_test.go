package controllers_test

import (
	"encoding/json"
	"fmt"
	"testing"

	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCertificateRequiresCompletion(t *testing.T) {
	app, db := setupTestApp(t)
	user := createTestUser(t, db, "learner@example.com")
	course := createTestCourse(t, db, user.ID, 2)
	createTestEnrollment(t, db, user.ID, course.ID, false)

	code, resp := doJSON(t, app, "POST", "/api/certificates", fiber.Map{
		"userId": user.ID, "courseId": course.ID,
	})
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "You have not completed this course yet", resp.Message)
}

func TestCertificateRequiresEnrollment(t *testing.T) {
	app, db := setupTestApp(t)
	user := createTestUser(t, db, "learner@example.com")
	course := createTestCourse(t, db, user.ID, 2)

	code, _ := doJSON(t, app, "POST", "/api/certificates", fiber.Map{
		"userId": user.ID, "courseId": course.ID,
	})
	assert.Equal(t, fiber.StatusNotFound, code)
}

// Full lifecycle: enroll, complete the course via progress updates,
// issue exactly one certificate, verify it by number.
func TestCertificateLifecycle(t *testing.T) {
	app, db := setupTestApp(t)
	user := createTestUser(t, db, "learner@example.com")
	course := createTestCourse(t, db, user.ID, 3)
	enrollment := createTestEnrollment(t, db, user.ID, course.ID, false)

	code, _ := doJSON(t, app, "PUT", fmt.Sprintf("/api/enrollments/%d/progress", enrollment.ID), fiber.Map{"unitIndex": 2})
	require.Equal(t, fiber.StatusOK, code)

	body := fiber.Map{"userId": user.ID, "courseId": course.ID}

	code, resp := doJSON(t, app, "POST", "/api/certificates", body)
	require.Equal(t, fiber.StatusCreated, code)

	var cert courseModels.Certificate
	require.NoError(t, json.Unmarshal(resp.Data, &cert))
	assert.NotEmpty(t, cert.CertificateNumber)
	assert.Equal(t, user.ID, cert.UserID)
	assert.Equal(t, course.ID, cert.CourseID)
	assert.Equal(t, enrollment.ID, cert.EnrollmentID)
	assert.False(t, cert.IssueDate.IsZero())

	// Second issuance for the same pair is rejected.
	code, resp = doJSON(t, app, "POST", "/api/certificates", body)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Certificate already exists for this course", resp.Message)

	// Verification by number returns the exact record with linkage.
	code, resp = doJSON(t, app, "GET", "/api/certificates/verify/"+cert.CertificateNumber, nil)
	require.Equal(t, fiber.StatusOK, code)

	var verified courseModels.Certificate
	require.NoError(t, json.Unmarshal(resp.Data, &verified))
	assert.Equal(t, cert.ID, verified.ID)
	require.NotNil(t, verified.User)
	require.NotNil(t, verified.Course)
	assert.Equal(t, user.ID, verified.User.ID)
	assert.Equal(t, course.ID, verified.Course.ID)
}

func TestVerifyUnknownCertificateNumber(t *testing.T) {
	app, _ := setupTestApp(t)

	code, _ := doJSON(t, app, "GET", "/api/certificates/verify/no-such-number", nil)
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestGetUserCertificates(t *testing.T) {
	app, db := setupTestApp(t)
	user := createTestUser(t, db, "learner@example.com")
	course := createTestCourse(t, db, user.ID, 1)
	createTestEnrollment(t, db, user.ID, course.ID, true)

	code, _ := doJSON(t, app, "POST", "/api/certificates", fiber.Map{"userId": user.ID, "courseId": course.ID})
	require.Equal(t, fiber.StatusCreated, code)

	code, resp := doJSON(t, app, "GET", fmt.Sprintf("/api/certificates/user/%d", user.ID), nil)
	require.Equal(t, fiber.StatusOK, code)

	var certs []courseModels.Certificate
	require.NoError(t, json.Unmarshal(resp.Data, &certs))
	require.Len(t, certs, 1)

	code, resp = doJSON(t, app, "GET", fmt.Sprintf("/api/certificates/%d", certs[0].ID), nil)
	require.Equal(t, fiber.StatusOK, code)

	var fetched courseModels.Certificate
	require.NoError(t, json.Unmarshal(resp.Data, &fetched))
	assert.Equal(t, certs[0].CertificateNumber, fetched.CertificateNumber)
}
