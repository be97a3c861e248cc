package courseValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// EnrollmentRequest is the body of POST /api/enrollments and
// POST /api/certificates.
type EnrollmentRequest struct {
	UserID   uint `json:"userId"`
	CourseID uint `json:"courseId"`
}

// ProgressRequest is the body of PUT /api/enrollments/:id/progress.
// UnitIndex is deliberately not validated against the course's unit
// count; any index the learner submits counts as completion evidence.
type ProgressRequest struct {
	UnitIndex *int `json:"unitIndex"`
}

func CreateEnrollment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(EnrollmentRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.UserID == 0 {
			errors["userId"] = "A valid user ID is required!"
		}
		if reqData.CourseID == 0 {
			errors["courseId"] = "A valid course ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEnrollment", reqData)
		return c.Next()
	}
}

func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ProgressRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.UnitIndex == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"unitIndex": "Unit index is required!",
			})
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

// EnrollmentID validates the :id path parameter.
func EnrollmentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		enrollmentID, err := strconv.Atoi(strings.TrimSpace(c.Params("id")))
		if err != nil || enrollmentID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment ID!", nil)
		}

		c.Locals("enrollmentID", enrollmentID)
		return c.Next()
	}
}

// UserID validates the :userId path parameter.
func UserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := strconv.Atoi(strings.TrimSpace(c.Params("userId")))
		if err != nil || userID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user ID!", nil)
		}

		c.Locals("pathUserID", userID)
		return c.Next()
	}
}
