package courseValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

func CreateCertificate() fiber.Handler {
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

		c.Locals("validatedCertificate", reqData)
		return c.Next()
	}
}

// CertificateID validates the :id path parameter.
func CertificateID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		certificateID, err := strconv.Atoi(strings.TrimSpace(c.Params("id")))
		if err != nil || certificateID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid certificate ID!", nil)
		}

		c.Locals("certificateID", certificateID)
		return c.Next()
	}
}

// CertificateNumber validates the :number path parameter.
func CertificateNumber() fiber.Handler {
	return func(c *fiber.Ctx) error {
		number := strings.TrimSpace(c.Params("number"))
		if number == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate number is required!", nil)
		}

		c.Locals("certificateNumber", number)
		return c.Next()
	}
}
