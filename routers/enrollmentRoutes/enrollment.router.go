package enrollmentRoutes

import (
	controllers "lms/controllers/course"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupEnrollmentRoutes sets up the enrollment lifecycle routes. The
// /user routes are registered before /:id so they match first.
func SetupEnrollmentRoutes(app *fiber.App) {
	enrollmentGroup := app.Group("/api/enrollments")

	enrollmentGroup.Post("/", validators.CreateEnrollment(), controllers.EnrollInCourse)

	enrollmentGroup.Get("/user/:userId", validators.UserID(), controllers.GetUserEnrollments)
	enrollmentGroup.Get("/user/:userId/completed", validators.UserID(), controllers.GetCompletedEnrollments)
	enrollmentGroup.Get("/user/:userId/stats", validators.UserID(), controllers.GetEnrollmentStats)

	enrollmentGroup.Get("/:id", validators.EnrollmentID(), controllers.GetEnrollment)
	enrollmentGroup.Put("/:id/progress", validators.EnrollmentID(), validators.UpdateProgress(), controllers.UpdateProgress)
}
