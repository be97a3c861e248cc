package courseRoutes

import (
	controllers "lms/controllers/course"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all course authoring and browsing routes.
// Static paths are registered before the :id routes so /search and
// /author/:authorId are not swallowed by the id matcher.
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/api/courses")

	courseGroup.Get("/", controllers.GetAllCourses)
	courseGroup.Get("/search", controllers.SearchCourses)
	courseGroup.Get("/author/:authorId", validators.AuthorID(), controllers.GetCoursesByAuthor)
	courseGroup.Post("/", validators.CreateCourse(), controllers.CreateCourse)

	courseGroup.Get("/:id", validators.CourseID(), controllers.GetCourseByID)
	courseGroup.Put("/:id", validators.CourseID(), validators.UpdateCourse(), controllers.UpdateCourse)
	courseGroup.Delete("/:id", validators.CourseID(), controllers.DeleteCourse)

	courseGroup.Get("/:id/units", validators.CourseID(), controllers.GetCourseUnits)
	courseGroup.Get("/:id/units/:index", validators.CourseID(), validators.UnitIndex(), controllers.GetCourseUnit)
}
