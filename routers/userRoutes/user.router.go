package userRoutes

import (
	userControllers "lms/controllers/user"
	userValidators "lms/validators/user"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/api/users")

	userGroup.Get("/:id", userValidators.UserID(), userControllers.GetUserByID)
}
