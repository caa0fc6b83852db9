package routes

import (
	"github.com/asifrahman/collab_study/handlers"
	"github.com/asifrahman/collab_study/middleware"
	"github.com/gofiber/fiber/v2"
)

func UserRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	users := api.Group("/users")
	users.Get("/tutors", handlers.ListTutors)
	users.Get("", middleware.Protected(), middleware.AdminRequired(), handlers.SearchUsers)
	users.Get("/me/role", middleware.Protected(), handlers.GetMyRole)
	users.Patch("/me", middleware.Protected(), handlers.UpdateMyProfile)
	users.Patch("/:userId/role", middleware.Protected(), middleware.AdminRequired(), handlers.UpdateUserRole)
}
