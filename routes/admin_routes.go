package routes

import (
	"github.com/asifrahman/collab_study/handlers"
	"github.com/asifrahman/collab_study/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/dashboard-analytics", handlers.GetDashboardAnalytics)
}
