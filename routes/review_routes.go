package routes

import (
	"github.com/asifrahman/collab_study/handlers"
	"github.com/asifrahman/collab_study/middleware"
	"github.com/gofiber/fiber/v2"
)

func ReviewRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	reviews := api.Group("/reviews")
	reviews.Get("", handlers.ListReviews)
	reviews.Get("/session/:sessionId", handlers.GetSessionReviews)
	reviews.Post("", middleware.Protected(), handlers.CreateReview)
}
