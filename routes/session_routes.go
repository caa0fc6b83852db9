package routes

import (
	"github.com/asifrahman/collab_study/handlers"
	"github.com/asifrahman/collab_study/middleware"
	"github.com/gofiber/fiber/v2"
)

func SessionRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	sessions := api.Group("/sessions")
	sessions.Get("", handlers.ListSessions)
	sessions.Get("/with-materials", handlers.ListSessionsWithMaterials)
	sessions.Get("/:id", handlers.GetSession)

	sessions.Post("", middleware.Protected(), middleware.TutorRequired(), handlers.CreateSession)
	sessions.Patch("/:id/request-again", middleware.Protected(), middleware.TutorRequired(), handlers.RequestSessionAgain)

	sessions.Patch("/:id/review", middleware.Protected(), middleware.AdminRequired(), handlers.ReviewSession)
	sessions.Delete("/:id", middleware.Protected(), middleware.AdminRequired(), handlers.DeleteSession)
}
