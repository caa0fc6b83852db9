package routes

import (
	"github.com/asifrahman/collab_study/handlers"
	"github.com/asifrahman/collab_study/middleware"
	"github.com/gofiber/fiber/v2"
)

func NoteRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	notes := api.Group("/notes", middleware.Protected())
	notes.Post("", handlers.CreateNote)
	notes.Get("", handlers.GetMyNotes)
	notes.Patch("/:id", handlers.UpdateNote)
	notes.Delete("/:id", handlers.DeleteNote)
}
