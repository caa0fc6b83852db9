package routes

import (
	"github.com/asifrahman/collab_study/handlers"
	"github.com/asifrahman/collab_study/middleware"
	"github.com/gofiber/fiber/v2"
)

func MaterialRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	materials := api.Group("/materials")
	materials.Get("", handlers.ListMaterials)

	materials.Post("", middleware.Protected(), middleware.TutorRequired(), handlers.UploadMaterial)
	materials.Post("/upload", middleware.Protected(), middleware.TutorRequired(), handlers.UploadMaterialFile)
	materials.Get("/upload-signature", middleware.Protected(), middleware.TutorRequired(), handlers.GenerateUploadSignature)
	materials.Patch("/:id", middleware.Protected(), middleware.TutorRequired(), handlers.UpdateMaterial)
	materials.Delete("/:id", middleware.Protected(), handlers.DeleteMaterial)
}
