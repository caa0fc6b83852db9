package routes

import (
	"github.com/asifrahman/collab_study/handlers"
	"github.com/asifrahman/collab_study/middleware"
	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	payments := api.Group("/payments", middleware.Protected())
	payments.Post("/create-intent", handlers.CreatePaymentIntentHandler)
}
