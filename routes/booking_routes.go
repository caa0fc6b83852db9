package routes

import (
	"github.com/asifrahman/collab_study/handlers"
	"github.com/asifrahman/collab_study/middleware"
	"github.com/gofiber/fiber/v2"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	bookings := api.Group("/bookings", middleware.Protected())
	bookings.Post("", handlers.CreateBooking)
	bookings.Get("/me", handlers.GetMyBookings)
	bookings.Get("/check", handlers.CheckBooking)
	bookings.Get("/:id", handlers.GetBooking)
}
