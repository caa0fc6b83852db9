package handlers

import (
	"log"
	"math"

	"github.com/asifrahman/collab_study/database"
	"github.com/asifrahman/collab_study/models"
	"github.com/asifrahman/collab_study/payments"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreatePaymentIntentRequest struct {
	SessionID string `json:"sessionId" validate:"required,uuid"`
}

// CreatePaymentIntentHandler starts a card payment for a paid session. The
// amount always comes from the stored session fee, never from the client.
func CreatePaymentIntentHandler(c *fiber.Ctx) error {
	var req CreatePaymentIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	sessionID, _ := uuid.Parse(req.SessionID)

	var session models.Session
	if err := database.DB.First(&session, "id = ?", sessionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}
	if session.Status != "approved" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "This session is not open for booking"})
	}
	if session.RegistrationFee <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "This session is free and requires no payment"})
	}

	amountCents := int64(math.Round(session.RegistrationFee * 100))
	intent, err := payments.CreatePaymentIntent(amountCents, "usd")
	if err != nil {
		log.Printf("🔥 Payment intent creation failed for session %s: %v", session.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Payment intent creation failed"})
	}

	return c.JSON(fiber.Map{
		"clientSecret":    intent.ClientSecret,
		"paymentIntentId": intent.ID,
	})
}
