package handlers

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/asifrahman/collab_study/database"
	"github.com/asifrahman/collab_study/middleware"
	"github.com/asifrahman/collab_study/models"
	"github.com/asifrahman/collab_study/notifications"
	"github.com/asifrahman/collab_study/payments"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateBookingRequest struct {
	SessionID     string `json:"sessionId" validate:"required,uuid"`
	TransactionID string `json:"transactionId,omitempty"`
}

// CreateBooking claims a session slot for the caller. Free sessions insert
// immediately; paid sessions require a payment-intent ID that the processor
// confirms as succeeded with an amount matching the session fee. Uniqueness
// rests on the (session_id, user_email) index, so two concurrent requests
// cannot both get through.
func CreateBooking(c *fiber.Ctx) error {
	userEmail := middleware.ClaimEmail(c)
	role := middleware.ClaimRole(c)

	if role == "admin" || role == "tutor" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Admins and tutors cannot book sessions"})
	}

	var req CreateBookingRequest
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
	if session.RegistrationEnd.Before(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Registration period has ended"})
	}

	var transactionID *string
	if session.RegistrationFee > 0 {
		if req.TransactionID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A payment transaction ID is required for paid sessions"})
		}

		intent, err := payments.RetrievePaymentIntent(req.TransactionID)
		if err != nil {
			log.Printf("🔥 Payment intent lookup failed for %s: %v", req.TransactionID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not verify payment, please try again."})
		}
		if intent.Status != "succeeded" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payment has not succeeded"})
		}
		if intent.Amount != int64(math.Round(session.RegistrationFee*100)) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payment amount does not match the session fee"})
		}
		transactionID = &intent.ID
	}

	booking := models.Booking{
		SessionID:       session.ID,
		UserEmail:       userEmail,
		TutorEmail:      session.TutorEmail,
		TutorName:       session.TutorName,
		SessionTitle:    session.Title,
		Subject:         session.Subject,
		Description:     session.Description,
		ImageURL:        session.ImageURL,
		DriveLink:       session.DriveLink,
		ClassStart:      session.ClassStart,
		ClassEnd:        session.ClassEnd,
		RegistrationFee: session.RegistrationFee,
		Status:          "booked",
		Fee:             "paid",
		TransactionID:   transactionID,
		BookedAt:        time.Now(),
	}
	if err := database.DB.Create(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You already booked this session."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to book session"})
	}

	go notifications.SendEmail(
		"",
		userEmail,
		"Your Booking is Confirmed!",
		fmt.Sprintf("<h1>Booking Confirmed</h1><p>You are booked for \"%s\". The class starts at %s.</p>", booking.SessionTitle, booking.ClassStart.Format(time.RFC1123)),
	)

	return c.Status(fiber.StatusCreated).JSON(booking)
}

func GetMyBookings(c *fiber.Ctx) error {
	userEmail := middleware.ClaimEmail(c)

	var bookings []models.Booking
	err := database.DB.
		Where("user_email = ?", userEmail).
		Order("class_start desc").
		Find(&bookings).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch bookings"})
	}

	return c.JSON(bookings)
}

// CheckBooking reports the caller's booking for a session, or null.
func CheckBooking(c *fiber.Ctx) error {
	userEmail := middleware.ClaimEmail(c)
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "sessionId query param required"})
	}

	var booking models.Booking
	err := database.DB.Where("session_id = ? AND user_email = ?", sessionID, userEmail).First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(nil)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.JSON(booking)
}

func GetBooking(c *fiber.Ctx) error {
	bookingID := c.Params("id")

	var booking models.Booking
	if err := database.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	email := middleware.ClaimEmail(c)
	if middleware.ClaimRole(c) != "admin" && booking.UserEmail != email && booking.TutorEmail != email {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not have access to this booking"})
	}

	return c.JSON(booking)
}
