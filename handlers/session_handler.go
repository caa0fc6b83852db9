package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/asifrahman/collab_study/database"
	"github.com/asifrahman/collab_study/middleware"
	"github.com/asifrahman/collab_study/models"
	"github.com/asifrahman/collab_study/notifications"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateSessionRequest struct {
	Title             string    `json:"title" validate:"required,min=3"`
	Subject           string    `json:"subject" validate:"required"`
	Description       string    `json:"description"`
	RegistrationStart time.Time `json:"registrationStart" validate:"required"`
	RegistrationEnd   time.Time `json:"registrationEnd" validate:"required,gtfield=RegistrationStart"`
	ClassStart        time.Time `json:"classStart" validate:"required,gtfield=RegistrationStart"`
	ClassEnd          time.Time `json:"classEnd" validate:"required,gtfield=ClassStart"`
	Duration          string    `json:"duration"`
}

// CreateSession records a tutor-submitted session. New sessions always start
// pending with a zero fee; the fee is set by an admin at approval time.
func CreateSession(c *fiber.Ctx) error {
	tutorEmail := middleware.ClaimEmail(c)

	var req CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var tutor models.User
	if err := database.DB.Where("email = ?", tutorEmail).First(&tutor).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor account not found"})
	}

	session := models.Session{
		Title:             req.Title,
		Subject:           req.Subject,
		Description:       req.Description,
		TutorEmail:        tutor.Email,
		TutorName:         tutor.DisplayName,
		RegistrationStart: req.RegistrationStart,
		RegistrationEnd:   req.RegistrationEnd,
		ClassStart:        req.ClassStart,
		ClassEnd:          req.ClassEnd,
		Duration:          req.Duration,
		Status:            "pending",
		RegistrationFee:   0,
	}
	if err := database.DB.Create(&session).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create session"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Session created successfully",
		"insertedId": session.ID,
		"session":    session,
	})
}

func ListSessions(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Session{})

	if tutorEmail := c.Query("tutorEmail"); tutorEmail != "" {
		query = query.Where("tutor_email = ?", tutorEmail)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var sessions []models.Session
	if err := query.Order("created_at desc").Find(&sessions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch sessions"})
	}

	return c.JSON(sessions)
}

func ListSessionsWithMaterials(c *fiber.Ctx) error {
	var sessions []models.Session
	err := database.DB.
		Where("has_materials = ? AND image_url <> ''", true).
		Find(&sessions).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch sessions with materials"})
	}

	return c.JSON(sessions)
}

func GetSession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID format"})
	}

	var session models.Session
	if err := database.DB.First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(session)
}

type ReviewSessionRequest struct {
	Status            string  `json:"status" validate:"required,oneof=approved rejected"`
	RegistrationFee   float64 `json:"registrationFee" validate:"gte=0"`
	RejectionReason   string  `json:"rejectionReason"`
	RejectionFeedback string  `json:"rejectionFeedback"`
}

// ReviewSession is the admin approve/reject decision. Approving sets the fee
// (zero for free sessions) and clears any previous rejection; rejecting
// requires a non-empty reason and forces the fee back to zero.
func ReviewSession(c *fiber.Ctx) error {
	sessionID := c.Params("id")

	var req ReviewSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var session models.Session
	if err := database.DB.First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	switch req.Status {
	case "approved":
		if session.Status == "rejected" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Rejected sessions must be resubmitted by the tutor before approval"})
		}
		session.Status = "approved"
		session.RegistrationFee = req.RegistrationFee
		session.RejectionReason = ""
		session.RejectionFeedback = ""

	case "rejected":
		if session.Status != "pending" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only pending sessions can be rejected"})
		}
		if strings.TrimSpace(req.RejectionReason) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A rejection reason is required"})
		}
		session.Status = "rejected"
		session.RegistrationFee = 0
		session.RejectionReason = req.RejectionReason
		session.RejectionFeedback = req.RejectionFeedback
	}

	if err := database.DB.Save(&session).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update session"})
	}

	switch session.Status {
	case "approved":
		go notifications.SendEmail(
			session.TutorName,
			session.TutorEmail,
			"Your Study Session has been Approved!",
			fmt.Sprintf("<h1>Congratulations!</h1><p>Your session \"%s\" has been approved and is now open for registration.</p>", session.Title),
		)
	case "rejected":
		go notifications.SendEmail(
			session.TutorName,
			session.TutorEmail,
			"Update on Your Study Session",
			fmt.Sprintf("<h1>Session Update</h1><p>Your session \"%s\" was not approved.</p><p><b>Reason:</b> %s</p>", session.Title, session.RejectionReason),
		)
	}

	return c.JSON(fiber.Map{"message": "Session updated successfully", "session": session})
}

// RequestSessionAgain puts a rejected session back in the review queue.
func RequestSessionAgain(c *fiber.Ctx) error {
	tutorEmail := middleware.ClaimEmail(c)
	sessionID := c.Params("id")

	var session models.Session
	if err := database.DB.First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if session.TutorEmail != tutorEmail {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your session"})
	}

	session.Status = "pending"
	if err := database.DB.Save(&session).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update session"})
	}

	return c.JSON(fiber.Map{"message": "Session submitted for review again", "session": session})
}

func DeleteSession(c *fiber.Ctx) error {
	sessionID := c.Params("id")

	result := database.DB.Delete(&models.Session{}, "id = ?", sessionID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete session"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
