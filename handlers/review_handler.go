package handlers

import (
	"github.com/asifrahman/collab_study/database"
	"github.com/asifrahman/collab_study/middleware"
	"github.com/asifrahman/collab_study/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	SessionID string `json:"sessionId" validate:"required,uuid"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

func CreateReview(c *fiber.Ctx) error {
	reviewerEmail := middleware.ClaimEmail(c)

	var req CreateReviewRequest
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

	var reviewer models.User
	if err := database.DB.Where("email = ?", reviewerEmail).First(&reviewer).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Reviewer account not found"})
	}

	review := models.Review{
		SessionID:     session.ID,
		ReviewerName:  reviewer.DisplayName,
		ReviewerEmail: reviewer.Email,
		ReviewerImage: reviewer.PhotoURL,
		Rating:        req.Rating,
		Comment:       req.Comment,
	}
	if err := database.DB.Create(&review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to post review"})
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

func GetSessionReviews(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")

	var reviews []models.Review
	err := database.DB.
		Where("session_id = ?", sessionID).
		Order("created_at desc").
		Find(&reviews).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch reviews"})
	}

	return c.JSON(reviews)
}

func ListReviews(c *fiber.Ctx) error {
	var reviews []models.Review
	if err := database.DB.Order("created_at desc").Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch all reviews"})
	}

	return c.JSON(reviews)
}
