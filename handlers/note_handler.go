package handlers

import (
	"github.com/asifrahman/collab_study/database"
	"github.com/asifrahman/collab_study/middleware"
	"github.com/asifrahman/collab_study/models"
	"github.com/gofiber/fiber/v2"
)

type NoteRequest struct {
	Title       string `json:"title" validate:"required,min=1"`
	Description string `json:"description"`
}

func CreateNote(c *fiber.Ctx) error {
	email := middleware.ClaimEmail(c)

	var req NoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	note := models.Note{
		Email:       email,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := database.DB.Create(&note).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create note"})
	}

	return c.Status(fiber.StatusCreated).JSON(note)
}

func GetMyNotes(c *fiber.Ctx) error {
	email := middleware.ClaimEmail(c)

	var notes []models.Note
	err := database.DB.
		Where("email = ?", email).
		Order("created_at desc").
		Find(&notes).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch notes"})
	}

	return c.JSON(notes)
}

func UpdateNote(c *fiber.Ctx) error {
	email := middleware.ClaimEmail(c)
	noteID := c.Params("id")

	var req NoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var note models.Note
	if err := database.DB.First(&note, "id = ?", noteID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Note not found"})
	}
	if note.Email != email {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your note"})
	}

	note.Title = req.Title
	note.Description = req.Description
	if err := database.DB.Save(&note).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update note"})
	}

	return c.JSON(note)
}

func DeleteNote(c *fiber.Ctx) error {
	email := middleware.ClaimEmail(c)
	noteID := c.Params("id")

	var note models.Note
	if err := database.DB.First(&note, "id = ?", noteID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Note not found"})
	}
	if note.Email != email {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your note"})
	}

	if err := database.DB.Delete(&note).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete note"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
