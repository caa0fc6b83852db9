package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	config "github.com/asifrahman/collab_study/configs"
	"github.com/asifrahman/collab_study/database"
	"github.com/asifrahman/collab_study/middleware"
	"github.com/asifrahman/collab_study/models"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UploadMaterialRequest struct {
	SessionID string `json:"sessionId" validate:"required,uuid"`
	Title     string `json:"title" validate:"required,min=2"`
	ImageURL  string `json:"imageUrl" validate:"omitempty,url"`
	DriveLink string `json:"driveLink" validate:"omitempty,url"`
}

// UploadMaterial attaches content to an approved session. The material insert
// and the parent session's denormalized hasMaterials/imageUrl/driveLink
// update happen in one transaction so the two can never diverge.
func UploadMaterial(c *fiber.Ctx) error {
	tutorEmail := middleware.ClaimEmail(c)

	var req UploadMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	sessionID, _ := uuid.Parse(req.SessionID)

	var material models.Material
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var session models.Session
		if err := tx.First(&session, "id = ?", sessionID).Error; err != nil {
			return errors.New("session not found")
		}
		if session.TutorEmail != tutorEmail {
			return errors.New("this is not your session")
		}
		if session.Status != "approved" {
			return errors.New("materials can only be uploaded to approved sessions")
		}

		material = models.Material{
			SessionID:  session.ID,
			TutorEmail: tutorEmail,
			Title:      req.Title,
			ImageURL:   req.ImageURL,
			DriveLink:  req.DriveLink,
		}
		if err := tx.Create(&material).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"has_materials": true,
			"image_url":     req.ImageURL,
			"drive_link":    req.DriveLink,
		}
		return tx.Model(&session).Updates(updates).Error
	})
	if err != nil {
		switch err.Error() {
		case "session not found":
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case "this is not your session":
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		case "materials can only be uploaded to approved sessions":
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upload material"})
	}

	return c.Status(fiber.StatusCreated).JSON(material)
}

// UploadMaterialFile pushes a tutor's file to Cloudinary and hands back the
// hosted URL for a subsequent UploadMaterial call.
func UploadMaterialFile(c *fiber.Ctx) error {
	tutorEmail := middleware.ClaimEmail(c)

	file, err := c.FormFile("material")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Material file is required."})
	}

	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to initialize Cloudinary"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadResult, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   "collab_study_materials",
		PublicID: fmt.Sprintf("%s_%s", tutorEmail, file.Filename),
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upload file."})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"fileName": file.Filename,
		"fileUrl":  uploadResult.SecureURL,
	})
}

func ListMaterials(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Material{})

	if tutorEmail := c.Query("tutorEmail"); tutorEmail != "" {
		query = query.Where("tutor_email = ?", tutorEmail)
	}
	if sessionID := c.Query("sessionId"); sessionID != "" {
		query = query.Where("session_id = ?", sessionID)
	}

	var materials []models.Material
	if err := query.Order("created_at desc").Find(&materials).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch materials"})
	}

	return c.JSON(materials)
}

type UpdateMaterialRequest struct {
	Title     string `json:"title" validate:"required,min=2"`
	ImageURL  string `json:"imageUrl" validate:"omitempty,url"`
	DriveLink string `json:"driveLink" validate:"omitempty,url"`
}

func UpdateMaterial(c *fiber.Ctx) error {
	tutorEmail := middleware.ClaimEmail(c)
	materialID := c.Params("id")

	var req UpdateMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var material models.Material
	if err := database.DB.First(&material, "id = ?", materialID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Material not found"})
	}
	if material.TutorEmail != tutorEmail {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your material"})
	}

	material.Title = req.Title
	material.ImageURL = req.ImageURL
	material.DriveLink = req.DriveLink
	if err := database.DB.Save(&material).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update material"})
	}

	return c.JSON(material)
}

func DeleteMaterial(c *fiber.Ctx) error {
	materialID := c.Params("id")

	var material models.Material
	if err := database.DB.First(&material, "id = ?", materialID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Material not found"})
	}

	// Tutors may only remove their own uploads; admins may remove any.
	if middleware.ClaimRole(c) != "admin" && material.TutorEmail != middleware.ClaimEmail(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your material"})
	}

	if err := database.DB.Delete(&material).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete material"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
