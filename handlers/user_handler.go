package handlers

import (
	"errors"

	"github.com/asifrahman/collab_study/database"
	"github.com/asifrahman/collab_study/middleware"
	"github.com/asifrahman/collab_study/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SearchUsers(c *fiber.Ctx) error {
	search := "%" + c.Query("search") + "%"

	var users []models.User
	err := database.DB.
		Where("LOWER(email) LIKE LOWER(?) OR LOWER(display_name) LIKE LOWER(?)", search, search).
		Find(&users).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch users"})
	}

	return c.JSON(users)
}

func ListTutors(c *fiber.Ctx) error {
	var tutors []models.User
	err := database.DB.
		Where("role = ?", "tutor").
		Order("created_at desc").
		Find(&tutors).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch tutors"})
	}

	return c.JSON(tutors)
}

// GetMyRole reads the role from the database rather than the token claim, so
// a role change takes effect without waiting for the token to expire.
func GetMyRole(c *fiber.Ctx) error {
	email := middleware.ClaimEmail(c)

	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get role"})
	}

	role := user.Role
	if role == "" {
		role = "user"
	}
	return c.JSON(fiber.Map{"role": role})
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user tutor admin"`
}

func UpdateUserRole(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var req UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result := database.DB.Model(&models.User{}).Where("id = ?", userID).Update("role", req.Role)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update role"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{"message": "Role updated successfully"})
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName" validate:"omitempty,min=2"`
	PhotoURL    *string `json:"photoURL" validate:"omitempty,url"`
}

func UpdateMyProfile(c *fiber.Ctx) error {
	email := middleware.ClaimEmail(c)

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.PhotoURL != nil {
		user.PhotoURL = req.PhotoURL
	}
	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(user)
}
