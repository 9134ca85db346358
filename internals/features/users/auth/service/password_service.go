package service

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authHelper "emptrack_backend/internals/features/users/auth/helper"
	authRepo "emptrack_backend/internals/features/users/auth/repository"
	helpers "emptrack_backend/internals/helpers"
)

// ========================== CHANGE PASSWORD ==========================
func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if err := validate.Struct(&input); err != nil {
		return helpers.JsonValidationError(c, helpers.ValidationFieldErrors(err))
	}
	if err := authHelper.ValidatePasswordStrength(input.NewPassword); err != nil {
		return helpers.JsonValidationError(c, map[string][]string{"new_password": {err.Error()}})
	}

	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	user, err := authRepo.FindUserByID(c.UserContext(), db, userID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}

	if err := authHelper.CheckPasswordHash(user.Password, input.CurrentPassword); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Current password incorrect")
	}
	if input.CurrentPassword == input.NewPassword {
		return helpers.JsonError(c, fiber.StatusBadRequest, "New password must differ from the current one")
	}

	hashed, err := authHelper.HashPassword(input.NewPassword)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}
	if err := authRepo.UpdateUserPassword(c.UserContext(), db, user.ID, hashed); err != nil {
		log.Printf("[ERROR] change password user=%s: %v", user.ID, err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}

	return helpers.JsonUpdated(c, "Password updated successfully", nil)
}
