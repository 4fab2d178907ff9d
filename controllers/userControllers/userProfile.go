package userController

import (
	"time"

	"roomly/database"
	"roomly/middleware"
	"roomly/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// Profile returns the authenticated user's own profile.
func Profile(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var user models.User
	if err := database.Database.Db.First(&user, userId).Error; err != nil {
		return middleware.Error(c, fiber.StatusNotFound, "User not found")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{"user": user})
}

// UpdateProfile applies a partial update to the caller's own profile.
// Email, password and the verification flags are not updatable here.
func UpdateProfile(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	reqData := new(struct {
		Name                *string         `json:"name"`
		Phone               *string         `json:"phone"`
		Lifestyle           *string         `json:"lifestyle"`
		WorkSchedule        *string         `json:"work_schedule"`
		PersonalityTraits   *datatypes.JSON `json:"personality_traits"`
		CulturalPreferences *datatypes.JSON `json:"cultural_preferences"`
		Budget              *datatypes.JSON `json:"budget"`
		PreferredAreas      *datatypes.JSON `json:"preferred_areas"`
		MoveInDate          *time.Time      `json:"move_in_date"`
		LeaseDuration       *string         `json:"lease_duration"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	var user models.User
	if err := database.Database.Db.First(&user, userId).Error; err != nil {
		return middleware.Error(c, fiber.StatusNotFound, "User not found")
	}

	updates := map[string]interface{}{}
	if reqData.Name != nil {
		updates["name"] = *reqData.Name
	}
	if reqData.Phone != nil {
		updates["phone"] = *reqData.Phone
	}
	if reqData.Lifestyle != nil {
		updates["lifestyle"] = *reqData.Lifestyle
	}
	if reqData.WorkSchedule != nil {
		updates["work_schedule"] = *reqData.WorkSchedule
	}
	if reqData.PersonalityTraits != nil {
		updates["personality_traits"] = *reqData.PersonalityTraits
	}
	if reqData.CulturalPreferences != nil {
		updates["cultural_preferences"] = *reqData.CulturalPreferences
	}
	if reqData.Budget != nil {
		updates["budget"] = *reqData.Budget
	}
	if reqData.PreferredAreas != nil {
		updates["preferred_areas"] = *reqData.PreferredAreas
	}
	if reqData.MoveInDate != nil {
		updates["move_in_date"] = *reqData.MoveInDate
	}
	if reqData.LeaseDuration != nil {
		updates["lease_duration"] = *reqData.LeaseDuration
	}

	if len(updates) > 0 {
		if err := database.Database.Db.Model(&user).Updates(updates).Error; err != nil {
			return middleware.Error(c, fiber.StatusInternalServerError, "Failed to update profile")
		}
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{
		"message": "Profile updated successfully",
		"user":    user,
	})
}
