package controllers

import (
	"ecotrack-backend/database"
	"ecotrack-backend/middlewares"
	"ecotrack-backend/models"
	"ecotrack-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

type activityCreate struct {
	Category     string         `json:"category" validate:"required,min=2,max=32"`
	Description  string         `json:"description" validate:"max=1000"`
	CarbonKg     float64        `json:"carbon_kg" validate:"required,gt=0"`
	AttachmentId string         `json:"attachment_id" validate:"omitempty,uuid4"`
	Metadata     datatypes.JSON `json:"metadata"`
}

func CreateActivity(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var dto activityCreate
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	if dto.AttachmentId != "" {
		var att models.Attachment
		if err := database.DB.First(&att, "id = ? AND owner_id = ?", dto.AttachmentId, userID).Error; err != nil {
			return middlewares.Fail(c, fiber.StatusBadRequest, "attachment not found")
		}
	}

	activity := models.Activity{
		UserId:       userID,
		Category:     dto.Category,
		Description:  dto.Description,
		CarbonKg:     dto.CarbonKg,
		AttachmentId: dto.AttachmentId,
		Metadata:     dto.Metadata,
		Status:       models.ActivityPending,
	}

	if err := database.DB.Create(&activity).Error; err != nil {
		return middlewares.Fail(c, fiber.StatusBadRequest, "could not create activity")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"activity": activity,
		// what approval would currently award; the ledger entry happens at review
		"points_preview": utils.PointsForCarbon(activity.Category, activity.CarbonKg),
	})
}

func GetActivities(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	role, _ := c.Locals("role").(string)

	q := database.DB.Model(&models.Activity{}).Order("created_at DESC")
	if role != models.RoleAdmin {
		q = q.Where("user_id = ?", userID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	limit := utils.ParseIntDefault(c.Query("limit"), 50)
	offset := utils.ParseIntDefault(c.Query("offset"), 0)

	var activities []models.Activity
	if err := q.Limit(limit).Offset(offset).Find(&activities).Error; err != nil {
		return middlewares.Fail(c, fiber.StatusInternalServerError, "could not list activities")
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"activities": activities,
	})
}

func GetActivity(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	role, _ := c.Locals("role").(string)

	var activity models.Activity
	if err := database.DB.First(&activity, "id = ?", c.Params("id")).Error; err != nil {
		return middlewares.Fail(c, fiber.StatusNotFound, "activity not found")
	}
	if activity.UserId != userID && role != models.RoleAdmin {
		return middlewares.Fail(c, fiber.StatusForbidden, "not your activity")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"activity": activity,
	})
}

type activityPatch struct {
	Category    *string  `json:"category" validate:"omitempty,min=2,max=32"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	CarbonKg    *float64 `json:"carbon_kg" validate:"omitempty,gt=0"`
}

// UpdateActivity lets the owner amend a submission while it is still pending.
func UpdateActivity(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var activity models.Activity
	if err := database.DB.First(&activity, "id = ?", c.Params("id")).Error; err != nil {
		return middlewares.Fail(c, fiber.StatusNotFound, "activity not found")
	}
	if activity.UserId != userID {
		return middlewares.Fail(c, fiber.StatusForbidden, "not your activity")
	}
	if activity.Status != models.ActivityPending {
		return middlewares.Fail(c, fiber.StatusConflict, "only pending activities can be edited")
	}

	var patch activityPatch
	if err := middlewares.BindAndValidate(c, &patch); err != nil {
		return err
	}

	updates := utils.UpdatesFromPtrDTO(&patch, nil)
	if len(updates) == 0 {
		return middlewares.Fail(c, fiber.StatusBadRequest, "no fields to update")
	}

	if err := database.DB.Model(&activity).Updates(updates).Error; err != nil {
		return middlewares.Fail(c, fiber.StatusBadRequest, "could not update activity")
	}

	database.DB.First(&activity, "id = ?", activity.Id)
	return c.JSON(fiber.Map{
		"success":  true,
		"activity": activity,
	})
}

// GetPoints returns the caller's balance plus their ledger.
func GetPoints(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return middlewares.Fail(c, fiber.StatusNotFound, "user not found")
	}

	limit := utils.ParseIntDefault(c.Query("limit"), 50)
	offset := utils.ParseIntDefault(c.Query("offset"), 0)

	var ledger []models.PointTransaction
	database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ledger)

	return c.JSON(fiber.Map{
		"success":      true,
		"points":       user.Points,
		"transactions": ledger,
	})
}
