package controllers

import (
	"time"

	"ecotrack-backend/database"
	"ecotrack-backend/middlewares"
	"ecotrack-backend/models"
	"ecotrack-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type activityReview struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
	Note     string `json:"note" validate:"max=500"`
}

// ReviewActivity approves or rejects a pending submission. Approval converts
// the carbon saving to points, credits the balance and writes a ledger row,
// all in one transaction.
func ReviewActivity(c *fiber.Ctx) error {
	reviewerID, _ := c.Locals("userID").(string)

	var dto activityReview
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	var activity models.Activity
	if err := database.DB.First(&activity, "id = ?", c.Params("id")).Error; err != nil {
		return middlewares.Fail(c, fiber.StatusNotFound, "activity not found")
	}
	if activity.Status != models.ActivityPending {
		return middlewares.Fail(c, fiber.StatusConflict, "activity already reviewed")
	}

	now := time.Now().UTC()
	points := 0
	if dto.Decision == models.ActivityApproved {
		points = utils.PointsForCarbon(activity.Category, activity.CarbonKg)
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// The status filter makes the pending->reviewed transition one-shot:
		// a concurrent review that committed first leaves zero affected rows
		// here, so the points can never be credited twice.
		res := tx.Model(&models.Activity{}).
			Where("id = ? AND status = ?", activity.Id, models.ActivityPending).
			Updates(map[string]any{
				"status":      dto.Decision,
				"points":      points,
				"review_note": dto.Note,
				"reviewer_id": reviewerID,
				"reviewed_at": &now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusConflict, "activity already reviewed")
		}

		if dto.Decision != models.ActivityApproved || points == 0 {
			return nil
		}

		ledger := models.PointTransaction{
			UserId:      activity.UserId,
			Delta:       points,
			Reason:      models.ReasonActivityApproved,
			ReferenceId: activity.Id,
		}
		if err := tx.Create(&ledger).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", activity.UserId).
			Update("points", gorm.Expr("points + ?", points)).Error
	})
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return middlewares.Fail(c, fe.Code, fe.Message)
		}
		return middlewares.Fail(c, fiber.StatusInternalServerError, "could not review activity")
	}

	database.DB.First(&activity, "id = ?", activity.Id)
	return c.JSON(fiber.Map{
		"success":  true,
		"activity": activity,
	})
}

func GetUsers(c *fiber.Ctx) error {
	limit := utils.ParseIntDefault(c.Query("limit"), 50)
	offset := utils.ParseIntDefault(c.Query("offset"), 0)

	var users []models.User
	if err := database.DB.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return middlewares.Fail(c, fiber.StatusInternalServerError, "could not list users")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"users":   users,
	})
}
