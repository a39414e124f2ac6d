package controllers

import (
	"time"

	"ecotrack-backend/database"
	"ecotrack-backend/middlewares"
	"ecotrack-backend/models"
	"ecotrack-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type messageCreate struct {
	RecipientId string `json:"recipient_id" validate:"omitempty,uuid4"`
	Subject     string `json:"subject" validate:"max=255"`
	Body        string `json:"body" validate:"required,min=1,max=5000"`
}

// CreateMessage sends a message. Regular users may only write to the admin
// inbox (empty recipient); admins address any user.
func CreateMessage(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	role, _ := c.Locals("role").(string)

	var dto messageCreate
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	if dto.RecipientId != "" {
		if role != models.RoleAdmin {
			return middlewares.Fail(c, fiber.StatusForbidden, "users can only message the admin team")
		}
		var recipient models.User
		if err := database.DB.First(&recipient, "id = ?", dto.RecipientId).Error; err != nil {
			return middlewares.Fail(c, fiber.StatusBadRequest, "recipient not found")
		}
	}

	msg := models.Message{
		SenderId:    userID,
		RecipientId: dto.RecipientId,
		Subject:     dto.Subject,
		Body:        dto.Body,
	}

	if err := database.DB.Create(&msg).Error; err != nil {
		return middlewares.Fail(c, fiber.StatusBadRequest, "could not send message")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"msg":     msg,
	})
}

// GetMessages lists the caller's conversation: everything they sent or
// received. Admins additionally see the shared admin inbox.
func GetMessages(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	role, _ := c.Locals("role").(string)

	q := database.DB.Model(&models.Message{}).Order("created_at DESC")
	if role == models.RoleAdmin {
		q = q.Where("sender_id = ? OR recipient_id = ? OR recipient_id = ''", userID, userID)
	} else {
		q = q.Where("sender_id = ? OR recipient_id = ?", userID, userID)
	}

	limit := utils.ParseIntDefault(c.Query("limit"), 50)
	offset := utils.ParseIntDefault(c.Query("offset"), 0)

	var messages []models.Message
	if err := q.Limit(limit).Offset(offset).Find(&messages).Error; err != nil {
		return middlewares.Fail(c, fiber.StatusInternalServerError, "could not list messages")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"messages": messages,
	})
}

func MarkMessageRead(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	role, _ := c.Locals("role").(string)

	var msg models.Message
	if err := database.DB.First(&msg, "id = ?", c.Params("id")).Error; err != nil {
		return middlewares.Fail(c, fiber.StatusNotFound, "message not found")
	}

	isRecipient := msg.RecipientId == userID || (msg.RecipientId == "" && role == models.RoleAdmin)
	if !isRecipient {
		return middlewares.Fail(c, fiber.StatusForbidden, "not the recipient")
	}

	if msg.ReadAt == nil {
		now := time.Now().UTC()
		if err := database.DB.Model(&msg).Update("read_at", &now).Error; err != nil {
			return middlewares.Fail(c, fiber.StatusInternalServerError, "could not mark message read")
		}
	}

	database.DB.First(&msg, "id = ?", msg.Id)
	return c.JSON(fiber.Map{
		"success": true,
		"msg":     msg,
	})
}
