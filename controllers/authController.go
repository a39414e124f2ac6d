package controllers

import (
	"net/mail"
	"strings"
	"time"

	"ecotrack-backend/database"
	"ecotrack-backend/middlewares"
	"ecotrack-backend/models"
	"ecotrack-backend/utils"

	"github.com/gofiber/fiber/v2"
)

func Register(c *fiber.Ctx) error {
	var data map[string]string
	if err := c.BodyParser(&data); err != nil {
		return middlewares.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	email := strings.TrimSpace(strings.ToLower(data["email"]))
	if _, err := mail.ParseAddress(email); err != nil {
		return middlewares.Fail(c, fiber.StatusBadRequest, "invalid email format")
	}
	if len(data["password"]) < 8 {
		return middlewares.Fail(c, fiber.StatusBadRequest, "password must be at least 8 characters")
	}
	if data["password"] != data["password_confirm"] {
		return middlewares.Fail(c, fiber.StatusBadRequest, "passwords do not match")
	}

	var mailExist models.User
	database.DB.Where("email = ?", email).First(&mailExist)
	if mailExist.Email != "" {
		return middlewares.Fail(c, fiber.StatusBadRequest, "email already exists")
	}

	user := models.User{
		FirstName: strings.TrimSpace(data["first_name"]),
		LastName:  strings.TrimSpace(data["last_name"]),
		Email:     email,
		Role:      models.RoleUser,
	}
	user.SetPassword(data["password"])

	if err := database.DB.Create(&user).Error; err != nil {
		return middlewares.Fail(c, fiber.StatusBadRequest, "could not create user")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

func Login(c *fiber.Ctx) error {
	var data map[string]string
	if err := c.BodyParser(&data); err != nil {
		return middlewares.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	email := strings.TrimSpace(strings.ToLower(data["email"]))
	if _, err := mail.ParseAddress(email); err != nil {
		return middlewares.Fail(c, fiber.StatusBadRequest, "invalid email format")
	}

	var user models.User
	database.DB.Where("email = ?", email).First(&user)
	if user.Id == "" {
		return middlewares.Fail(c, fiber.StatusBadRequest, "invalid credentials")
	}

	if err := user.ComparePassword(data["password"]); err != nil {
		return middlewares.Fail(c, fiber.StatusBadRequest, "invalid credentials")
	}

	token, err := middlewares.GenerateJWT(user.Id, user.Role)
	if err != nil {
		return middlewares.Fail(c, fiber.StatusInternalServerError, "could not issue token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user": fiber.Map{
			"id":     user.Id,
			"name":   user.FirstName + " " + user.LastName,
			"email":  user.Email,
			"role":   user.Role,
			"points": user.Points,
		},
	})
}

func Logout(c *fiber.Ctx) error {
	cookie := fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	}
	c.Cookie(&cookie)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "logged out",
	})
}

func GetProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return middlewares.Fail(c, fiber.StatusNotFound, "user not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// profilePatch is the partial-update DTO; nil fields stay untouched.
type profilePatch struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1"`
}

func UpdateProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var patch profilePatch
	if err := middlewares.BindAndValidate(c, &patch); err != nil {
		return err
	}

	updates := utils.UpdatesFromPtrDTO(&patch, nil)
	if len(updates) == 0 {
		return middlewares.Fail(c, fiber.StatusBadRequest, "no fields to update")
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return middlewares.Fail(c, fiber.StatusBadRequest, "could not update profile")
	}

	var user models.User
	database.DB.First(&user, "id = ?", userID)
	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}
