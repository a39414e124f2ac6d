package controllers

import (
	"ecotrack-backend/database"
	"ecotrack-backend/middlewares"
	"ecotrack-backend/models"
	"ecotrack-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type productCreate struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Description string `json:"description" validate:"max=1000"`
	PointCost   int    `json:"point_cost" validate:"required,gt=0"`
	Stock       int    `json:"stock" validate:"gte=0"`
}

func CreateProduct(c *fiber.Ctx) error {
	var dto productCreate
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	product := models.Product{
		Name:        dto.Name,
		Description: dto.Description,
		PointCost:   dto.PointCost,
		Stock:       dto.Stock,
		Active:      true,
	}

	if err := database.DB.Create(&product).Error; err != nil {
		return middlewares.Fail(c, fiber.StatusBadRequest, "could not create product")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"product": product,
	})
}

func GetProducts(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)

	q := database.DB.Model(&models.Product{}).Order("created_at DESC")
	// regular users only see redeemable products
	if role != models.RoleAdmin {
		q = q.Where("active = ?", true)
	}

	limit := utils.ParseIntDefault(c.Query("limit"), 50)
	offset := utils.ParseIntDefault(c.Query("offset"), 0)

	var products []models.Product
	if err := q.Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		return middlewares.Fail(c, fiber.StatusInternalServerError, "could not list products")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"products": products,
	})
}

func GetProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := database.DB.First(&product, "id = ?", c.Params("id")).Error; err != nil {
		return middlewares.Fail(c, fiber.StatusNotFound, "product not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"product": product,
	})
}

type productPatch struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	PointCost   *int    `json:"point_cost" validate:"omitempty,gt=0"`
	Stock       *int    `json:"stock" validate:"omitempty,gte=0"`
	Active      *bool   `json:"active"`
}

func UpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := database.DB.First(&product, "id = ?", c.Params("id")).Error; err != nil {
		return middlewares.Fail(c, fiber.StatusNotFound, "product not found")
	}

	var patch productPatch
	if err := middlewares.BindAndValidate(c, &patch); err != nil {
		return err
	}

	updates := utils.UpdatesFromPtrDTO(&patch, nil)
	if len(updates) == 0 {
		return middlewares.Fail(c, fiber.StatusBadRequest, "no fields to update")
	}

	if err := database.DB.Model(&product).Updates(updates).Error; err != nil {
		return middlewares.Fail(c, fiber.StatusBadRequest, "could not update product")
	}

	database.DB.First(&product, "id = ?", product.Id)
	return c.JSON(fiber.Map{
		"success": true,
		"product": product,
	})
}

// DeleteProduct deactivates rather than deletes so exchange history keeps
// a valid foreign key.
func DeleteProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := database.DB.First(&product, "id = ?", c.Params("id")).Error; err != nil {
		return middlewares.Fail(c, fiber.StatusNotFound, "product not found")
	}

	if err := database.DB.Model(&product).Update("active", false).Error; err != nil {
		return middlewares.Fail(c, fiber.StatusInternalServerError, "could not deactivate product")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "product deactivated",
	})
}
