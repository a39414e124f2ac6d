package controllers

import (
	"encoding/json"

	"ecotrack-backend/database"
	"ecotrack-backend/middlewares"
	"ecotrack-backend/models"
	"ecotrack-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type exchangeCreate struct {
	ProductId string `json:"product_id" validate:"required,uuid4"`
}

// CreateExchange redeems points for a product: balance check, stock
// decrement, ledger debit and snapshot happen in one transaction.
func CreateExchange(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var dto exchangeCreate
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	var exchange models.Exchange
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ? AND active = ?", dto.ProductId, true).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}

		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}

		// Stock and balance are re-checked in the WHERE clause; a concurrent
		// redemption shows up as zero affected rows.
		res := tx.Model(&models.Product{}).
			Where("id = ? AND stock > 0", product.Id).
			Update("stock", gorm.Expr("stock - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusConflict, "product out of stock")
		}

		res = tx.Model(&models.User{}).
			Where("id = ? AND points >= ?", userID, product.PointCost).
			Update("points", gorm.Expr("points - ?", product.PointCost))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusConflict, "insufficient points")
		}

		snapshot, _ := json.Marshal(product)
		exchange = models.Exchange{
			UserId:          userID,
			ProductId:       product.Id,
			PointsSpent:     product.PointCost,
			Status:          models.ExchangeCompleted,
			ProductSnapshot: datatypes.JSON(snapshot),
		}
		if err := tx.Create(&exchange).Error; err != nil {
			return err
		}

		ledger := models.PointTransaction{
			UserId:      userID,
			Delta:       -product.PointCost,
			Reason:      models.ReasonExchange,
			ReferenceId: exchange.Id,
		}
		return tx.Create(&ledger).Error
	})
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return middlewares.Fail(c, fe.Code, fe.Message)
		}
		return middlewares.Fail(c, fiber.StatusInternalServerError, "could not complete exchange")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"exchange": exchange,
	})
}

func GetExchanges(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	role, _ := c.Locals("role").(string)

	q := database.DB.Model(&models.Exchange{}).Order("created_at DESC")
	if role != models.RoleAdmin {
		q = q.Where("user_id = ?", userID)
	}

	limit := utils.ParseIntDefault(c.Query("limit"), 50)
	offset := utils.ParseIntDefault(c.Query("offset"), 0)

	var exchanges []models.Exchange
	if err := q.Limit(limit).Offset(offset).Find(&exchanges).Error; err != nil {
		return middlewares.Fail(c, fiber.StatusInternalServerError, "could not list exchanges")
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"exchanges": exchanges,
	})
}
