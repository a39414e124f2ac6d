package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ExchangeCompleted = "completed"
	ExchangeCancelled = "cancelled"
)

// Exchange records a point redemption. ProductSnapshot freezes the product
// as it was at redemption time so later price/stock edits don't rewrite history.
type Exchange struct {
	Id              string         `json:"id" gorm:"primaryKey"`
	UserId          string         `json:"user_id" gorm:"not null;index"`
	User            User           `json:"-" gorm:"foreignKey:UserId;references:Id"`
	ProductId       string         `json:"product_id" gorm:"not null;index"`
	Product         Product        `json:"-" gorm:"foreignKey:ProductId;references:Id"`
	PointsSpent     int            `json:"points_spent" gorm:"not null"`
	Status          string         `json:"status" gorm:"size:16;default:completed"`
	ProductSnapshot datatypes.JSON `json:"product_snapshot" gorm:"type:jsonb"`
	CreatedAt       time.Time      `json:"created_at"`
}

func (e *Exchange) BeforeCreate(tx *gorm.DB) (err error) {
	if e.Id == "" {
		e.Id = uuid.NewString()
	}
	if e.Status == "" {
		e.Status = ExchangeCompleted
	}
	return
}
