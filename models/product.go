package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a reward redeemable for points.
type Product struct {
	Id          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	PointCost   int       `json:"point_cost" gorm:"not null"`
	Stock       int       `json:"stock" gorm:"default:0"`
	Active      bool      `json:"active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.Id == "" {
		p.Id = uuid.NewString()
	}
	return
}
