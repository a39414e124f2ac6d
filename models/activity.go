package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Activity status lifecycle: pending -> approved | rejected.
const (
	ActivityPending  = "pending"
	ActivityApproved = "approved"
	ActivityRejected = "rejected"
)

// Activity is a user-submitted carbon-saving action awaiting moderation.
// Points are zero until an admin approves the submission.
type Activity struct {
	Id           string         `json:"id" gorm:"primaryKey"`
	UserId       string         `json:"user_id" gorm:"not null;index"`
	User         User           `json:"-" gorm:"foreignKey:UserId;references:Id"`
	Category     string         `json:"category" gorm:"size:32;not null"`
	Description  string         `json:"description"`
	CarbonKg     float64        `json:"carbon_kg" gorm:"type:numeric(10,3)"`
	Points       int            `json:"points" gorm:"default:0"`
	Status       string         `json:"status" gorm:"size:16;default:pending;index"`
	ReviewNote   string         `json:"review_note"`
	ReviewerId   string         `json:"reviewer_id"`
	AttachmentId string         `json:"attachment_id"`
	Metadata     datatypes.JSON `json:"metadata" gorm:"type:jsonb"`
	CreatedAt    time.Time      `json:"created_at"`
	ReviewedAt   *time.Time     `json:"reviewed_at"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) (err error) {
	if a.Id == "" {
		a.Id = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = ActivityPending
	}
	return
}

// PointTransaction is an append-only ledger row. Positive delta = earned,
// negative = spent. ReferenceId points at the activity or exchange behind it.
type PointTransaction struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserId      string    `json:"user_id" gorm:"not null;index:idx_point_tx_user_created,priority:1"`
	Delta       int       `json:"delta" gorm:"not null"`
	Reason      string    `json:"reason" gorm:"size:32;not null"`
	ReferenceId string    `json:"reference_id"`
	CreatedAt   time.Time `json:"created_at" gorm:"index:idx_point_tx_user_created,priority:2"`
}

const (
	ReasonActivityApproved = "activity_approved"
	ReasonExchange         = "exchange"
)
