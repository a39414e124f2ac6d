package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a note between a user and the admin team.
// An empty RecipientId addresses the admin inbox.
type Message struct {
	Id          string     `json:"id" gorm:"primaryKey"`
	SenderId    string     `json:"sender_id" gorm:"not null;index"`
	RecipientId string     `json:"recipient_id" gorm:"index"`
	Subject     string     `json:"subject" gorm:"size:255"`
	Body        string     `json:"body" gorm:"not null"`
	ReadAt      *time.Time `json:"read_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.Id == "" {
		m.Id = uuid.NewString()
	}
	return
}
