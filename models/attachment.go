package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attachment is the metadata row for an uploaded proof image.
// Bytes live on local disk under UPLOAD_DIR; only the path is stored here.
type Attachment struct {
	Id          string    `json:"id" gorm:"primaryKey"`
	OwnerId     string    `json:"owner_id" gorm:"not null;index"`
	FileName    string    `json:"file_name" gorm:"not null"`
	StoredPath  string    `json:"-" gorm:"not null"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type" gorm:"size:100"`
	CreatedAt   time.Time `json:"created_at"`
}

func (a *Attachment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.Id == "" {
		a.Id = uuid.NewString()
	}
	return
}
