package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SessionID     uuid.UUID `gorm:"type:uuid;not null;index" json:"sessionId"`
	ReviewerName  string    `gorm:"size:255;not null" json:"reviewerName"`
	ReviewerEmail string    `gorm:"size:255;not null" json:"reviewerEmail"`
	ReviewerImage *string   `gorm:"size:512" json:"reviewerImage"`
	Rating        int       `gorm:"not null" json:"rating"`
	Comment       string    `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
