package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Material struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SessionID  uuid.UUID `gorm:"type:uuid;not null;index" json:"sessionId"`
	TutorEmail string    `gorm:"size:255;not null;index" json:"tutorEmail"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	ImageURL   string    `gorm:"type:text" json:"imageUrl"`
	DriveLink  string    `gorm:"type:text" json:"driveLink"`

	Session Session `gorm:"foreignkey:SessionID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *Material) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
