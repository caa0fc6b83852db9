package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Session struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title             string    `gorm:"size:255;not null" json:"title"`
	Subject           string    `gorm:"size:100;not null" json:"subject"`
	Description       string    `gorm:"type:text" json:"description"`
	TutorEmail        string    `gorm:"size:255;not null;index" json:"tutorEmail"`
	TutorName         string    `gorm:"size:255;not null" json:"tutorName"`
	RegistrationStart time.Time `json:"registrationStart"`
	RegistrationEnd   time.Time `json:"registrationEnd"`
	ClassStart        time.Time `json:"classStart"`
	ClassEnd          time.Time `json:"classEnd"`
	Duration          string    `gorm:"size:50" json:"duration"`
	Status            string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	RegistrationFee   float64   `gorm:"type:numeric(10,2);not null;default:0" json:"registrationFee"`
	RejectionReason   string    `gorm:"type:text" json:"rejectionReason"`
	RejectionFeedback string    `gorm:"type:text" json:"rejectionFeedback"`

	// Denormalized from the latest uploaded material.
	HasMaterials bool   `gorm:"not null;default:false" json:"hasMaterials"`
	ImageURL     string `gorm:"type:text" json:"imageUrl"`
	DriveLink    string `gorm:"type:text" json:"driveLink"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
