package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking snapshots the session it was made against so the student's record
// stays accurate even if the tutor later edits or the admin deletes the
// session. The (SessionID, UserEmail) unique index is what enforces
// one-booking-per-student; duplicate inserts surface as gorm.ErrDuplicatedKey.
type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookings_session_user" json:"sessionId"`
	UserEmail string    `gorm:"size:255;not null;uniqueIndex:idx_bookings_session_user" json:"userEmail"`

	TutorEmail      string    `gorm:"size:255;not null" json:"tutorEmail"`
	TutorName       string    `gorm:"size:255" json:"tutorName"`
	SessionTitle    string    `gorm:"size:255" json:"sessionTitle"`
	Subject         string    `gorm:"size:100" json:"subject"`
	Description     string    `gorm:"type:text" json:"description"`
	ImageURL        string    `gorm:"type:text" json:"image"`
	DriveLink       string    `gorm:"type:text" json:"driveLink"`
	ClassStart      time.Time `json:"classStart"`
	ClassEnd        time.Time `json:"classEnd"`
	RegistrationFee float64   `gorm:"type:numeric(10,2);not null;default:0" json:"registrationFee"`

	Status        string    `gorm:"size:20;not null;default:'booked'" json:"status"`
	Fee           string    `gorm:"size:10;not null" json:"fee"`
	TransactionID *string   `gorm:"size:255" json:"transactionId,omitempty"`
	BookedAt      time.Time `json:"bookedAt"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
