package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	DisplayName string     `gorm:"size:255;not null" json:"displayName"`
	Email       string     `gorm:"size:255;not null;unique" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	PhotoURL    *string    `gorm:"size:512" json:"photoURL"`
	Role        string     `gorm:"size:20;not null;default:'user'" json:"role"`
	GoogleID    *string    `gorm:"size:255;unique" json:"-"`
	LastLogInAt *time.Time `json:"last_log_in"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
