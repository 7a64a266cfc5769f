package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

var ErrUserEmailRequired = errors.New("user_email can't be blank")

type Reservation struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	BookID    int64     `json:"book_id" gorm:"not null;index"`
	UserEmail string    `json:"user_email" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Reservation) TableName() string {
	return "reservations"
}

func (r *Reservation) Validate() error {
	if strings.TrimSpace(r.UserEmail) == "" {
		return ErrUserEmailRequired
	}
	if r.BookID == 0 {
		return errors.New("book_id is required")
	}
	return nil
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	return r.Validate()
}
