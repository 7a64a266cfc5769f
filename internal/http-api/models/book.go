package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// BookStatus is the closed set of states a Book can be in.
type BookStatus string

const (
	BookStatusAvailable  BookStatus = "available"
	BookStatusReserved   BookStatus = "reserved"
	BookStatusCheckedOut BookStatus = "checked_out"
)

var (
	ErrTitleRequired = errors.New("title can't be blank")
	ErrInvalidStatus = errors.New("status must be one of: available, reserved, checked_out")
)

// BookStatuses lists every valid status in declaration order.
func BookStatuses() []BookStatus {
	return []BookStatus{BookStatusAvailable, BookStatusReserved, BookStatusCheckedOut}
}

func (s BookStatus) Valid() bool {
	switch s {
	case BookStatusAvailable, BookStatusReserved, BookStatusCheckedOut:
		return true
	}
	return false
}

// Available reports whether a book in this status may be reserved.
func (s BookStatus) Available() bool {
	switch s {
	case BookStatusAvailable:
		return true
	case BookStatusReserved, BookStatusCheckedOut:
		return false
	}
	return false
}

type Book struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string     `json:"title" gorm:"not null;index"`
	Description *string    `json:"description,omitempty" gorm:"type:text"`
	Status      BookStatus `json:"status" gorm:"type:varchar(20);not null;default:available;index"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	// association, removed together with the book
	Reservations []Reservation `json:"reservations,omitempty" gorm:"constraint:OnDelete:CASCADE;"`
}

func (Book) TableName() string {
	return "books"
}

// Validate checks the invariants a Book must hold before it is stored.
func (b *Book) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return ErrTitleRequired
	}
	if !b.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.Status == "" {
		b.Status = BookStatusAvailable
	}
	return b.Validate()
}

// BookSummary is the listing projection of a Book.
type BookSummary struct {
	ID     int64      `json:"id"`
	Title  string     `json:"title"`
	Status BookStatus `json:"status"`
}
