package dto

import (
	"time"

	"bookhub/internal/http-api/models"
)

// CreateBookDTO used for POST /books
type CreateBookDTO struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// ReserveBookDTO carries the reserving user's email. It may arrive as JSON
// or as a form field.
type ReserveBookDTO struct {
	Email string `json:"email" form:"email"`
}

type BookResponse struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description,omitempty"`
	Status      models.BookStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (d CreateBookDTO) ToModel() models.Book {
	b := models.Book{
		Title:       d.Title,
		Description: d.Description,
	}
	if d.Status != nil {
		b.Status = models.BookStatus(*d.Status)
	}
	return b
}

func FromModelToResponse(b models.Book) BookResponse {
	return BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
