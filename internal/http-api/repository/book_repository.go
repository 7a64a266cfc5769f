package repository

import (
	"context"
	"errors"
	"fmt"
	"math"

	"bookhub/internal/http-api/models"

	"gorm.io/gorm"
)

type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	ListSummaries(ctx context.Context, page, perPage int) ([]models.BookSummary, error)
	MarkReserved(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	if err := r.db.WithContext(ctx).Omit("Reservations").Create(book).Error; err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

func (r *bookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	var b models.Book
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ListSummaries returns one page of books ordered by title. Pages start at 1.
func (r *bookRepository) ListSummaries(ctx context.Context, page, perPage int) ([]models.BookSummary, error) {
	list := make([]models.BookSummary, 0)

	// an offset past math.MaxInt cannot point at a row
	if page < 1 || perPage < 1 || page-1 > math.MaxInt/perPage {
		return list, nil
	}
	offset := (page - 1) * perPage

	if err := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Select("id", "title", "status").
		Order("title ASC").
		Order("id ASC").
		Limit(perPage).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	return list, nil
}

// MarkReserved moves an available book to reserved. It returns
// ErrStatusConflict when the book is not available at update time. Driver
// errors are returned as is.
func (r *bookRepository) MarkReserved(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("id = ? AND status = ?", id, models.BookStatusAvailable).
		Update("status", models.BookStatusReserved)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}

// Delete removes a book; its reservations go with it through the foreign key.
func (r *bookRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Book{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete book: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
