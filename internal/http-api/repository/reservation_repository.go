package repository

import (
	"context"
	"fmt"

	"bookhub/internal/http-api/models"

	"gorm.io/gorm"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *models.Reservation) error
	ListByBook(ctx context.Context, bookID int64) ([]models.Reservation, error)
	Count(ctx context.Context) (int64, error)
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

// Create inserts the reservation. Driver errors are returned as is, they
// reach clients in the reservation failure message.
func (r *reservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *reservationRepository) ListByBook(ctx context.Context, bookID int64) ([]models.Reservation, error) {
	var list []models.Reservation
	if err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return list, nil
}

func (r *reservationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Reservation{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count reservations: %w", err)
	}
	return count, nil
}
