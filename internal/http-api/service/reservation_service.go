package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"bookhub/internal/http-api/models"
	"bookhub/internal/http-api/repository"
)

// ReservationResult describes a successful reservation.
type ReservationResult struct {
	BookID    int64             `json:"book_id"`
	Status    models.BookStatus `json:"status"`
	UserEmail string            `json:"user_email"`
}

type ReservationService interface {
	Reserve(ctx context.Context, bookID int64, email string) (*ReservationResult, error)
}

type reservationService struct {
	store  repository.Store
	logger *slog.Logger
}

func NewReservationService(store repository.Store, logger *slog.Logger) ReservationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &reservationService{
		store:  store,
		logger: logger,
	}
}

// Reserve validates the email, then the book's existence, then its
// availability, in that order. On success the status change and the new
// reservation are committed together. Persistence failures are returned
// without translation.
func (s *reservationService) Reserve(ctx context.Context, bookID int64, email string) (*ReservationResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrInvalidEmail
	}

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		book, err := tx.Books().GetByID(ctx, bookID)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookNotFound
		}
		if err != nil {
			return err
		}

		if !book.Status.Available() {
			return ErrBookUnavailable
		}

		// guarded update: a concurrent reservation may have won since the read
		if err := tx.Books().MarkReserved(ctx, book.ID); err != nil {
			if errors.Is(err, repository.ErrStatusConflict) {
				return ErrBookUnavailable
			}
			return err
		}

		return tx.Reservations().Create(ctx, &models.Reservation{
			BookID:    book.ID,
			UserEmail: email,
		})
	})
	if err != nil {
		if _, ok := AsReservationError(err); !ok {
			s.logger.Error("reservation_failed", "book_id", bookID, "error", err)
		}
		return nil, err
	}

	s.logger.Info("reservation_created", "book_id", bookID)

	return &ReservationResult{
		BookID:    bookID,
		Status:    models.BookStatusReserved,
		UserEmail: email,
	}, nil
}
