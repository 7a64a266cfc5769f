package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a looked-up record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrStatusConflict is returned when a guarded status transition matched
	// no row, i.e. the book was no longer in the expected state.
	ErrStatusConflict = errors.New("book status changed concurrently")
)

// Store is the unit of work over books and reservations. Repositories
// obtained from the Store passed to a Transaction callback share its
// transaction.
type Store interface {
	Books() BookRepository
	Reservations() ReservationRepository
	Transaction(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Books() BookRepository {
	return NewBookRepository(s.db)
}

func (s *gormStore) Reservations() ReservationRepository {
	return NewReservationRepository(s.db)
}

// Transaction runs fn inside a database transaction. Any error returned by
// fn rolls the transaction back and is returned as is.
func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
