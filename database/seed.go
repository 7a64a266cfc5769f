package database

import (
	"context"
	"fmt"
	"os"
	"time"

	"bookhub/internal/http-api/models"

	"github.com/jackc/pgx/v5"
	jsoniter "github.com/json-iterator/go"
)

const seedBatchSize = 500

// SeedBook is one entry of a seed file.
type SeedBook struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status,omitempty"`
}

// LoadSeedFile reads a JSON array of books.
func LoadSeedFile(path string) ([]SeedBook, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var books []SeedBook
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(raw, &books); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return books, nil
}

func toModels(seed []SeedBook) ([]models.Book, error) {
	now := time.Now().UTC()
	books := make([]models.Book, 0, len(seed))
	for i, s := range seed {
		b := models.Book{
			Title:       s.Title,
			Description: s.Description,
			Status:      models.BookStatus(s.Status),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if b.Status == "" {
			b.Status = models.BookStatusAvailable
		}
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("seed entry %d: %w", i, err)
		}
		books = append(books, b)
	}
	return books, nil
}

// SeedBooks inserts the given books. Postgres connections use COPY, sqlite
// falls back to batched inserts inside one transaction.
func SeedBooks(ctx context.Context, db *DB, seed []SeedBook) (int64, error) {
	books, err := toModels(seed)
	if err != nil {
		return 0, err
	}
	if len(books) == 0 {
		return 0, nil
	}

	if db.pool != nil {
		rows := make([][]any, 0, len(books))
		for _, b := range books {
			rows = append(rows, []any{b.Title, b.Description, string(b.Status), b.CreatedAt, b.UpdatedAt})
		}
		n, err := db.pool.CopyFrom(ctx,
			pgx.Identifier{models.Book{}.TableName()},
			[]string{"title", "description", "status", "created_at", "updated_at"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return 0, fmt.Errorf("copy books: %w", err)
		}
		return n, nil
	}

	result := db.WithContext(ctx).CreateInBatches(&books, seedBatchSize)
	if result.Error != nil {
		return 0, fmt.Errorf("insert books: %w", result.Error)
	}
	return result.RowsAffected, nil
}
