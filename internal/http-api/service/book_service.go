package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bookhub/internal/cache"
	"bookhub/internal/http-api/models"
	"bookhub/internal/http-api/repository"

	jsoniter "github.com/json-iterator/go"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10

	// DefaultIndexTTL is how long a listing page stays cached.
	DefaultIndexTTL = 30 * time.Minute
)

var indexJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// IndexCacheKey is the cache key of one listing page.
func IndexCacheKey(page, perPage int) string {
	return fmt.Sprintf("books_index_%d_%d", page, perPage)
}

type BookService interface {
	// List returns the JSON encoded page of book summaries.
	List(ctx context.Context, page, perPage int) ([]byte, error)
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	Create(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id int64) error
}

type bookService struct {
	repo   repository.BookRepository
	cache  cache.Cache
	ttl    time.Duration
	logger *slog.Logger
}

func NewBookService(repo repository.BookRepository, c cache.Cache, ttl time.Duration, logger *slog.Logger) BookService {
	if ttl <= 0 {
		ttl = DefaultIndexTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &bookService{
		repo:   repo,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

// List serves a page from the cache when present. Entries are never
// invalidated, a page may be stale for up to the TTL.
func (s *bookService) List(ctx context.Context, page, perPage int) ([]byte, error) {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	key := IndexCacheKey(page, perPage)

	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		// an unreachable cache degrades to a store read
		s.logger.Warn("books_cache_read_failed", "key", key, "error", err)
	}

	s.logger.Debug("books_cache_miss", "key", key)

	list, err := s.repo.ListSummaries(ctx, page, perPage)
	if err != nil {
		return nil, err
	}

	payload, err := indexJSON.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("encode books page: %w", err)
	}

	if err := s.cache.Set(ctx, key, payload, s.ttl); err != nil {
		s.logger.Warn("books_cache_write_failed", "key", key, "error", err)
	}

	return payload, nil
}

func (s *bookService) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *bookService) Create(ctx context.Context, book *models.Book) error {
	book.Title = strings.TrimSpace(book.Title)
	if book.Status == "" {
		book.Status = models.BookStatusAvailable
	}
	if err := book.Validate(); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return err
	}

	s.logger.Info("book_created", "book_id", book.ID)
	return nil
}

// Delete removes the book together with all of its reservations.
func (s *bookService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("book_deleted", "book_id", id)
	return nil
}
