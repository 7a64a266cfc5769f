package repository_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"bookhub/database"
	"bookhub/internal/http-api/models"
	"bookhub/internal/http-api/repository"

	"github.com/stretchr/testify/suite"
)

// RepositoryTestSuite runs every test against a fresh in-memory SQLite database.
type RepositoryTestSuite struct {
	suite.Suite
	db    *database.DB
	store repository.Store
	ctx   context.Context
}

func (s *RepositoryTestSuite) SetupTest() {
	db, err := database.OpenSQLite(":memory:", nil)
	s.Require().NoError(err)
	s.Require().NoError(database.Migrate(db.DB))

	s.db = db
	s.store = repository.NewStore(db.DB)
	s.ctx = context.Background()
}

func (s *RepositoryTestSuite) TearDownTest() {
	s.db.Close()
}

func (s *RepositoryTestSuite) createBook(title string, status models.BookStatus) *models.Book {
	b := &models.Book{Title: title, Status: status}
	s.Require().NoError(s.store.Books().Create(s.ctx, b))
	return b
}

func (s *RepositoryTestSuite) TestCreateBookDefaultsToAvailable() {
	b := &models.Book{Title: "Dune"}
	s.Require().NoError(s.store.Books().Create(s.ctx, b))

	s.NotZero(b.ID)
	got, err := s.store.Books().GetByID(s.ctx, b.ID)
	s.Require().NoError(err)
	s.Equal(models.BookStatusAvailable, got.Status)
	s.Nil(got.Description)
}

func (s *RepositoryTestSuite) TestCreateBookRequiresTitle() {
	err := s.store.Books().Create(s.ctx, &models.Book{})
	s.ErrorIs(err, models.ErrTitleRequired)
}

func (s *RepositoryTestSuite) TestGetByIDNotFound() {
	_, err := s.store.Books().GetByID(s.ctx, 9999)
	s.ErrorIs(err, repository.ErrNotFound)
}

func (s *RepositoryTestSuite) TestListSummariesOrderingAndPaging() {
	for i := 15; i >= 1; i-- {
		s.createBook(fmt.Sprintf("Book %02d", i), models.BookStatusAvailable)
	}

	first, err := s.store.Books().ListSummaries(s.ctx, 1, 10)
	s.Require().NoError(err)
	s.Len(first, 10)
	s.Equal("Book 01", first[0].Title)
	s.Equal("Book 10", first[9].Title)

	second, err := s.store.Books().ListSummaries(s.ctx, 2, 5)
	s.Require().NoError(err)
	s.Len(second, 5)
	s.Equal("Book 06", second[0].Title)

	last, err := s.store.Books().ListSummaries(s.ctx, 2, 10)
	s.Require().NoError(err)
	s.Len(last, 5)

	beyond, err := s.store.Books().ListSummaries(s.ctx, 4, 10)
	s.Require().NoError(err)
	s.NotNil(beyond)
	s.Empty(beyond)
}

func (s *RepositoryTestSuite) TestListSummariesHugePageIsEmpty() {
	for i := 1; i <= 3; i++ {
		s.createBook(fmt.Sprintf("Book %02d", i), models.BookStatusAvailable)
	}

	for _, tc := range []struct{ page, perPage int }{
		{4611686018427387904, 4},
		{math.MaxInt, 10},
		{math.MaxInt/10 + 2, 10},
		{2, math.MaxInt},
	} {
		list, err := s.store.Books().ListSummaries(s.ctx, tc.page, tc.perPage)
		s.Require().NoError(err)
		s.NotNil(list)
		s.Empty(list, "page=%d per_page=%d", tc.page, tc.perPage)
	}
}

func (s *RepositoryTestSuite) TestListSummariesTiesBrokenByID() {
	a := s.createBook("Same", models.BookStatusAvailable)
	b := s.createBook("Same", models.BookStatusReserved)

	list, err := s.store.Books().ListSummaries(s.ctx, 1, 10)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(a.ID, list[0].ID)
	s.Equal(b.ID, list[1].ID)
	s.Equal(models.BookStatusReserved, list[1].Status)
}

func (s *RepositoryTestSuite) TestListSummariesEmpty() {
	list, err := s.store.Books().ListSummaries(s.ctx, 1, 10)
	s.Require().NoError(err)
	s.NotNil(list)
	s.Empty(list)
}

func (s *RepositoryTestSuite) TestMarkReserved() {
	b := s.createBook("Dune", models.BookStatusAvailable)

	s.Require().NoError(s.store.Books().MarkReserved(s.ctx, b.ID))

	got, err := s.store.Books().GetByID(s.ctx, b.ID)
	s.Require().NoError(err)
	s.Equal(models.BookStatusReserved, got.Status)

	// second transition finds no available row
	s.ErrorIs(s.store.Books().MarkReserved(s.ctx, b.ID), repository.ErrStatusConflict)
}

func (s *RepositoryTestSuite) TestMarkReservedIgnoresCheckedOut() {
	b := s.createBook("Emma", models.BookStatusCheckedOut)
	s.ErrorIs(s.store.Books().MarkReserved(s.ctx, b.ID), repository.ErrStatusConflict)
}

func (s *RepositoryTestSuite) TestReservationRequiresEmail() {
	b := s.createBook("Dune", models.BookStatusAvailable)
	err := s.store.Reservations().Create(s.ctx, &models.Reservation{BookID: b.ID})
	s.ErrorIs(err, models.ErrUserEmailRequired)
}

func (s *RepositoryTestSuite) TestReservationRequiresExistingBook() {
	err := s.store.Reservations().Create(s.ctx, &models.Reservation{BookID: 4242, UserEmail: "a@example.com"})
	s.Error(err)
}

func (s *RepositoryTestSuite) TestReserveWriteErrorsAreNotWrapped() {
	b := s.createBook("Dune", models.BookStatusAvailable)
	s.Require().NoError(s.db.Migrator().DropTable(&models.Reservation{}))

	err := s.store.Reservations().Create(s.ctx, &models.Reservation{BookID: b.ID, UserEmail: "a@example.com"})
	s.Require().Error(err)
	s.Contains(err.Error(), "no such table")
	s.NotContains(err.Error(), "create reservation")
}

func (s *RepositoryTestSuite) TestBookHasManyReservations() {
	b := s.createBook("Dune", models.BookStatusAvailable)
	s.Require().NoError(s.store.Reservations().Create(s.ctx, &models.Reservation{BookID: b.ID, UserEmail: "a@example.com"}))
	s.Require().NoError(s.store.Reservations().Create(s.ctx, &models.Reservation{BookID: b.ID, UserEmail: "b@example.com"}))

	list, err := s.store.Reservations().ListByBook(s.ctx, b.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("a@example.com", list[0].UserEmail)
	s.Equal("b@example.com", list[1].UserEmail)
}

func (s *RepositoryTestSuite) TestDeleteCascadesToOwnReservationsOnly() {
	doomed := s.createBook("Doomed", models.BookStatusAvailable)
	kept := s.createBook("Kept", models.BookStatusAvailable)

	s.Require().NoError(s.store.Reservations().Create(s.ctx, &models.Reservation{BookID: doomed.ID, UserEmail: "a@example.com"}))
	s.Require().NoError(s.store.Reservations().Create(s.ctx, &models.Reservation{BookID: doomed.ID, UserEmail: "b@example.com"}))
	s.Require().NoError(s.store.Reservations().Create(s.ctx, &models.Reservation{BookID: kept.ID, UserEmail: "c@example.com"}))

	s.Require().NoError(s.store.Books().Delete(s.ctx, doomed.ID))

	count, err := s.store.Reservations().Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), count)

	remaining, err := s.store.Reservations().ListByBook(s.ctx, kept.ID)
	s.Require().NoError(err)
	s.Require().Len(remaining, 1)
	s.Equal("c@example.com", remaining[0].UserEmail)

	_, err = s.store.Books().GetByID(s.ctx, doomed.ID)
	s.ErrorIs(err, repository.ErrNotFound)
}

func (s *RepositoryTestSuite) TestDeleteMissingBook() {
	s.ErrorIs(s.store.Books().Delete(s.ctx, 9999), repository.ErrNotFound)
}

func (s *RepositoryTestSuite) TestTransactionRollsBack() {
	b := s.createBook("Dune", models.BookStatusAvailable)
	boom := errors.New("boom")

	err := s.store.Transaction(s.ctx, func(tx repository.Store) error {
		if err := tx.Books().MarkReserved(s.ctx, b.ID); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	got, err := s.store.Books().GetByID(s.ctx, b.ID)
	s.Require().NoError(err)
	s.Equal(models.BookStatusAvailable, got.Status)
}

func (s *RepositoryTestSuite) TestTransactionCommits() {
	b := s.createBook("Dune", models.BookStatusAvailable)

	err := s.store.Transaction(s.ctx, func(tx repository.Store) error {
		if err := tx.Books().MarkReserved(s.ctx, b.ID); err != nil {
			return err
		}
		return tx.Reservations().Create(s.ctx, &models.Reservation{BookID: b.ID, UserEmail: "a@example.com"})
	})
	s.Require().NoError(err)

	got, err := s.store.Books().GetByID(s.ctx, b.ID)
	s.Require().NoError(err)
	s.Equal(models.BookStatusReserved, got.Status)

	count, err := s.store.Reservations().Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), count)
}

func (s *RepositoryTestSuite) TestPing() {
	s.NoError(s.store.Ping(s.ctx))
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
