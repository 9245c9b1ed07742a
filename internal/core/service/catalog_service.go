package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/factory"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/ports"
)

// CatalogService implements catalog management.
type CatalogService struct {
	books  ports.BookRepository
	clock  factory.Clock
	logger zerolog.Logger
}

func NewCatalogService(books ports.BookRepository, clock factory.Clock, logger zerolog.Logger) *CatalogService {
	return &CatalogService{books: books, clock: clock, logger: logger}
}

func (s *CatalogService) AddBook(ctx context.Context, in ports.AddBookInput) (*domain.Book, error) {
	if in.ISBN == "" || in.Title == "" || in.TotalCopies < 1 {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.books.FindByISBN(ctx, in.ISBN); err == nil {
		return nil, domain.ErrBookExists
	} else if !errors.Is(err, domain.ErrBookNotFound) {
		return nil, err
	}

	book := &domain.Book{
		ID:          uuid.New(),
		ISBN:        in.ISBN,
		Title:       in.Title,
		Author:      in.Author,
		TotalCopies: in.TotalCopies,
		Available:   in.TotalCopies,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.books.Create(ctx, book); err != nil {
		s.logger.Error().Err(err).Str("isbn", in.ISBN).Msg("failed to add book")
		return nil, err
	}

	s.logger.Info().Str("book_id", book.ID.String()).Str("title", book.Title).Msg("book added")
	return book, nil
}

func (s *CatalogService) GetBook(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	return s.books.FindByID(ctx, id)
}

func (s *CatalogService) ListBooks(ctx context.Context, filter ports.ListBooksFilter) ([]*domain.Book, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.books.List(ctx, filter)
}
