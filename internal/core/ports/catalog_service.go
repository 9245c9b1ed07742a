package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
)

// AddBookInput carries all data needed to add a title to the catalog.
type AddBookInput struct {
	ISBN        string
	Title       string
	Author      string
	TotalCopies int
}

type CatalogService interface {
	AddBook(ctx context.Context, in AddBookInput) (*domain.Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	// ListBooks returns a page of books and the total count.
	ListBooks(ctx context.Context, filter ListBooksFilter) ([]*domain.Book, int64, error)
}
