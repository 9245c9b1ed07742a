package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
)

// ListBooksFilter carries all query parameters for listing the catalog.
type ListBooksFilter struct {
	Search        string // optional: partial match on title, author or ISBN
	AvailableOnly bool   // optional: only books with at least one free copy
	Page          int    // 1-based
	Limit         int    // max rows per page (capped at 100 by service)
}

// BookRepository defines persistence operations for the catalog.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	FindByISBN(ctx context.Context, isbn string) (*domain.Book, error)
	// List returns a page of books matching filter and the total count.
	List(ctx context.Context, filter ListBooksFilter) ([]*domain.Book, int64, error)
	// AdjustAvailable atomically adds delta to the book's available count.
	// A negative delta that would take the count below zero fails with
	// domain.ErrBookUnavailable.
	AdjustAvailable(ctx context.Context, id uuid.UUID, delta int) error
}
