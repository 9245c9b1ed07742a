package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
)

// ReservationRepository defines persistence operations for reservations.
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Reservation, error)
	// CountActiveForBook counts PENDING and READY reservations for a book.
	// The next reservation joins the queue at count+1.
	CountActiveForBook(ctx context.Context, bookID uuid.UUID) (int64, error)
	// FindNextPendingForBook returns the pending reservation with the lowest
	// queue position for a book, or domain.ErrReservationNotFound when the
	// queue is empty.
	FindNextPendingForBook(ctx context.Context, bookID uuid.UUID) (*domain.Reservation, error)
	Update(ctx context.Context, res *domain.Reservation) error
}
