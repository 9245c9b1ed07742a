package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
)

// FineRepository defines persistence operations for fines.
type FineRepository interface {
	Create(ctx context.Context, fine *domain.Fine) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Fine, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Fine, error)
	// FindPendingByTransaction returns the open fine attached to a loan, if
	// any. The overdue scanner updates that fine in place instead of
	// stacking a new one per scan.
	FindPendingByTransaction(ctx context.Context, txID uuid.UUID) (*domain.Fine, error)
	Update(ctx context.Context, fine *domain.Fine) error
}
