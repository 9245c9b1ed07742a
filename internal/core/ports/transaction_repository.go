package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
)

// TransactionRepository defines persistence operations for loan transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Transaction, error)
	// ListOpen returns every transaction still in ISSUED state with a due
	// date on or before horizon. The overdue scanner uses this to find
	// loans that are due soon or already late.
	ListOpen(ctx context.Context, horizon time.Time) ([]*domain.Transaction, error)
	Update(ctx context.Context, tx *domain.Transaction) error
}
