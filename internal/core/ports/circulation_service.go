package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
)

// BorrowInput identifies the user and book for a new loan.
type BorrowInput struct {
	UserID uuid.UUID
	BookID uuid.UUID
}

// ReturnResult reports the outcome of a return. Fine is nil when the book
// came back on time.
type ReturnResult struct {
	Transaction *domain.Transaction
	Fine        *domain.Fine
}

type CirculationService interface {
	Borrow(ctx context.Context, in BorrowInput) (*domain.Transaction, error)
	Return(ctx context.Context, txID uuid.UUID) (*ReturnResult, error)
	GetTransaction(ctx context.Context, txID uuid.UUID) (*domain.Transaction, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Transaction, error)
}
