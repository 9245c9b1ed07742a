package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
)

// DamageFineInput carries the data for a manually issued damage fine.
type DamageFineInput struct {
	UserID      uuid.UUID
	BookID      uuid.UUID
	Amount      float64
	Description string
}

type FineService interface {
	IssueDamageFine(ctx context.Context, in DamageFineInput) (*domain.Fine, error)
	// Pay records a payment against a pending fine. The fine moves to PAID
	// once payments cover the full amount.
	Pay(ctx context.Context, fineID uuid.UUID, amount float64) (*domain.Fine, error)
	Waive(ctx context.Context, fineID uuid.UUID) (*domain.Fine, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Fine, error)
}
