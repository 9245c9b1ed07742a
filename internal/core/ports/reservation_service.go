package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
)

type ReservationService interface {
	Reserve(ctx context.Context, userID, bookID uuid.UUID) (*domain.Reservation, error)
	// MarkReady moves a pending reservation to READY and notifies the user
	// of the pickup deadline.
	MarkReady(ctx context.Context, resID uuid.UUID) (*domain.Reservation, error)
	// Cancel is owner-scoped: a reservation can only be cancelled by the
	// user who placed it.
	Cancel(ctx context.Context, resID, userID uuid.UUID) (*domain.Reservation, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Reservation, error)
}
