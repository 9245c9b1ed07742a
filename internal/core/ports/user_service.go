package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
)

// UpdateProfileInput carries the editable profile fields. Nil pointers mean
// "leave unchanged"; set pointers are applied even when empty, except where
// the transport layer's validation forbids it.
type UpdateProfileInput struct {
	FullName *string
	Email    *string
	Phone    *string
	Address  *string
}

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*domain.User, error)
	// Deactivate marks the account inactive. Inactive users cannot log in
	// or borrow. Deactivating an already inactive account is a no-op.
	Deactivate(ctx context.Context, userID uuid.UUID) error
}
