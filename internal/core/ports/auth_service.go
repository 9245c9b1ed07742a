package ports

import (
	"context"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
)

// RegisterInput carries all data needed to create a new account.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	FullName string
	Role     string // STUDENT or ADMIN; empty defaults to STUDENT
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login returns a signed JWT and the authenticated user.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
