package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/factory"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/ports"
)

// UserService implements profile reads and updates.
type UserService struct {
	users  ports.UserRepository
	clock  factory.Clock
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, clock factory.Clock, logger zerolog.Logger) *UserService {
	return &UserService{users: users, clock: clock, logger: logger}
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UpdateProfile applies the set fields to the stored profile. Unset fields
// are left as they are.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, in ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != user.Email {
		existing, err := s.users.FindByEmail(ctx, *in.Email)
		if err == nil && existing.ID != userID {
			return nil, domain.ErrUserExists
		}
		user.Email = *in.Email
	}
	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Address != nil {
		user.Address = *in.Address
	}
	user.UpdatedAt = s.clock.Now()

	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to update profile")
		return nil, err
	}

	s.logger.Info().Str("user_id", userID.String()).Msg("profile updated")
	return user, nil
}

// Deactivate marks the account inactive.
func (s *UserService) Deactivate(ctx context.Context, userID uuid.UUID) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.IsActive {
		return nil
	}
	user.IsActive = false
	user.UpdatedAt = s.clock.Now()

	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to deactivate user")
		return err
	}

	s.logger.Info().Str("user_id", userID.String()).Msg("user deactivated")
	return nil
}
