package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/api/metrics"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/factory"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/ports"
)

// FineService implements fine issuing and settlement.
type FineService struct {
	fines    ports.FineRepository
	users    ports.UserRepository
	books    ports.BookRepository
	factory  *factory.Factory
	notifier Notifier
	logger   zerolog.Logger
}

func NewFineService(fines ports.FineRepository, users ports.UserRepository, books ports.BookRepository, f *factory.Factory, notifier Notifier, logger zerolog.Logger) *FineService {
	return &FineService{fines: fines, users: users, books: books, factory: f, notifier: notifier, logger: logger}
}

func (s *FineService) IssueDamageFine(ctx context.Context, in ports.DamageFineInput) (*domain.Fine, error) {
	user, err := s.users.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	book, err := s.books.FindByID(ctx, in.BookID)
	if err != nil {
		return nil, err
	}

	fine, err := s.factory.DamageFine(user, book, in.Amount, in.Description)
	if err != nil {
		return nil, err
	}

	if err := s.fines.Create(ctx, fine); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to create damage fine")
		return nil, err
	}

	metrics.FinesIssued.WithLabelValues("damage").Inc()
	s.notifier.Enqueue(s.factory.FineNotification(user, fine.Amount, fine.Reason))

	s.logger.Info().
		Str("fine_id", fine.ID.String()).
		Str("user_id", user.ID.String()).
		Float64("amount", fine.Amount).
		Msg("damage fine issued")

	return fine, nil
}

// Pay records a payment against a pending fine. Overpaying is rejected; the
// fine moves to PAID once payments cover the full amount.
func (s *FineService) Pay(ctx context.Context, fineID uuid.UUID, amount float64) (*domain.Fine, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidInput
	}

	fine, err := s.fines.FindByID(ctx, fineID)
	if err != nil {
		return nil, err
	}
	if fine.Status != domain.FinePending {
		return nil, domain.ErrInvalidTransition
	}
	if fine.PaidAmount+amount > fine.Amount {
		return nil, domain.ErrInvalidInput
	}

	fine.PaidAmount += amount
	if fine.PaidAmount >= fine.Amount {
		fine.Status = domain.FinePaid
	}

	if err := s.fines.Update(ctx, fine); err != nil {
		s.logger.Error().Err(err).Str("fine_id", fineID.String()).Msg("failed to update fine")
		return nil, err
	}

	s.logger.Info().
		Str("fine_id", fine.ID.String()).
		Float64("paid", amount).
		Str("status", string(fine.Status)).
		Msg("fine payment recorded")

	return fine, nil
}

func (s *FineService) Waive(ctx context.Context, fineID uuid.UUID) (*domain.Fine, error) {
	fine, err := s.fines.FindByID(ctx, fineID)
	if err != nil {
		return nil, err
	}
	if !fine.Status.CanTransitionTo(domain.FineWaived) {
		return nil, domain.ErrInvalidTransition
	}

	fine.Status = domain.FineWaived
	if err := s.fines.Update(ctx, fine); err != nil {
		s.logger.Error().Err(err).Str("fine_id", fineID.String()).Msg("failed to update fine")
		return nil, err
	}

	s.logger.Info().Str("fine_id", fine.ID.String()).Msg("fine waived")
	return fine, nil
}

func (s *FineService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Fine, error) {
	return s.fines.ListForUser(ctx, userID)
}
