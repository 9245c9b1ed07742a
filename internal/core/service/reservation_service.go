package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/factory"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/ports"
)

// ReservationService implements the hold queue.
type ReservationService struct {
	reservations ports.ReservationRepository
	books        ports.BookRepository
	users        ports.UserRepository
	factory      *factory.Factory
	notifier     Notifier
	expiryDays   int
	logger       zerolog.Logger
}

func NewReservationService(
	reservations ports.ReservationRepository,
	books ports.BookRepository,
	users ports.UserRepository,
	f *factory.Factory,
	notifier Notifier,
	expiryDays int,
	logger zerolog.Logger,
) *ReservationService {
	if expiryDays <= 0 {
		expiryDays = 7
	}
	return &ReservationService{
		reservations: reservations,
		books:        books,
		users:        users,
		factory:      f,
		notifier:     notifier,
		expiryDays:   expiryDays,
		logger:       logger,
	}
}

// Reserve places a hold at the back of the book's queue.
func (s *ReservationService) Reserve(ctx context.Context, userID, bookID uuid.UUID) (*domain.Reservation, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}
	book, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	ahead, err := s.reservations.CountActiveForBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	res, err := s.factory.Reservation(user, book, int(ahead)+1)
	if err != nil {
		return nil, err
	}

	if err := s.reservations.Create(ctx, res); err != nil {
		s.logger.Error().Err(err).Str("book_id", bookID.String()).Msg("failed to create reservation")
		return nil, err
	}

	s.logger.Info().
		Str("reservation_id", res.ID.String()).
		Str("user_id", userID.String()).
		Str("book_id", bookID.String()).
		Int("queue_position", res.QueuePosition).
		Msg("reservation placed")

	return res, nil
}

// MarkReady moves a pending reservation to READY with a pickup deadline and
// notifies the user.
func (s *ReservationService) MarkReady(ctx context.Context, resID uuid.UUID) (*domain.Reservation, error) {
	res, err := s.reservations.FindByID(ctx, resID)
	if err != nil {
		return nil, err
	}
	return s.makeReady(ctx, res)
}

// PromoteNextForBook moves the head of the book's hold queue to READY.
// Returns ErrReservationNotFound when nobody is waiting for the book.
func (s *ReservationService) PromoteNextForBook(ctx context.Context, bookID uuid.UUID) (*domain.Reservation, error) {
	next, err := s.reservations.FindNextPendingForBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return s.makeReady(ctx, next)
}

func (s *ReservationService) makeReady(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	ready, err := s.factory.ReadyReservation(res, s.expiryDays)
	if err != nil {
		return nil, err
	}

	if err := s.reservations.Update(ctx, ready); err != nil {
		s.logger.Error().Err(err).Str("reservation_id", ready.ID.String()).Msg("failed to update reservation")
		return nil, err
	}

	if user, err := s.users.FindByID(ctx, ready.UserID); err == nil {
		book := &domain.Book{ID: ready.BookID, Title: ready.BookTitle}
		s.notifier.Enqueue(s.factory.ReservationReadyNotification(user, book, *ready.ExpiryDate))
	}

	s.logger.Info().
		Str("reservation_id", ready.ID.String()).
		Time("expiry_date", *ready.ExpiryDate).
		Msg("reservation ready for pickup")

	return ready, nil
}

// Cancel is owner-scoped: only the user who placed the hold may cancel it.
func (s *ReservationService) Cancel(ctx context.Context, resID, userID uuid.UUID) (*domain.Reservation, error) {
	res, err := s.reservations.FindByID(ctx, resID)
	if err != nil {
		return nil, err
	}
	if res.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if !res.Status.CanTransitionTo(domain.ReservationCancelled) {
		return nil, domain.ErrInvalidTransition
	}

	res.Status = domain.ReservationCancelled
	if err := s.reservations.Update(ctx, res); err != nil {
		s.logger.Error().Err(err).Str("reservation_id", resID.String()).Msg("failed to update reservation")
		return nil, err
	}

	s.logger.Info().Str("reservation_id", res.ID.String()).Msg("reservation cancelled")
	return res, nil
}

func (s *ReservationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Reservation, error) {
	return s.reservations.ListForUser(ctx, userID)
}
