package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/api/metrics"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/factory"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/ports"
)

// HoldPromoter hands a freed copy to the next reservation in the book's
// queue. The reservation service implements it.
type HoldPromoter interface {
	PromoteNextForBook(ctx context.Context, bookID uuid.UUID) (*domain.Reservation, error)
}

// CirculationService implements borrowing and returning books.
type CirculationService struct {
	transactions ports.TransactionRepository
	books        ports.BookRepository
	users        ports.UserRepository
	fines        ports.FineRepository
	factory      *factory.Factory
	notifier     Notifier
	holds        HoldPromoter
	borrowDays   int
	finePerDay   float64
	logger       zerolog.Logger
}

func NewCirculationService(
	transactions ports.TransactionRepository,
	books ports.BookRepository,
	users ports.UserRepository,
	fines ports.FineRepository,
	f *factory.Factory,
	notifier Notifier,
	holds HoldPromoter,
	borrowDays int,
	finePerDay float64,
	logger zerolog.Logger,
) *CirculationService {
	if borrowDays <= 0 {
		borrowDays = 14
	}
	return &CirculationService{
		transactions: transactions,
		books:        books,
		users:        users,
		fines:        fines,
		factory:      f,
		notifier:     notifier,
		holds:        holds,
		borrowDays:   borrowDays,
		finePerDay:   finePerDay,
		logger:       logger,
	}
}

// Borrow issues a loan and takes one copy off the shelf. The availability
// decrement runs first so two concurrent borrows cannot oversell the last
// copy.
func (s *CirculationService) Borrow(ctx context.Context, in ports.BorrowInput) (*domain.Transaction, error) {
	user, err := s.users.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	book, err := s.books.FindByID(ctx, in.BookID)
	if err != nil {
		return nil, err
	}

	if err := s.books.AdjustAvailable(ctx, book.ID, -1); err != nil {
		return nil, err
	}

	tx, err := s.factory.BorrowTransaction(user, book, s.borrowDays)
	if err != nil {
		if restoreErr := s.books.AdjustAvailable(ctx, book.ID, +1); restoreErr != nil {
			s.logger.Error().Err(restoreErr).Str("book_id", book.ID.String()).Msg("failed to restore availability")
		}
		return nil, err
	}

	if err := s.transactions.Create(ctx, tx); err != nil {
		if restoreErr := s.books.AdjustAvailable(ctx, book.ID, +1); restoreErr != nil {
			s.logger.Error().Err(restoreErr).Str("book_id", book.ID.String()).Msg("failed to restore availability")
		}
		s.logger.Error().Err(err).Str("book_id", book.ID.String()).Msg("failed to create transaction")
		return nil, err
	}

	metrics.LoansIssued.Inc()
	s.logger.Info().
		Str("transaction_id", tx.ID.String()).
		Str("user_id", user.ID.String()).
		Str("book_id", book.ID.String()).
		Time("due_date", tx.DueDate).
		Msg("book borrowed")

	return tx, nil
}

// Return closes a loan and hands the copy to the next hold in the book's
// queue, or back to the shelf when nobody is waiting. A late return settles
// the loan's overdue fine at its final amount and notifies the user.
func (s *CirculationService) Return(ctx context.Context, txID uuid.UUID) (*ports.ReturnResult, error) {
	tx, err := s.transactions.FindByID(ctx, txID)
	if err != nil {
		return nil, err
	}

	returned, err := s.factory.ReturnTransaction(tx)
	if err != nil {
		return nil, err
	}

	if err := s.transactions.Update(ctx, returned); err != nil {
		s.logger.Error().Err(err).Str("transaction_id", txID.String()).Msg("failed to update transaction")
		return nil, err
	}

	if promoted, err := s.holds.PromoteNextForBook(ctx, returned.BookID); err == nil {
		s.logger.Info().
			Str("book_id", returned.BookID.String()).
			Str("reservation_id", promoted.ID.String()).
			Msg("returned copy held for next reservation")
	} else {
		if !errors.Is(err, domain.ErrReservationNotFound) {
			s.logger.Error().Err(err).Str("book_id", returned.BookID.String()).Msg("failed to promote next hold")
		}
		if err := s.books.AdjustAvailable(ctx, returned.BookID, +1); err != nil {
			s.logger.Error().Err(err).Str("book_id", returned.BookID.String()).Msg("failed to restore availability")
		}
	}

	metrics.LoansReturned.Inc()
	result := &ports.ReturnResult{Transaction: returned}

	fine := s.factory.OverdueFine(returned, s.finePerDay)
	if fine == nil {
		s.logger.Info().Str("transaction_id", returned.ID.String()).Msg("book returned on time")
		return result, nil
	}

	// The overdue scanner may already have opened a fine for this loan.
	// Settle that one at the final amount instead of stacking a second.
	existing, err := s.fines.FindPendingByTransaction(ctx, returned.ID)
	switch {
	case err == nil:
		if fine.Amount > existing.Amount {
			existing.Amount = fine.Amount
			existing.Reason = fine.Reason
		}
		if err := s.fines.Update(ctx, existing); err != nil {
			s.logger.Error().Err(err).Str("fine_id", existing.ID.String()).Msg("failed to update overdue fine")
			return nil, err
		}
		result.Fine = existing
	case errors.Is(err, domain.ErrFineNotFound):
		if err := s.fines.Create(ctx, fine); err != nil {
			s.logger.Error().Err(err).Str("transaction_id", returned.ID.String()).Msg("failed to create overdue fine")
			return nil, err
		}
		result.Fine = fine
		metrics.FinesIssued.WithLabelValues("overdue").Inc()

		if user, err := s.users.FindByID(ctx, returned.UserID); err == nil {
			s.notifier.Enqueue(s.factory.FineNotification(user, fine.Amount, fine.Reason))
		}
	default:
		s.logger.Error().Err(err).Str("transaction_id", returned.ID.String()).Msg("failed to look up pending fine")
		return nil, err
	}

	s.logger.Info().
		Str("transaction_id", returned.ID.String()).
		Float64("fine_amount", result.Fine.Amount).
		Msg("book returned late")

	return result, nil
}

func (s *CirculationService) GetTransaction(ctx context.Context, txID uuid.UUID) (*domain.Transaction, error) {
	return s.transactions.FindByID(ctx, txID)
}

func (s *CirculationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Transaction, error) {
	return s.transactions.ListForUser(ctx, userID)
}
