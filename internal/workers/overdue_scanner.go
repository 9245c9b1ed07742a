package workers

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/api/metrics"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/factory"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/ports"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/service"
)

const defaultScanInterval = time.Hour

// Dedup suppresses repeat notices for the same loan on the same day. The
// Redis-backed NoticeDedup implements it.
type Dedup interface {
	AlreadySent(ctx context.Context, noticeType, transactionID string, day time.Time) (bool, error)
	Mark(ctx context.Context, noticeType, transactionID string, day time.Time) error
}

// OverdueScanner periodically walks open loans, reminds users of books due
// soon, and keeps overdue fines growing day by day.
type OverdueScanner struct {
	transactions ports.TransactionRepository
	fines        ports.FineRepository
	users        ports.UserRepository
	factory      *factory.Factory
	notifier     service.Notifier
	dedup        Dedup
	clock        factory.Clock
	finePerDay   float64
	dueSoonDays  int
	interval     time.Duration
	log          zerolog.Logger
}

func NewOverdueScanner(
	transactions ports.TransactionRepository,
	fines ports.FineRepository,
	users ports.UserRepository,
	f *factory.Factory,
	notifier service.Notifier,
	dedup Dedup,
	clock factory.Clock,
	finePerDay float64,
	dueSoonDays int,
	interval time.Duration,
	log zerolog.Logger,
) *OverdueScanner {
	if dueSoonDays < 0 {
		dueSoonDays = 0
	}
	if interval <= 0 {
		interval = defaultScanInterval
	}
	return &OverdueScanner{
		transactions: transactions,
		fines:        fines,
		users:        users,
		factory:      f,
		notifier:     notifier,
		dedup:        dedup,
		clock:        clock,
		finePerDay:   finePerDay,
		dueSoonDays:  dueSoonDays,
		interval:     interval,
		log:          log,
	}
}

// Run scans immediately and then on every tick until ctx is cancelled.
func (s *OverdueScanner) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Scan(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Scan(ctx)
		}
	}
}

// Scan processes one full pass over the open loans.
func (s *OverdueScanner) Scan(ctx context.Context) {
	start := time.Now()
	now := s.clock.Now()
	today := dateOf(now)
	horizon := today.AddDate(0, 0, s.dueSoonDays)

	open, err := s.transactions.ListOpen(ctx, horizon.Add(24*time.Hour-time.Nanosecond))
	if err != nil {
		s.log.Error().Err(err).Msg("overdue scan: listing open loans failed")
		return
	}

	var dueSoon, overdue int
	for _, tx := range open {
		daysLeft := daysBetween(today, dateOf(tx.DueDate))
		if daysLeft >= 0 {
			if s.remindDueSoon(ctx, tx, today) {
				dueSoon++
			}
			continue
		}
		if s.handleOverdue(ctx, tx, today) {
			overdue++
		}
	}

	metrics.OverdueScans.Inc()
	metrics.OverdueScanDuration.Observe(time.Since(start).Seconds())
	s.log.Info().
		Int("open_loans", len(open)).
		Int("due_soon_notices", dueSoon).
		Int("overdue_notices", overdue).
		Msg("overdue scan completed")
}

// remindDueSoon sends at most one due-soon notice per loan per day.
func (s *OverdueScanner) remindDueSoon(ctx context.Context, tx *domain.Transaction, today time.Time) bool {
	sent, err := s.dedup.AlreadySent(ctx, string(domain.NotifyBookDueSoon), tx.ID.String(), today)
	if err != nil {
		s.log.Error().Err(err).Str("transaction_id", tx.ID.String()).Msg("dedup check failed")
		return false
	}
	if sent {
		metrics.NoticeDedup.WithLabelValues("hit").Inc()
		return false
	}
	metrics.NoticeDedup.WithLabelValues("miss").Inc()

	user, err := s.users.FindByID(ctx, tx.UserID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", tx.UserID.String()).Msg("loading borrower failed")
		return false
	}

	book := &domain.Book{ID: tx.BookID, Title: tx.BookTitle}
	s.notifier.Enqueue(s.factory.DueSoonNotification(user, book, tx.DueDate))

	if err := s.dedup.Mark(ctx, string(domain.NotifyBookDueSoon), tx.ID.String(), today); err != nil {
		s.log.Error().Err(err).Str("transaction_id", tx.ID.String()).Msg("dedup mark failed")
	}
	return true
}

// handleOverdue keeps the loan's pending fine in step with the days elapsed
// and sends at most one overdue notice per loan per day.
func (s *OverdueScanner) handleOverdue(ctx context.Context, tx *domain.Transaction, today time.Time) bool {
	fine := s.factory.OverdueFine(tx, s.finePerDay)
	if fine == nil {
		return false
	}

	existing, err := s.fines.FindPendingByTransaction(ctx, tx.ID)
	switch {
	case err == nil:
		// Grow the open fine instead of stacking a new one per scan.
		if fine.Amount > existing.Amount {
			existing.Amount = fine.Amount
			existing.Reason = fine.Reason
			if err := s.fines.Update(ctx, existing); err != nil {
				s.log.Error().Err(err).Str("fine_id", existing.ID.String()).Msg("updating overdue fine failed")
				return false
			}
		}
	case errors.Is(err, domain.ErrFineNotFound):
		if err := s.fines.Create(ctx, fine); err != nil {
			s.log.Error().Err(err).Str("transaction_id", tx.ID.String()).Msg("creating overdue fine failed")
			return false
		}
		metrics.FinesIssued.WithLabelValues("overdue").Inc()
	default:
		s.log.Error().Err(err).Str("transaction_id", tx.ID.String()).Msg("looking up pending fine failed")
		return false
	}

	sent, err := s.dedup.AlreadySent(ctx, string(domain.NotifyBookOverdue), tx.ID.String(), today)
	if err != nil {
		s.log.Error().Err(err).Str("transaction_id", tx.ID.String()).Msg("dedup check failed")
		return false
	}
	if sent {
		metrics.NoticeDedup.WithLabelValues("hit").Inc()
		return false
	}
	metrics.NoticeDedup.WithLabelValues("miss").Inc()

	user, err := s.users.FindByID(ctx, tx.UserID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", tx.UserID.String()).Msg("loading borrower failed")
		return false
	}

	book := &domain.Book{ID: tx.BookID, Title: tx.BookTitle}
	daysOverdue := daysBetween(dateOf(tx.DueDate), today)
	s.notifier.Enqueue(s.factory.OverdueNotification(user, book, daysOverdue))

	if err := s.dedup.Mark(ctx, string(domain.NotifyBookOverdue), tx.ID.String(), today); err != nil {
		s.log.Error().Err(err).Str("transaction_id", tx.ID.String()).Msg("dedup mark failed")
	}
	return true
}

// dateOf truncates a time to midnight UTC so day arithmetic ignores the
// time of day.
func dateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns b minus a in whole calendar days.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
