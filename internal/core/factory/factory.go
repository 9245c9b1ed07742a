// Package factory builds and transitions domain records. Every operation is
// a pure function of its inputs and the injected clock: no I/O, no
// persistence. Callers own the returned values; transition operations return
// a new derived record and never mutate their argument.
package factory

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
)

// Factory constructs domain entities with derived fields (due dates, fine
// amounts, notification text) computed against the injected clock.
type Factory struct {
	clock Clock
}

// New returns a Factory reading "now" from clock.
func New(clock Clock) *Factory {
	return &Factory{clock: clock}
}

// today returns the current calendar day at midnight UTC. All day
// arithmetic is done on truncated dates so results never depend on the
// time of day an operation runs.
func (f *Factory) today() time.Time {
	return dateOf(f.clock.Now())
}

func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole calendar days from a to b (negative when b
// precedes a).
func daysBetween(a, b time.Time) int {
	return int(dateOf(b).Sub(dateOf(a)).Hours() / 24)
}

// BorrowTransaction creates an ISSUED transaction due borrowDays from today.
func (f *Factory) BorrowTransaction(user *domain.User, book *domain.Book, borrowDays int) (*domain.Transaction, error) {
	if user == nil || book == nil {
		return nil, fmt.Errorf("%w: user and book are required", domain.ErrInvalidInput)
	}
	if borrowDays <= 0 {
		return nil, fmt.Errorf("%w: borrow days must be positive, got %d", domain.ErrInvalidInput, borrowDays)
	}

	today := f.today()
	return &domain.Transaction{
		ID:        uuid.New(),
		UserID:    user.ID,
		BookID:    book.ID,
		BookTitle: book.Title,
		IssueDate: today,
		DueDate:   today.AddDate(0, 0, borrowDays),
		Status:    domain.TransactionIssued,
	}, nil
}

// ReturnTransaction derives the RETURNED form of tx with today's return
// date. Only an ISSUED transaction can be returned.
func (f *Factory) ReturnTransaction(tx *domain.Transaction) (*domain.Transaction, error) {
	if tx == nil {
		return nil, fmt.Errorf("%w: transaction is required", domain.ErrInvalidInput)
	}
	if !tx.Status.CanTransitionTo(domain.TransactionReturned) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, tx.Status, domain.TransactionReturned)
	}

	returned := *tx
	today := f.today()
	returned.ReturnDate = &today
	returned.Status = domain.TransactionReturned
	return &returned, nil
}

// OverdueFine computes the fine for a late transaction at finePerDay per
// day overdue. It returns nil when the transaction is not overdue: absence
// of a fine, not a zero-amount fine.
func (f *Factory) OverdueFine(tx *domain.Transaction, finePerDay float64) *domain.Fine {
	daysOverdue := daysBetween(tx.DueDate, f.today())
	if daysOverdue <= 0 {
		return nil
	}

	txID := tx.ID
	return &domain.Fine{
		ID:            uuid.New(),
		UserID:        tx.UserID,
		TransactionID: &txID,
		Amount:        float64(daysOverdue) * finePerDay,
		PaidAmount:    0,
		Reason:        fmt.Sprintf("Overdue return of %q: %d day(s) past the due date", tx.BookTitle, daysOverdue),
		Status:        domain.FinePending,
		CreatedAt:     f.clock.Now(),
	}
}

// DamageFine creates a fine for book damage. The amount is set by the
// caller, not derived, and the fine has no transaction association.
func (f *Factory) DamageFine(user *domain.User, book *domain.Book, amount float64, description string) (*domain.Fine, error) {
	if user == nil || book == nil {
		return nil, fmt.Errorf("%w: user and book are required", domain.ErrInvalidInput)
	}
	if amount < 0 {
		return nil, fmt.Errorf("%w: fine amount must not be negative", domain.ErrInvalidInput)
	}

	return &domain.Fine{
		ID:         uuid.New(),
		UserID:     user.ID,
		Amount:     amount,
		PaidAmount: 0,
		Reason:     fmt.Sprintf("Damage to %q: %s", book.Title, description),
		Status:     domain.FinePending,
		CreatedAt:  f.clock.Now(),
	}, nil
}

// Reservation creates a PENDING reservation at the given queue position.
// Queue ordering itself is the reservation service's responsibility.
func (f *Factory) Reservation(user *domain.User, book *domain.Book, queuePosition int) (*domain.Reservation, error) {
	if user == nil || book == nil {
		return nil, fmt.Errorf("%w: user and book are required", domain.ErrInvalidInput)
	}
	if queuePosition < 1 {
		return nil, fmt.Errorf("%w: queue position must be at least 1, got %d", domain.ErrInvalidInput, queuePosition)
	}

	return &domain.Reservation{
		ID:            uuid.New(),
		UserID:        user.ID,
		BookID:        book.ID,
		BookTitle:     book.Title,
		Status:        domain.ReservationPending,
		QueuePosition: queuePosition,
		CreatedAt:     f.clock.Now(),
	}, nil
}

// ReadyReservation derives the READY form of a PENDING reservation, with an
// expiry date expirationDays from today.
func (f *Factory) ReadyReservation(res *domain.Reservation, expirationDays int) (*domain.Reservation, error) {
	if res == nil {
		return nil, fmt.Errorf("%w: reservation is required", domain.ErrInvalidInput)
	}
	if expirationDays <= 0 {
		return nil, fmt.Errorf("%w: expiration days must be positive, got %d", domain.ErrInvalidInput, expirationDays)
	}
	if !res.Status.CanTransitionTo(domain.ReservationReady) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, res.Status, domain.ReservationReady)
	}

	ready := *res
	expiry := f.today().AddDate(0, 0, expirationDays)
	ready.Status = domain.ReservationReady
	ready.ExpiryDate = &expiry
	return &ready, nil
}

// Notification creates a generic unread notification.
func (f *Factory) Notification(user *domain.User, typ domain.NotificationType, title, message string) *domain.Notification {
	return &domain.Notification{
		ID:        uuid.New(),
		UserID:    user.ID,
		Type:      typ,
		Title:     title,
		Message:   message,
		IsRead:    false,
		CreatedAt: f.clock.Now(),
	}
}

// DueSoonNotification builds the reminder sent shortly before a due date.
func (f *Factory) DueSoonNotification(user *domain.User, book *domain.Book, dueDate time.Time) *domain.Notification {
	daysRemaining := daysBetween(f.today(), dueDate)
	msg := fmt.Sprintf("%q is due in %d day(s), on %s. Please return or renew it in time.",
		book.Title, daysRemaining, dueDate.Format("2006-01-02"))
	return f.Notification(user, domain.NotifyBookDueSoon, "Book due soon", msg)
}

// OverdueNotification builds the notice for a book already past its due
// date. daysOverdue is supplied by the caller, not recomputed.
func (f *Factory) OverdueNotification(user *domain.User, book *domain.Book, daysOverdue int) *domain.Notification {
	msg := fmt.Sprintf("%q is %d day(s) overdue. Please return it and settle any pending fine.",
		book.Title, daysOverdue)
	return f.Notification(user, domain.NotifyBookOverdue, "Book overdue", msg)
}

// ReservationReadyNotification tells a user their reserved book is waiting.
func (f *Factory) ReservationReadyNotification(user *domain.User, book *domain.Book, expirationDate time.Time) *domain.Notification {
	msg := fmt.Sprintf("Your reserved copy of %q is ready for pickup. Please collect it by %s.",
		book.Title, expirationDate.Format("2006-01-02"))
	return f.Notification(user, domain.NotifyReservationReady, "Reservation ready", msg)
}

// FineNotification announces a newly issued fine.
func (f *Factory) FineNotification(user *domain.User, amount float64, reason string) *domain.Notification {
	msg := fmt.Sprintf("A fine of %.2f has been issued against your account: %s", amount, reason)
	return f.Notification(user, domain.NotifyFineIssued, "Fine issued", msg)
}

// StudentUser creates an active student account. encodedPassword must
// already be hashed by the caller and is stored verbatim.
func (f *Factory) StudentUser(username, email, fullName, encodedPassword string) *domain.User {
	return f.newUser(username, email, fullName, encodedPassword, domain.RoleStudent)
}

// AdminUser creates an active administrator account. encodedPassword must
// already be hashed by the caller and is stored verbatim.
func (f *Factory) AdminUser(username, email, fullName, encodedPassword string) *domain.User {
	return f.newUser(username, email, fullName, encodedPassword, domain.RoleAdmin)
}

func (f *Factory) newUser(username, email, fullName, encodedPassword string, role domain.Role) *domain.User {
	now := f.clock.Now()
	return &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: encodedPassword,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
