package factory

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
)

// fixedClock pins "now" so every derivation is deterministic.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// Reference instant: 2026-03-10 15:30 UTC.
var refNow = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func newFixedFactory() *Factory {
	return New(fixedClock{now: refNow})
}

func testUser() *domain.User {
	return &domain.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com", FullName: "Alice Doe", Role: domain.RoleStudent, IsActive: true}
}

func testBook() *domain.Book {
	return &domain.Book{ID: uuid.New(), ISBN: "9780141439518", Title: "Pride and Prejudice", Author: "Jane Austen", TotalCopies: 3, Available: 2}
}

// ---------------------------------------------------------------------------
// BorrowTransaction
// ---------------------------------------------------------------------------

func TestBorrowTransaction_DerivesDueDate(t *testing.T) {
	f := newFixedFactory()
	user, book := testUser(), testBook()

	tx, err := f.BorrowTransaction(user, book, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantIssue := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	wantDue := time.Date(2026, 3, 24, 0, 0, 0, 0, time.UTC)
	if !tx.IssueDate.Equal(wantIssue) {
		t.Errorf("issue date: want %v, got %v", wantIssue, tx.IssueDate)
	}
	if !tx.DueDate.Equal(wantDue) {
		t.Errorf("due date: want %v, got %v", wantDue, tx.DueDate)
	}
	if tx.Status != domain.TransactionIssued {
		t.Errorf("status: want %s, got %s", domain.TransactionIssued, tx.Status)
	}
	if tx.ReturnDate != nil {
		t.Error("new transaction must have no return date")
	}
	if tx.UserID != user.ID || tx.BookID != book.ID {
		t.Error("transaction must reference the given user and book")
	}
	if tx.BookTitle != book.Title {
		t.Errorf("book title snapshot: want %q, got %q", book.Title, tx.BookTitle)
	}
}

func TestBorrowTransaction_RejectsNonPositiveDays(t *testing.T) {
	f := newFixedFactory()
	for _, days := range []int{0, -1, -30} {
		if _, err := f.BorrowTransaction(testUser(), testBook(), days); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("borrowDays=%d: expected ErrInvalidInput, got %v", days, err)
		}
	}
}

func TestBorrowTransaction_RejectsNilRefs(t *testing.T) {
	f := newFixedFactory()
	if _, err := f.BorrowTransaction(nil, testBook(), 7); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("nil user: expected ErrInvalidInput, got %v", err)
	}
	if _, err := f.BorrowTransaction(testUser(), nil, 7); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("nil book: expected ErrInvalidInput, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// ReturnTransaction
// ---------------------------------------------------------------------------

func TestReturnTransaction_DerivesReturnedCopy(t *testing.T) {
	f := newFixedFactory()
	tx, _ := f.BorrowTransaction(testUser(), testBook(), 7)

	returned, err := f.ReturnTransaction(tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if returned.Status != domain.TransactionReturned {
		t.Errorf("status: want %s, got %s", domain.TransactionReturned, returned.Status)
	}
	wantReturn := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if returned.ReturnDate == nil || !returned.ReturnDate.Equal(wantReturn) {
		t.Errorf("return date: want %v, got %v", wantReturn, returned.ReturnDate)
	}
	if returned.ID != tx.ID {
		t.Error("returned record must keep the transaction identity")
	}
	// The argument must not be mutated.
	if tx.Status != domain.TransactionIssued || tx.ReturnDate != nil {
		t.Error("input transaction must be left untouched")
	}
}

func TestReturnTransaction_RejectsAlreadyReturned(t *testing.T) {
	f := newFixedFactory()
	tx, _ := f.BorrowTransaction(testUser(), testBook(), 7)
	returned, _ := f.ReturnTransaction(tx)

	if _, err := f.ReturnTransaction(returned); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// OverdueFine
// ---------------------------------------------------------------------------

func TestOverdueFine_AbsentWhenNotOverdue(t *testing.T) {
	f := newFixedFactory()

	for _, due := range []time.Time{
		refNow,                   // due today
		refNow.AddDate(0, 0, 3),  // due in the future
		refNow.Add(2 * time.Hour), // later today still counts as today
	} {
		tx := &domain.Transaction{ID: uuid.New(), UserID: uuid.New(), BookTitle: "Dune", DueDate: due, Status: domain.TransactionIssued}
		if fine := f.OverdueFine(tx, 2.0); fine != nil {
			t.Errorf("dueDate=%v: expected no fine, got amount %.2f", due, fine.Amount)
		}
	}
}

func TestOverdueFine_AmountIsDaysTimesRate(t *testing.T) {
	f := newFixedFactory()
	tx := &domain.Transaction{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		BookTitle: "Dune",
		DueDate:   refNow.AddDate(0, 0, -5),
		Status:    domain.TransactionIssued,
	}

	fine := f.OverdueFine(tx, 2.0)
	if fine == nil {
		t.Fatal("expected a fine for a transaction 5 days overdue")
	}
	if fine.Amount != 10.0 {
		t.Errorf("amount: want 10.0, got %.2f", fine.Amount)
	}
	if fine.PaidAmount != 0 {
		t.Errorf("paid amount must start at 0, got %.2f", fine.PaidAmount)
	}
	if fine.Status != domain.FinePending {
		t.Errorf("status: want %s, got %s", domain.FinePending, fine.Status)
	}
	if fine.TransactionID == nil || *fine.TransactionID != tx.ID {
		t.Error("fine must reference the transaction")
	}
	if !strings.Contains(fine.Reason, "Dune") || !strings.Contains(fine.Reason, "5") {
		t.Errorf("reason must name the book and the days late, got %q", fine.Reason)
	}
	if fine.UserID != tx.UserID {
		t.Error("fine must target the transaction's user")
	}
}

func TestOverdueFine_IgnoresTimeOfDay(t *testing.T) {
	// Due yesterday at 23:59 is exactly one calendar day overdue regardless
	// of the scan hour.
	f := newFixedFactory()
	tx := &domain.Transaction{
		ID:      uuid.New(),
		DueDate: time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC),
		Status:  domain.TransactionIssued,
	}
	fine := f.OverdueFine(tx, 1.5)
	if fine == nil {
		t.Fatal("expected a fine")
	}
	if fine.Amount != 1.5 {
		t.Errorf("amount: want 1.5 (one day), got %.2f", fine.Amount)
	}
}

// ---------------------------------------------------------------------------
// DamageFine
// ---------------------------------------------------------------------------

func TestDamageFine(t *testing.T) {
	f := newFixedFactory()
	user, book := testUser(), testBook()

	fine, err := f.DamageFine(user, book, 15.0, "water damage")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fine.Amount != 15.0 {
		t.Errorf("amount: want 15.0, got %.2f", fine.Amount)
	}
	if fine.PaidAmount != 0 {
		t.Errorf("paid amount must start at 0, got %.2f", fine.PaidAmount)
	}
	if fine.Status != domain.FinePending {
		t.Errorf("status: want %s, got %s", domain.FinePending, fine.Status)
	}
	if fine.TransactionID != nil {
		t.Error("damage fine must not reference a transaction")
	}
	if !strings.Contains(fine.Reason, book.Title) || !strings.Contains(fine.Reason, "water damage") {
		t.Errorf("reason must name the book and the damage, got %q", fine.Reason)
	}
}

func TestDamageFine_RejectsNegativeAmount(t *testing.T) {
	f := newFixedFactory()
	if _, err := f.DamageFine(testUser(), testBook(), -1, "torn cover"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Reservation
// ---------------------------------------------------------------------------

func TestReservation(t *testing.T) {
	f := newFixedFactory()
	user, book := testUser(), testBook()

	res, err := f.Reservation(user, book, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != domain.ReservationPending {
		t.Errorf("status: want %s, got %s", domain.ReservationPending, res.Status)
	}
	if res.QueuePosition != 3 {
		t.Errorf("queue position: want 3, got %d", res.QueuePosition)
	}
	if !res.CreatedAt.Equal(refNow) {
		t.Errorf("created at: want %v, got %v", refNow, res.CreatedAt)
	}
	if res.ExpiryDate != nil {
		t.Error("pending reservation must have no expiry date")
	}
}

func TestReservation_RejectsBadPosition(t *testing.T) {
	f := newFixedFactory()
	if _, err := f.Reservation(testUser(), testBook(), 0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestReadyReservation(t *testing.T) {
	f := newFixedFactory()
	res, _ := f.Reservation(testUser(), testBook(), 1)

	ready, err := f.ReadyReservation(res, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ready.Status != domain.ReservationReady {
		t.Errorf("status: want %s, got %s", domain.ReservationReady, ready.Status)
	}
	wantExpiry := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)
	if ready.ExpiryDate == nil || !ready.ExpiryDate.Equal(wantExpiry) {
		t.Errorf("expiry date: want %v, got %v", wantExpiry, ready.ExpiryDate)
	}
	// Input must be untouched.
	if res.Status != domain.ReservationPending || res.ExpiryDate != nil {
		t.Error("input reservation must be left untouched")
	}
}

func TestReadyReservation_RejectsNonPending(t *testing.T) {
	f := newFixedFactory()
	res, _ := f.Reservation(testUser(), testBook(), 1)
	ready, _ := f.ReadyReservation(res, 7)

	if _, err := f.ReadyReservation(ready, 7); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Notifications
// ---------------------------------------------------------------------------

func TestNotification_Generic(t *testing.T) {
	f := newFixedFactory()
	user := testUser()

	n := f.Notification(user, domain.NotifyGeneral, "Welcome", "Your account is ready.")
	if n.IsRead {
		t.Error("new notification must be unread")
	}
	if n.UserID != user.ID {
		t.Error("notification must target the given user")
	}
	if n.Type != domain.NotifyGeneral || n.Title != "Welcome" || n.Message != "Your account is ready." {
		t.Errorf("unexpected notification: %+v", n)
	}
}

func TestDueSoonNotification(t *testing.T) {
	f := newFixedFactory()
	user, book := testUser(), testBook()
	dueDate := refNow.AddDate(0, 0, 2)

	n := f.DueSoonNotification(user, book, dueDate)
	if n.Type != domain.NotifyBookDueSoon {
		t.Errorf("type: want %s, got %s", domain.NotifyBookDueSoon, n.Type)
	}
	if n.IsRead {
		t.Error("must be unread")
	}
	if !strings.Contains(n.Message, "2") {
		t.Errorf("message must state the remaining days, got %q", n.Message)
	}
	if !strings.Contains(n.Message, book.Title) {
		t.Errorf("message must name the book, got %q", n.Message)
	}
	if !strings.Contains(n.Message, "2026-03-12") {
		t.Errorf("message must state the due date, got %q", n.Message)
	}
}

func TestOverdueNotification(t *testing.T) {
	f := newFixedFactory()
	n := f.OverdueNotification(testUser(), testBook(), 4)
	if n.Type != domain.NotifyBookOverdue {
		t.Errorf("type: want %s, got %s", domain.NotifyBookOverdue, n.Type)
	}
	if !strings.Contains(n.Message, "4 day(s) overdue") {
		t.Errorf("message must state the overdue days, got %q", n.Message)
	}
}

func TestReservationReadyNotification(t *testing.T) {
	f := newFixedFactory()
	book := testBook()
	expiry := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)

	n := f.ReservationReadyNotification(testUser(), book, expiry)
	if n.Type != domain.NotifyReservationReady {
		t.Errorf("type: want %s, got %s", domain.NotifyReservationReady, n.Type)
	}
	if !strings.Contains(n.Message, book.Title) || !strings.Contains(n.Message, "2026-03-17") {
		t.Errorf("message must name the book and the pickup deadline, got %q", n.Message)
	}
}

func TestFineNotification_FormatsTwoDecimals(t *testing.T) {
	f := newFixedFactory()
	n := f.FineNotification(testUser(), 12.5, "Overdue return of \"Dune\"")
	if n.Type != domain.NotifyFineIssued {
		t.Errorf("type: want %s, got %s", domain.NotifyFineIssued, n.Type)
	}
	if !strings.Contains(n.Message, "12.50") {
		t.Errorf("amount must be formatted to two decimals, got %q", n.Message)
	}
	if !strings.Contains(n.Message, "Overdue return") {
		t.Errorf("message must carry the reason, got %q", n.Message)
	}
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

func TestStudentAndAdminUser(t *testing.T) {
	f := newFixedFactory()

	student := f.StudentUser("bob", "bob@example.com", "Bob Stone", "$2a$10$encoded")
	admin := f.AdminUser("carol", "carol@example.com", "Carol Reed", "$2a$10$other")

	if student.Role != domain.RoleStudent {
		t.Errorf("student role: got %s", student.Role)
	}
	if admin.Role != domain.RoleAdmin {
		t.Errorf("admin role: got %s", admin.Role)
	}
	for _, u := range []*domain.User{student, admin} {
		if !u.IsActive {
			t.Error("new users must be active")
		}
	}
	// Passwords are stored verbatim, never re-hashed here.
	if student.PasswordHash != "$2a$10$encoded" {
		t.Errorf("password must be stored verbatim, got %q", student.PasswordHash)
	}
}

// ---------------------------------------------------------------------------
// Idempotence
// ---------------------------------------------------------------------------

func TestIdempotence_SameInputsSameClock(t *testing.T) {
	f := newFixedFactory()
	user, book := testUser(), testBook()

	a, _ := f.BorrowTransaction(user, book, 10)
	b, _ := f.BorrowTransaction(user, book, 10)

	// Value-equal excluding generated identifiers.
	a.ID, b.ID = uuid.Nil, uuid.Nil
	if *a != *b {
		t.Errorf("expected value-equal transactions, got\n%+v\n%+v", a, b)
	}

	na := f.DueSoonNotification(user, book, refNow.AddDate(0, 0, 2))
	nb := f.DueSoonNotification(user, book, refNow.AddDate(0, 0, 2))
	na.ID, nb.ID = uuid.Nil, uuid.Nil
	if *na != *nb {
		t.Errorf("expected value-equal notifications, got\n%+v\n%+v", na, nb)
	}
}
