package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Shared test fixtures: fixed clock and in-memory stub repositories
// ---------------------------------------------------------------------------

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// Reference instant used across the service tests: 2026-03-10 15:30 UTC.
var refNow = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

// --- users ---

type stubUserRepo struct {
	byID      map[uuid.UUID]*domain.User
	createErr error
	updateErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[uuid.UUID]*domain.User)}
}

func (r *stubUserRepo) add(u *domain.User) {
	clone := *u
	r.byID[u.ID] = &clone
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.add(u)
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.add(u)
	return nil
}

// --- books ---

type stubBookRepo struct {
	byID      map[uuid.UUID]*domain.Book
	adjustErr error
}

func newStubBookRepo() *stubBookRepo {
	return &stubBookRepo{byID: make(map[uuid.UUID]*domain.Book)}
}

func (r *stubBookRepo) add(b *domain.Book) {
	clone := *b
	r.byID[b.ID] = &clone
}

func (r *stubBookRepo) Create(_ context.Context, b *domain.Book) error {
	r.add(b)
	return nil
}

func (r *stubBookRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Book, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookRepo) FindByISBN(_ context.Context, isbn string) (*domain.Book, error) {
	for _, b := range r.byID {
		if b.ISBN == isbn {
			clone := *b
			return &clone, nil
		}
	}
	return nil, domain.ErrBookNotFound
}

func (r *stubBookRepo) List(_ context.Context, f ports.ListBooksFilter) ([]*domain.Book, int64, error) {
	var matched []*domain.Book
	for _, b := range r.byID {
		if f.AvailableOnly && b.Available < 1 {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(b.Title), q) &&
				!strings.Contains(strings.ToLower(b.Author), q) &&
				!strings.Contains(strings.ToLower(b.ISBN), q) {
				continue
			}
		}
		clone := *b
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Title < matched[j].Title })

	total := int64(len(matched))
	skip := (f.Page - 1) * f.Limit
	if skip < 0 {
		skip = 0
	}
	if skip > len(matched) {
		return []*domain.Book{}, total, nil
	}
	end := skip + f.Limit
	if f.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

// AdjustAvailable mirrors the real Mongo conditional update: a decrement
// below zero fails.
func (r *stubBookRepo) AdjustAvailable(_ context.Context, id uuid.UUID, delta int) error {
	if r.adjustErr != nil {
		return r.adjustErr
	}
	b, ok := r.byID[id]
	if !ok {
		return domain.ErrBookNotFound
	}
	if b.Available+delta < 0 {
		return domain.ErrBookUnavailable
	}
	b.Available += delta
	return nil
}

// --- transactions ---

type stubTransactionRepo struct {
	byID      map[uuid.UUID]*domain.Transaction
	createErr error
	updateErr error
}

func newStubTransactionRepo() *stubTransactionRepo {
	return &stubTransactionRepo{byID: make(map[uuid.UUID]*domain.Transaction)}
}

func (r *stubTransactionRepo) add(tx *domain.Transaction) {
	clone := *tx
	r.byID[tx.ID] = &clone
}

func (r *stubTransactionRepo) Create(_ context.Context, tx *domain.Transaction) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.add(tx)
	return nil
}

func (r *stubTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Transaction, error) {
	tx, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	clone := *tx
	return &clone, nil
}

func (r *stubTransactionRepo) ListForUser(_ context.Context, userID uuid.UUID) ([]*domain.Transaction, error) {
	var out []*domain.Transaction
	for _, tx := range r.byID {
		if tx.UserID == userID {
			clone := *tx
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubTransactionRepo) ListOpen(_ context.Context, horizon time.Time) ([]*domain.Transaction, error) {
	var out []*domain.Transaction
	for _, tx := range r.byID {
		if tx.Status == domain.TransactionIssued && !tx.DueDate.After(horizon) {
			clone := *tx
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubTransactionRepo) Update(_ context.Context, tx *domain.Transaction) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.byID[tx.ID]; !ok {
		return domain.ErrTransactionNotFound
	}
	r.add(tx)
	return nil
}

// --- fines ---

type stubFineRepo struct {
	byID      map[uuid.UUID]*domain.Fine
	createErr error
}

func newStubFineRepo() *stubFineRepo {
	return &stubFineRepo{byID: make(map[uuid.UUID]*domain.Fine)}
}

func (r *stubFineRepo) add(f *domain.Fine) {
	clone := *f
	r.byID[f.ID] = &clone
}

func (r *stubFineRepo) Create(_ context.Context, f *domain.Fine) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.add(f)
	return nil
}

func (r *stubFineRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Fine, error) {
	f, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrFineNotFound
	}
	clone := *f
	return &clone, nil
}

func (r *stubFineRepo) ListForUser(_ context.Context, userID uuid.UUID) ([]*domain.Fine, error) {
	var out []*domain.Fine
	for _, f := range r.byID {
		if f.UserID == userID {
			clone := *f
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubFineRepo) FindPendingByTransaction(_ context.Context, txID uuid.UUID) (*domain.Fine, error) {
	for _, f := range r.byID {
		if f.Status == domain.FinePending && f.TransactionID != nil && *f.TransactionID == txID {
			clone := *f
			return &clone, nil
		}
	}
	return nil, domain.ErrFineNotFound
}

func (r *stubFineRepo) Update(_ context.Context, f *domain.Fine) error {
	if _, ok := r.byID[f.ID]; !ok {
		return domain.ErrFineNotFound
	}
	r.add(f)
	return nil
}

// --- reservations ---

type stubReservationRepo struct {
	byID map[uuid.UUID]*domain.Reservation
}

func newStubReservationRepo() *stubReservationRepo {
	return &stubReservationRepo{byID: make(map[uuid.UUID]*domain.Reservation)}
}

func (r *stubReservationRepo) add(res *domain.Reservation) {
	clone := *res
	r.byID[res.ID] = &clone
}

func (r *stubReservationRepo) Create(_ context.Context, res *domain.Reservation) error {
	r.add(res)
	return nil
}

func (r *stubReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Reservation, error) {
	res, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	clone := *res
	return &clone, nil
}

func (r *stubReservationRepo) ListForUser(_ context.Context, userID uuid.UUID) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, res := range r.byID {
		if res.UserID == userID {
			clone := *res
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubReservationRepo) CountActiveForBook(_ context.Context, bookID uuid.UUID) (int64, error) {
	var n int64
	for _, res := range r.byID {
		if res.BookID != bookID {
			continue
		}
		if res.Status == domain.ReservationPending || res.Status == domain.ReservationReady {
			n++
		}
	}
	return n, nil
}

func (r *stubReservationRepo) FindNextPendingForBook(_ context.Context, bookID uuid.UUID) (*domain.Reservation, error) {
	var next *domain.Reservation
	for _, res := range r.byID {
		if res.BookID != bookID || res.Status != domain.ReservationPending {
			continue
		}
		if next == nil || res.QueuePosition < next.QueuePosition {
			next = res
		}
	}
	if next == nil {
		return nil, domain.ErrReservationNotFound
	}
	clone := *next
	return &clone, nil
}

func (r *stubReservationRepo) Update(_ context.Context, res *domain.Reservation) error {
	if _, ok := r.byID[res.ID]; !ok {
		return domain.ErrReservationNotFound
	}
	r.add(res)
	return nil
}

// --- notifications ---

type stubNotificationRepo struct {
	byID      map[uuid.UUID]*domain.Notification
	createErr error
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{byID: make(map[uuid.UUID]*domain.Notification)}
}

func (r *stubNotificationRepo) add(n *domain.Notification) {
	clone := *n
	r.byID[n.ID] = &clone
}

func (r *stubNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.add(n)
	return nil
}

func (r *stubNotificationRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Notification, error) {
	n, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotificationNotFound
	}
	clone := *n
	return &clone, nil
}

func (r *stubNotificationRepo) ListForUser(_ context.Context, userID uuid.UUID, unreadOnly bool) ([]*domain.Notification, error) {
	var out []*domain.Notification
	for _, n := range r.byID {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		clone := *n
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubNotificationRepo) Update(_ context.Context, n *domain.Notification) error {
	if _, ok := r.byID[n.ID]; !ok {
		return domain.ErrNotificationNotFound
	}
	r.add(n)
	return nil
}

// --- notifier ---

type stubNotifier struct {
	enqueued []*domain.Notification
}

func (n *stubNotifier) Enqueue(notif *domain.Notification) {
	n.enqueued = append(n.enqueued, notif)
}
