package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionStatus is the lifecycle state of a borrow transaction.
type TransactionStatus string

const (
	TransactionIssued   TransactionStatus = "ISSUED"
	TransactionReturned TransactionStatus = "RETURNED"
)

// CanTransitionTo reports whether a transition from s to next is valid.
// The only legal move is ISSUED → RETURNED.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	return s == TransactionIssued && next == TransactionReturned
}

// Transaction records one borrow of one book copy by one user.
// BookTitle is a denormalized snapshot taken at issue time so that fine
// reasons and notification texts survive later catalog edits.
type Transaction struct {
	ID         uuid.UUID         `json:"id"`
	UserID     uuid.UUID         `json:"user_id"`
	BookID     uuid.UUID         `json:"book_id"`
	BookTitle  string            `json:"book_title"`
	IssueDate  time.Time         `json:"issue_date"`
	DueDate    time.Time         `json:"due_date"`
	ReturnDate *time.Time        `json:"return_date,omitempty"`
	Status     TransactionStatus `json:"status"`
}
