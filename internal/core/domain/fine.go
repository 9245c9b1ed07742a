package domain

import (
	"time"

	"github.com/google/uuid"
)

// FineStatus is the lifecycle state of a fine.
type FineStatus string

const (
	FinePending FineStatus = "PENDING"
	FinePaid    FineStatus = "PAID"
	FineWaived  FineStatus = "WAIVED"
)

// CanTransitionTo reports whether a transition from s to next is valid.
// A pending fine can be paid or waived; paid and waived are terminal.
func (s FineStatus) CanTransitionTo(next FineStatus) bool {
	return s == FinePending && (next == FinePaid || next == FineWaived)
}

// Fine is a monetary charge against a user. TransactionID is nil for
// damage fines, which are not tied to a specific borrow.
type Fine struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	TransactionID *uuid.UUID `json:"transaction_id,omitempty"`
	Amount        float64    `json:"amount"`
	PaidAmount    float64    `json:"paid_amount"`
	Reason        string     `json:"reason"`
	Status        FineStatus `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
}
