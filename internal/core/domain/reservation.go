package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationReady     ReservationStatus = "READY"
	ReservationFulfilled ReservationStatus = "FULFILLED"
	ReservationExpired   ReservationStatus = "EXPIRED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// validReservationTransitions defines the allowed state machine transitions.
var validReservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationPending: {ReservationReady, ReservationCancelled},
	ReservationReady:   {ReservationFulfilled, ReservationExpired, ReservationCancelled},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range validReservationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Reservation is a user's place in line for a book. QueuePosition is
// assigned by the reservation service; ExpiryDate is set only when the
// reservation becomes READY.
type Reservation struct {
	ID            uuid.UUID         `json:"id"`
	UserID        uuid.UUID         `json:"user_id"`
	BookID        uuid.UUID         `json:"book_id"`
	BookTitle     string            `json:"book_title"`
	Status        ReservationStatus `json:"status"`
	QueuePosition int               `json:"queue_position"`
	CreatedAt     time.Time         `json:"created_at"`
	ExpiryDate    *time.Time        `json:"expiry_date,omitempty"`
}
