package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType is the closed set of notification categories.
type NotificationType string

const (
	NotifyBookDueSoon      NotificationType = "BOOK_DUE_SOON"
	NotifyBookOverdue      NotificationType = "BOOK_OVERDUE"
	NotifyReservationReady NotificationType = "RESERVATION_READY"
	NotifyFineIssued       NotificationType = "FINE_ISSUED"
	NotifyGeneral          NotificationType = "GENERAL"
)

// Notification is an in-app message for a user. New notifications are
// always unread.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
