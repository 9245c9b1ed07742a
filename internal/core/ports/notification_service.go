package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
)

type NotificationService interface {
	// Deliver persists a notification. Callers construct the notification
	// first and hand it over for storage and delivery counting.
	Deliver(ctx context.Context, n *domain.Notification) error
	ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*domain.Notification, error)
	// MarkRead is owner-scoped: a notification can only be read by the user
	// it targets.
	MarkRead(ctx context.Context, id, userID uuid.UUID) (*domain.Notification, error)
}
