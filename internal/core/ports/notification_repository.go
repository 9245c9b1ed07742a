package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
)

// NotificationRepository defines persistence operations for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	// ListForUser returns notifications newest first. When unreadOnly is
	// set, read notifications are filtered out.
	ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*domain.Notification, error)
	Update(ctx context.Context, n *domain.Notification) error
}
