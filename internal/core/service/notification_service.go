package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/api/metrics"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/ports"
)

// NotificationService implements notification storage and read tracking.
type NotificationService struct {
	notifications ports.NotificationRepository
	logger        zerolog.Logger
}

func NewNotificationService(notifications ports.NotificationRepository, logger zerolog.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, logger: logger}
}

func (s *NotificationService) Deliver(ctx context.Context, n *domain.Notification) error {
	if err := s.notifications.Create(ctx, n); err != nil {
		s.logger.Error().Err(err).Str("user_id", n.UserID.String()).Str("type", string(n.Type)).Msg("failed to store notification")
		return err
	}
	metrics.NotificationsDelivered.WithLabelValues(string(n.Type)).Inc()
	return nil
}

func (s *NotificationService) ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*domain.Notification, error) {
	return s.notifications.ListForUser(ctx, userID, unreadOnly)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) (*domain.Notification, error) {
	n, err := s.notifications.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if n.IsRead {
		return n, nil
	}

	n.IsRead = true
	if err := s.notifications.Update(ctx, n); err != nil {
		s.logger.Error().Err(err).Str("notification_id", id.String()).Msg("failed to mark notification read")
		return nil, err
	}
	return n, nil
}
