package service

import (
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
)

// Notifier hands notifications to the delivery pipeline without blocking the
// request path. The queue dispatcher implements it.
type Notifier interface {
	Enqueue(n *domain.Notification)
}
