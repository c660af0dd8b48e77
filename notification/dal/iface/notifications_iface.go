package iface

import (
	"context"

	"github.com/kawerify-tech/flo-orders-app-sub000/notification/domain"
)

//go:generate mockery --name Notifications --output ../mocks
type Notifications interface {
	Create(ctx context.Context, clientID string, notification *domain.Notification) error
	List(ctx context.Context, clientID string, limit int) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, clientID, notificationID string) error
	MarkAllRead(ctx context.Context, clientID string) error
}
