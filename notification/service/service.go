package service

import (
	"context"

	"github.com/kawerify-tech/flo-orders-app-sub000/framework/connection"
	"github.com/kawerify-tech/flo-orders-app-sub000/logger"
	"github.com/kawerify-tech/flo-orders-app-sub000/notification/dal"
	"github.com/kawerify-tech/flo-orders-app-sub000/notification/dal/iface"
	"github.com/kawerify-tech/flo-orders-app-sub000/notification/domain"
)

//go:generate mockery --name NotificationService --output ./mocks
type NotificationService interface {
	List(ctx context.Context, clientID string, limit int) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, clientID, notificationID string) error
	MarkAllRead(ctx context.Context, clientID string) error
}

type service struct {
	loggerProvider   logger.Provider
	notificationsDAL iface.Notifications
}

func NewService(log logger.Provider, conn *connection.Connection) NotificationService {
	return &service{
		loggerProvider:   log,
		notificationsDAL: dal.NewNotificationsFirestoreWithClient(conn.Firestore),
	}
}

func (s *service) List(ctx context.Context, clientID string, limit int) ([]*domain.Notification, error) {
	return s.notificationsDAL.List(ctx, clientID, limit)
}

func (s *service) MarkRead(ctx context.Context, clientID, notificationID string) error {
	return s.notificationsDAL.MarkRead(ctx, clientID, notificationID)
}

func (s *service) MarkAllRead(ctx context.Context, clientID string) error {
	return s.notificationsDAL.MarkAllRead(ctx, clientID)
}
