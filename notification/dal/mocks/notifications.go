package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kawerify-tech/flo-orders-app-sub000/notification/domain"
)

type Notifications struct {
	mock.Mock
}

func (m *Notifications) Create(ctx context.Context, clientID string, notification *domain.Notification) error {
	args := m.Called(ctx, clientID, notification)
	return args.Error(0)
}

func (m *Notifications) List(ctx context.Context, clientID string, limit int) ([]*domain.Notification, error) {
	args := m.Called(ctx, clientID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*domain.Notification), args.Error(1)
}

func (m *Notifications) MarkRead(ctx context.Context, clientID, notificationID string) error {
	args := m.Called(ctx, clientID, notificationID)
	return args.Error(0)
}

func (m *Notifications) MarkAllRead(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}
