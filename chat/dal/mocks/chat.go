package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kawerify-tech/flo-orders-app-sub000/chat/domain"
)

type Chat struct {
	mock.Mock
}

func (m *Chat) SetPresence(ctx context.Context, userID string, record *domain.PresenceRecord) error {
	args := m.Called(ctx, userID, record)
	return args.Error(0)
}

func (m *Chat) GetPresence(ctx context.Context, userID string) (*domain.PresenceRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.PresenceRecord), args.Error(1)
}

func (m *Chat) ListPresence(ctx context.Context) (map[string]*domain.PresenceRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(map[string]*domain.PresenceRecord), args.Error(1)
}

func (m *Chat) PushMessage(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *Chat) ListMessages(ctx context.Context, chatID string) ([]*domain.Message, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*domain.Message), args.Error(1)
}

func (m *Chat) UpgradeMessageStatus(ctx context.Context, chatID, messageID string, to domain.MessageStatus) error {
	args := m.Called(ctx, chatID, messageID, to)
	return args.Error(0)
}
