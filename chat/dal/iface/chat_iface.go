package iface

import (
	"context"

	"github.com/kawerify-tech/flo-orders-app-sub000/chat/domain"
)

//go:generate mockery --name Chat --output ../mocks
type Chat interface {
	SetPresence(ctx context.Context, userID string, record *domain.PresenceRecord) error
	GetPresence(ctx context.Context, userID string) (*domain.PresenceRecord, error)
	ListPresence(ctx context.Context) (map[string]*domain.PresenceRecord, error)
	PushMessage(ctx context.Context, msg *domain.Message) error
	ListMessages(ctx context.Context, chatID string) ([]*domain.Message, error)
	UpgradeMessageStatus(ctx context.Context, chatID, messageID string, to domain.MessageStatus) error
}
