package iface

import (
	"context"

	notifdomain "github.com/kawerify-tech/flo-orders-app-sub000/notification/domain"
	"github.com/kawerify-tech/flo-orders-app-sub000/transaction/domain"
)

//go:generate mockery --name Transactions --output ../mocks
type Transactions interface {
	GetLedgerEntry(ctx context.Context, id string) (*domain.LedgerEntry, error)
	CreateWithFanout(ctx context.Context, entry *domain.LedgerEntry, notification *notifdomain.Notification) error
	TransitionStatus(ctx context.Context, id string, to domain.Status, step domain.ProcessingStep, actorID, actorName string) (*domain.LedgerEntry, error)
	SyncMirror(ctx context.Context, entry *domain.LedgerEntry) error
	RepairMirrors(ctx context.Context, entries []*domain.LedgerEntry) error
	AppendLedgerStep(ctx context.Context, id, clientID string, step domain.ProcessingStep) error
	ListByClient(ctx context.Context, clientID string, limit int) ([]*domain.LedgerEntry, error)
	ListPending(ctx context.Context) ([]*domain.LedgerEntry, error)
	ListLedgerByClient(ctx context.Context, clientID string) ([]*domain.LedgerEntry, error)
}
