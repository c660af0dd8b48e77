package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	notifdomain "github.com/kawerify-tech/flo-orders-app-sub000/notification/domain"
	"github.com/kawerify-tech/flo-orders-app-sub000/transaction/domain"
)

type Transactions struct {
	mock.Mock
}

func (m *Transactions) GetLedgerEntry(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *Transactions) CreateWithFanout(ctx context.Context, entry *domain.LedgerEntry, notification *notifdomain.Notification) error {
	args := m.Called(ctx, entry, notification)
	return args.Error(0)
}

func (m *Transactions) TransitionStatus(ctx context.Context, id string, to domain.Status, step domain.ProcessingStep, actorID, actorName string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, id, to, step, actorID, actorName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *Transactions) SyncMirror(ctx context.Context, entry *domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *Transactions) RepairMirrors(ctx context.Context, entries []*domain.LedgerEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *Transactions) AppendLedgerStep(ctx context.Context, id, clientID string, step domain.ProcessingStep) error {
	args := m.Called(ctx, id, clientID, step)
	return args.Error(0)
}

func (m *Transactions) ListByClient(ctx context.Context, clientID string, limit int) ([]*domain.LedgerEntry, error) {
	args := m.Called(ctx, clientID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*domain.LedgerEntry), args.Error(1)
}

func (m *Transactions) ListPending(ctx context.Context) ([]*domain.LedgerEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*domain.LedgerEntry), args.Error(1)
}

func (m *Transactions) ListLedgerByClient(ctx context.Context, clientID string) ([]*domain.LedgerEntry, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*domain.LedgerEntry), args.Error(1)
}
