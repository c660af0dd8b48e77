package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kawerify-tech/flo-orders-app-sub000/transaction/domain"
	"github.com/kawerify-tech/flo-orders-app-sub000/transaction/service"
)

type TransactionService struct {
	mock.Mock
}

func (m *TransactionService) Quote(ctx context.Context, clientID string, amount float64) (*domain.Quote, error) {
	args := m.Called(ctx, clientID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *TransactionService) Submit(ctx context.Context, req *service.SubmitRequest) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *TransactionService) Approve(ctx context.Context, transactionID, actorID, actorName string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, transactionID, actorID, actorName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *TransactionService) Reject(ctx context.Context, transactionID, actorID, actorName string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, transactionID, actorID, actorName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *TransactionService) Get(ctx context.Context, transactionID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *TransactionService) ListByClient(ctx context.Context, clientID string, limit int) ([]*domain.LedgerEntry, error) {
	args := m.Called(ctx, clientID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*domain.LedgerEntry), args.Error(1)
}

func (m *TransactionService) ListPending(ctx context.Context) ([]*domain.LedgerEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*domain.LedgerEntry), args.Error(1)
}
