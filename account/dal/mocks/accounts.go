package mocks

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/mock"

	"github.com/kawerify-tech/flo-orders-app-sub000/account/domain"
)

type Accounts struct {
	mock.Mock
}

func (m *Accounts) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *Accounts) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *Accounts) GetRef(ctx context.Context, accountID string) *firestore.DocumentRef {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).(*firestore.DocumentRef)
}

func (m *Accounts) ListActive(ctx context.Context) ([]*domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*domain.Account), args.Error(1)
}

func (m *Accounts) Credit(ctx context.Context, accountID string, amount float64, actorID string) error {
	args := m.Called(ctx, accountID, amount, actorID)
	return args.Error(0)
}

func (m *Accounts) DebitGuarded(ctx context.Context, accountID string, amount float64) error {
	args := m.Called(ctx, accountID, amount)
	return args.Error(0)
}

func (m *Accounts) ListTopUps(ctx context.Context, accountID string) ([]*domain.TopUp, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*domain.TopUp), args.Error(1)
}

func (m *Accounts) SetBalance(ctx context.Context, accountID string, balance float64) error {
	args := m.Called(ctx, accountID, balance)
	return args.Error(0)
}

func (m *Accounts) SetPumpPrice(ctx context.Context, accountID string, price float64) error {
	args := m.Called(ctx, accountID, price)
	return args.Error(0)
}
