package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kawerify-tech/flo-orders-app-sub000/draft/dal"
	"github.com/kawerify-tech/flo-orders-app-sub000/draft/domain"
	txdomain "github.com/kawerify-tech/flo-orders-app-sub000/transaction/domain"
)

type Drafts struct {
	mock.Mock
}

func (m *Drafts) Save(ctx context.Context, draft *domain.Draft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *Drafts) Get(ctx context.Context, clientID, draftID string) (*domain.Draft, error) {
	args := m.Called(ctx, clientID, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Draft), args.Error(1)
}

func (m *Drafts) List(ctx context.Context, clientID string) ([]*domain.Draft, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*domain.Draft), args.Error(1)
}

func (m *Drafts) Delete(ctx context.Context, clientID, draftID string) error {
	args := m.Called(ctx, clientID, draftID)
	return args.Error(0)
}

func (m *Drafts) Watch(ctx context.Context, clientID string) (<-chan []*domain.Draft, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(<-chan []*domain.Draft), args.Error(1)
}

func (m *Drafts) Promote(ctx context.Context, clientID, draftID string, fun dal.PromoteFun) (*txdomain.LedgerEntry, error) {
	args := m.Called(ctx, clientID, draftID, fun)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*txdomain.LedgerEntry), args.Error(1)
}
