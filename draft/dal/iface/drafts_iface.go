package iface

import (
	"context"

	"github.com/kawerify-tech/flo-orders-app-sub000/draft/dal"
	"github.com/kawerify-tech/flo-orders-app-sub000/draft/domain"
	txdomain "github.com/kawerify-tech/flo-orders-app-sub000/transaction/domain"
)

//go:generate mockery --name Drafts --output ../mocks
type Drafts interface {
	Save(ctx context.Context, draft *domain.Draft) error
	Get(ctx context.Context, clientID, draftID string) (*domain.Draft, error)
	List(ctx context.Context, clientID string) ([]*domain.Draft, error)
	Delete(ctx context.Context, clientID, draftID string) error
	Watch(ctx context.Context, clientID string) (<-chan []*domain.Draft, error)
	Promote(ctx context.Context, clientID, draftID string, fun dal.PromoteFun) (*txdomain.LedgerEntry, error)
}
