package iface

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/kawerify-tech/flo-orders-app-sub000/account/domain"
)

//go:generate mockery --name Accounts --output ../mocks
type Accounts interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetRef(ctx context.Context, accountID string) *firestore.DocumentRef
	ListActive(ctx context.Context) ([]*domain.Account, error)
	Credit(ctx context.Context, accountID string, amount float64, actorID string) error
	DebitGuarded(ctx context.Context, accountID string, amount float64) error
	ListTopUps(ctx context.Context, accountID string) ([]*domain.TopUp, error)
	SetBalance(ctx context.Context, accountID string, balance float64) error
	SetPumpPrice(ctx context.Context, accountID string, price float64) error
}
