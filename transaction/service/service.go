package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	accountDal "github.com/kawerify-tech/flo-orders-app-sub000/account/dal"
	accountIface "github.com/kawerify-tech/flo-orders-app-sub000/account/dal/iface"
	"github.com/kawerify-tech/flo-orders-app-sub000/framework/connection"
	"github.com/kawerify-tech/flo-orders-app-sub000/logger"
	notificationDal "github.com/kawerify-tech/flo-orders-app-sub000/notification/dal"
	notificationIface "github.com/kawerify-tech/flo-orders-app-sub000/notification/dal/iface"
	"github.com/kawerify-tech/flo-orders-app-sub000/transaction/dal"
	"github.com/kawerify-tech/flo-orders-app-sub000/transaction/dal/iface"
	"github.com/kawerify-tech/flo-orders-app-sub000/transaction/domain"
)

// SubmitRequest is a client fuel request before pricing.
type SubmitRequest struct {
	ClientID string          `json:"clientId" validate:"required"`
	Amount   float64         `json:"amount" validate:"required,gt=0"`
	FuelType domain.FuelType `json:"fuelType" validate:"required,oneof=diesel blend"`
	Vehicle  string          `json:"vehicle" validate:"required"`
}

//go:generate mockery --name TransactionService --output ./mocks
type TransactionService interface {
	Quote(ctx context.Context, clientID string, amount float64) (*domain.Quote, error)
	Submit(ctx context.Context, req *SubmitRequest) (*domain.LedgerEntry, error)
	Approve(ctx context.Context, transactionID, actorID, actorName string) (*domain.LedgerEntry, error)
	Reject(ctx context.Context, transactionID, actorID, actorName string) (*domain.LedgerEntry, error)
	Get(ctx context.Context, transactionID string) (*domain.LedgerEntry, error)
	ListByClient(ctx context.Context, clientID string, limit int) ([]*domain.LedgerEntry, error)
	ListPending(ctx context.Context) ([]*domain.LedgerEntry, error)
}

type service struct {
	loggerProvider   logger.Provider
	validate         *validator.Validate
	transactionsDAL  iface.Transactions
	accountsDAL      accountIface.Accounts
	notificationsDAL notificationIface.Notifications
}

func NewService(log logger.Provider, conn *connection.Connection) TransactionService {
	return &service{
		loggerProvider:   log,
		validate:         validator.New(),
		transactionsDAL:  dal.NewTransactionsFirestoreWithClient(conn.Firestore),
		accountsDAL:      accountDal.NewAccountsFirestoreWithClient(conn.Firestore),
		notificationsDAL: notificationDal.NewNotificationsFirestoreWithClient(conn.Firestore),
	}
}

func (s *service) Get(ctx context.Context, transactionID string) (*domain.LedgerEntry, error) {
	return s.transactionsDAL.GetLedgerEntry(ctx, transactionID)
}

func (s *service) ListByClient(ctx context.Context, clientID string, limit int) ([]*domain.LedgerEntry, error) {
	return s.transactionsDAL.ListByClient(ctx, clientID, limit)
}

func (s *service) ListPending(ctx context.Context) ([]*domain.LedgerEntry, error) {
	return s.transactionsDAL.ListPending(ctx)
}
