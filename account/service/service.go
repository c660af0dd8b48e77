package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/kawerify-tech/flo-orders-app-sub000/account/dal"
	"github.com/kawerify-tech/flo-orders-app-sub000/account/dal/iface"
	"github.com/kawerify-tech/flo-orders-app-sub000/account/domain"
	"github.com/kawerify-tech/flo-orders-app-sub000/framework/connection"
	"github.com/kawerify-tech/flo-orders-app-sub000/logger"
	txDal "github.com/kawerify-tech/flo-orders-app-sub000/transaction/dal"
	txIface "github.com/kawerify-tech/flo-orders-app-sub000/transaction/dal/iface"
)

// TopUpRequest credits a client account.
type TopUpRequest struct {
	ClientID string  `json:"clientId" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
}

//go:generate mockery --name AccountService --output ./mocks
type AccountService interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	TopUp(ctx context.Context, req *TopUpRequest, actorID string) error
	ListTopUps(ctx context.Context, accountID string) ([]*domain.TopUp, error)
	SetPumpPrice(ctx context.Context, accountID string, price float64) error
	Reconcile(ctx context.Context) ([]*ReconciliationReport, error)
	ReconcileAccount(ctx context.Context, accountID string) (*ReconciliationReport, error)
}

type service struct {
	loggerProvider  logger.Provider
	validate        *validator.Validate
	accountsDAL     iface.Accounts
	transactionsDAL txIface.Transactions
}

func NewService(log logger.Provider, conn *connection.Connection) AccountService {
	return &service{
		loggerProvider:  log,
		validate:        validator.New(),
		accountsDAL:     dal.NewAccountsFirestoreWithClient(conn.Firestore),
		transactionsDAL: txDal.NewTransactionsFirestoreWithClient(conn.Firestore),
	}
}

func (s *service) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountsDAL.Get(ctx, accountID)
}

// TopUp credits the account and records the immutable top-up event in one
// batch.
func (s *service) TopUp(ctx context.Context, req *TopUpRequest, actorID string) error {
	if err := s.validate.Struct(req); err != nil {
		return err
	}

	if err := s.accountsDAL.Credit(ctx, req.ClientID, req.Amount, actorID); err != nil {
		return err
	}

	s.loggerProvider(ctx).Infof("account %s credited %.2f by %s", req.ClientID, req.Amount, actorID)

	return nil
}

func (s *service) ListTopUps(ctx context.Context, accountID string) ([]*domain.TopUp, error) {
	return s.accountsDAL.ListTopUps(ctx, accountID)
}

func (s *service) SetPumpPrice(ctx context.Context, accountID string, price float64) error {
	return s.accountsDAL.SetPumpPrice(ctx, accountID, price)
}
