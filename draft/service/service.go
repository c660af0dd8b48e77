package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	accountDal "github.com/kawerify-tech/flo-orders-app-sub000/account/dal"
	accountIface "github.com/kawerify-tech/flo-orders-app-sub000/account/dal/iface"
	"github.com/kawerify-tech/flo-orders-app-sub000/draft/dal"
	"github.com/kawerify-tech/flo-orders-app-sub000/draft/dal/iface"
	"github.com/kawerify-tech/flo-orders-app-sub000/draft/domain"
	"github.com/kawerify-tech/flo-orders-app-sub000/framework/connection"
	"github.com/kawerify-tech/flo-orders-app-sub000/logger"
	notifdomain "github.com/kawerify-tech/flo-orders-app-sub000/notification/domain"
	txdomain "github.com/kawerify-tech/flo-orders-app-sub000/transaction/domain"
)

// SaveRequest creates a new draft or overwrites an existing one when DraftID
// is set.
type SaveRequest struct {
	DraftID  string            `json:"draftId"`
	ClientID string            `json:"clientId" validate:"required"`
	Amount   float64           `json:"amount" validate:"required,gt=0"`
	FuelType txdomain.FuelType `json:"fuelType" validate:"required,oneof=diesel blend"`
	Vehicle  string            `json:"vehicle" validate:"required"`
}

//go:generate mockery --name DraftService --output ./mocks
type DraftService interface {
	SaveDraft(ctx context.Context, req *SaveRequest) (*domain.Draft, error)
	ListDrafts(ctx context.Context, clientID string) ([]*domain.Draft, error)
	WatchDrafts(ctx context.Context, clientID string) (<-chan []*domain.Draft, error)
	DeleteDraft(ctx context.Context, clientID, draftID string) error
	PromoteDraft(ctx context.Context, clientID, draftID string) (*txdomain.LedgerEntry, error)
}

type service struct {
	loggerProvider logger.Provider
	validate       *validator.Validate
	draftsDAL      iface.Drafts
	accountsDAL    accountIface.Accounts
}

func NewService(log logger.Provider, conn *connection.Connection) DraftService {
	return &service{
		loggerProvider: log,
		validate:       validator.New(),
		draftsDAL:      dal.NewDraftsFirestoreWithClient(conn.Firestore),
		accountsDAL:    accountDal.NewAccountsFirestoreWithClient(conn.Firestore),
	}
}

// SaveDraft validates and prices the request, then stores it as an editable
// draft. Nothing is written to the ledger.
func (s *service) SaveDraft(ctx context.Context, req *SaveRequest) (*domain.Draft, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	account, err := s.accountsDAL.Get(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	quote, err := txdomain.ComputeQuote(req.Amount, account.PumpPrice, account.Balance)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	draft := &domain.Draft{
		ID:           req.DraftID,
		ClientID:     req.ClientID,
		Amount:       req.Amount,
		Litres:       quote.Litres,
		FuelType:     req.FuelType,
		Vehicle:      req.Vehicle,
		PumpPrice:    account.PumpPrice,
		CreatedAt:    now,
		LastModified: now,
	}

	if draft.ID == "" {
		draft.ID = txdomain.NewDraftID()
	} else if existing, err := s.draftsDAL.Get(ctx, req.ClientID, req.DraftID); err == nil {
		draft.CreatedAt = existing.CreatedAt
	}

	if err := s.draftsDAL.Save(ctx, draft); err != nil {
		return nil, err
	}

	return draft, nil
}

func (s *service) ListDrafts(ctx context.Context, clientID string) ([]*domain.Draft, error) {
	return s.draftsDAL.List(ctx, clientID)
}

func (s *service) WatchDrafts(ctx context.Context, clientID string) (<-chan []*domain.Draft, error) {
	return s.draftsDAL.Watch(ctx, clientID)
}

func (s *service) DeleteDraft(ctx context.Context, clientID, draftID string) error {
	return s.draftsDAL.Delete(ctx, clientID, draftID)
}

// PromoteDraft turns a draft into a pending transaction in one atomic step.
// The draft is repriced against the live account inside the promotion, so a
// stale draft quote cannot leak into the ledger. A promotion retried after
// success finds no draft and returns ErrDraftNotFound.
func (s *service) PromoteDraft(ctx context.Context, clientID, draftID string) (*txdomain.LedgerEntry, error) {
	account, err := s.accountsDAL.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	entry, err := s.draftsDAL.Promote(ctx, clientID, draftID, func(draft *domain.Draft) (*txdomain.LedgerEntry, *notifdomain.Notification, error) {
		quote, err := txdomain.ComputeQuote(draft.Amount, account.PumpPrice, account.Balance)
		if err != nil {
			return nil, nil, err
		}

		if !quote.Affordable {
			return nil, nil, &txdomain.InsufficientFundsError{
				Requested: draft.Amount,
				Available: account.Balance,
			}
		}

		now := time.Now().UTC()

		entry := &txdomain.LedgerEntry{
			ID:          txdomain.NewTransactionID(),
			ClientID:    draft.ClientID,
			ClientEmail: account.Email,
			Amount:      draft.Amount,
			Litres:      quote.Litres,
			FuelType:    draft.FuelType,
			Vehicle:     draft.Vehicle,
			PumpPrice:   account.PumpPrice,
			Status:      txdomain.StatusPending,
			Timestamp:   now,
			Metadata: txdomain.Metadata{
				ClientBalance: account.Balance,
			},
			ProcessingSteps: []txdomain.ProcessingStep{
				{
					Step:      txdomain.StepCreated,
					Status:    string(txdomain.StatusPending),
					Actor:     draft.ClientID,
					Timestamp: draft.CreatedAt,
				},
				{
					Step:      txdomain.StepDraftSent,
					Status:    string(txdomain.StatusPending),
					Actor:     draft.ClientID,
					Timestamp: now,
				},
			},
		}

		return entry, notifdomain.ForTransaction(entry), nil
	})
	if err != nil {
		return nil, err
	}

	s.loggerProvider(ctx).Infof("draft %s promoted to transaction %s for client %s", draftID, entry.ID, clientID)

	return entry, nil
}
