package service

import (
	"context"
	"time"

	notifdomain "github.com/kawerify-tech/flo-orders-app-sub000/notification/domain"
	"github.com/kawerify-tech/flo-orders-app-sub000/transaction/domain"
)

// Quote prices an amount against the client's pump price and balance without
// writing anything.
func (s *service) Quote(ctx context.Context, clientID string, amount float64) (*domain.Quote, error) {
	account, err := s.accountsDAL.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	quote, err := domain.ComputeQuote(amount, account.PumpPrice, account.Balance)
	if err != nil {
		return nil, err
	}

	return &quote, nil
}

// Submit prices the request, snapshots the client balance and fans the new
// transaction out to the ledger, the client mirror and a notification in one
// atomic write. A request the client cannot afford never reaches the ledger.
func (s *service) Submit(ctx context.Context, req *SubmitRequest) (*domain.LedgerEntry, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	account, err := s.accountsDAL.Get(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	quote, err := domain.ComputeQuote(req.Amount, account.PumpPrice, account.Balance)
	if err != nil {
		return nil, err
	}

	if !quote.Affordable {
		return nil, &domain.InsufficientFundsError{
			Requested: req.Amount,
			Available: account.Balance,
		}
	}

	now := time.Now().UTC()

	entry := &domain.LedgerEntry{
		ID:          domain.NewTransactionID(),
		ClientID:    req.ClientID,
		ClientEmail: account.Email,
		Amount:      req.Amount,
		Litres:      quote.Litres,
		FuelType:    req.FuelType,
		Vehicle:     req.Vehicle,
		PumpPrice:   account.PumpPrice,
		Status:      domain.StatusPending,
		Timestamp:   now,
		Metadata: domain.Metadata{
			ClientBalance: account.Balance,
		},
		ProcessingSteps: []domain.ProcessingStep{
			{
				Step:      domain.StepCreated,
				Status:    string(domain.StatusPending),
				Actor:     req.ClientID,
				Timestamp: now,
			},
		},
	}

	if err := s.transactionsDAL.CreateWithFanout(ctx, entry, notifdomain.ForTransaction(entry)); err != nil {
		return nil, err
	}

	s.loggerProvider(ctx).Infof("transaction %s created for client %s: %.2f litres of %s", entry.ID, entry.ClientID, entry.Litres, entry.FuelType)

	return entry, nil
}
