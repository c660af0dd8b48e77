package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	accountDal "github.com/kawerify-tech/flo-orders-app-sub000/account/dal"
	accountMocks "github.com/kawerify-tech/flo-orders-app-sub000/account/dal/mocks"
	accountDomain "github.com/kawerify-tech/flo-orders-app-sub000/account/domain"
	"github.com/kawerify-tech/flo-orders-app-sub000/logger"
	loggerMocks "github.com/kawerify-tech/flo-orders-app-sub000/logger/mocks"
	notificationMocks "github.com/kawerify-tech/flo-orders-app-sub000/notification/dal/mocks"
	txMocks "github.com/kawerify-tech/flo-orders-app-sub000/transaction/dal/mocks"
	"github.com/kawerify-tech/flo-orders-app-sub000/transaction/domain"
)

type fields struct {
	transactionsDAL  *txMocks.Transactions
	accountsDAL      *accountMocks.Accounts
	notificationsDAL *notificationMocks.Notifications
}

func newTestService(f *fields) *service {
	return &service{
		loggerProvider: func(ctx context.Context) logger.ILogger {
			return &loggerMocks.ILogger{}
		},
		validate:         validator.New(),
		transactionsDAL:  f.transactionsDAL,
		accountsDAL:      f.accountsDAL,
		notificationsDAL: f.notificationsDAL,
	}
}

func TestService_Submit(t *testing.T) {
	var (
		ctx      = context.Background()
		clientID = "client-1"

		account = &accountDomain.Account{
			ID:        clientID,
			Email:     "client@flo.example",
			Balance:   1000,
			PumpPrice: 8,
			Status:    accountDomain.AccountActive,
		}
	)

	tests := []struct {
		name        string
		req         *SubmitRequest
		on          func(*fields)
		assert      func(*testing.T, *fields, *domain.LedgerEntry, error)
	}{
		{
			name: "fans out a priced pending transaction",
			req: &SubmitRequest{
				ClientID: clientID,
				Amount:   100,
				FuelType: domain.FuelDiesel,
				Vehicle:  "KBX 123A",
			},
			on: func(f *fields) {
				f.accountsDAL.On("Get", ctx, clientID).Return(account, nil)
				f.transactionsDAL.On("CreateWithFanout", ctx, mock.MatchedBy(func(entry *domain.LedgerEntry) bool {
					return entry.ClientID == clientID &&
						entry.Status == domain.StatusPending &&
						entry.Litres == 12.5 &&
						entry.PumpPrice == 8 &&
						entry.Metadata.ClientBalance == 1000 &&
						len(entry.ProcessingSteps) == 1 &&
						entry.ProcessingSteps[0].Step == domain.StepCreated
				}), mock.Anything).Return(nil)
			},
			assert: func(t *testing.T, f *fields, entry *domain.LedgerEntry, err error) {
				assert.NoError(t, err)
				assert.Equal(t, domain.StatusPending, entry.Status)
				assert.Equal(t, 12.5, entry.Litres)
				assert.Equal(t, account.Email, entry.ClientEmail)
			},
		},
		{
			name: "rejects an unaffordable request before any write",
			req: &SubmitRequest{
				ClientID: clientID,
				Amount:   5000,
				FuelType: domain.FuelBlend,
				Vehicle:  "KBX 123A",
			},
			on: func(f *fields) {
				f.accountsDAL.On("Get", ctx, clientID).Return(account, nil)
			},
			assert: func(t *testing.T, f *fields, entry *domain.LedgerEntry, err error) {
				assert.True(t, domain.IsInsufficientFunds(err))
				assert.Nil(t, entry)
				f.transactionsDAL.AssertNotCalled(t, "CreateWithFanout", mock.Anything, mock.Anything, mock.Anything)
			},
		},
		{
			name: "fails when the pump price is unset",
			req: &SubmitRequest{
				ClientID: clientID,
				Amount:   100,
				FuelType: domain.FuelDiesel,
				Vehicle:  "KBX 123A",
			},
			on: func(f *fields) {
				f.accountsDAL.On("Get", ctx, clientID).Return(&accountDomain.Account{
					ID:      clientID,
					Balance: 1000,
				}, nil)
			},
			assert: func(t *testing.T, f *fields, entry *domain.LedgerEntry, err error) {
				assert.ErrorIs(t, err, domain.ErrPumpPriceUnavailable)
			},
		},
		{
			name: "fails validation without touching the account",
			req: &SubmitRequest{
				ClientID: clientID,
				Amount:   100,
				FuelType: "petrol",
				Vehicle:  "KBX 123A",
			},
			on: func(f *fields) {},
			assert: func(t *testing.T, f *fields, entry *domain.LedgerEntry, err error) {
				assert.Error(t, err)
				f.accountsDAL.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
			},
		},
		{
			name: "propagates a missing account",
			req: &SubmitRequest{
				ClientID: "ghost",
				Amount:   100,
				FuelType: domain.FuelDiesel,
				Vehicle:  "KBX 123A",
			},
			on: func(f *fields) {
				f.accountsDAL.On("Get", ctx, "ghost").Return(nil, accountDal.ErrAccountNotFound)
			},
			assert: func(t *testing.T, f *fields, entry *domain.LedgerEntry, err error) {
				assert.ErrorIs(t, err, accountDal.ErrAccountNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fields{
				transactionsDAL:  &txMocks.Transactions{},
				accountsDAL:      &accountMocks.Accounts{},
				notificationsDAL: &notificationMocks.Notifications{},
			}
			tt.on(f)

			s := newTestService(f)

			entry, err := s.Submit(ctx, tt.req)
			tt.assert(t, f, entry, err)
		})
	}
}

func TestService_Approve(t *testing.T) {
	var (
		ctx           = context.Background()
		transactionID = "TXN-1-abc"
		clientID      = "client-1"
		actorID       = "attendant-1"
		actorName     = "Jane"

		pendingEntry = &domain.LedgerEntry{
			ID:       transactionID,
			ClientID: clientID,
			Amount:   100,
			Status:   domain.StatusPending,
		}

		completedEntry = &domain.LedgerEntry{
			ID:       transactionID,
			ClientID: clientID,
			Amount:   100,
			Status:   domain.StatusCompleted,
		}
	)

	tests := []struct {
		name    string
		on      func(*fields)
		assert  func(*testing.T, *fields, *domain.LedgerEntry, error)
	}{
		{
			name: "approves, debits and mirrors",
			on: func(f *fields) {
				f.transactionsDAL.On("GetLedgerEntry", ctx, transactionID).Return(pendingEntry, nil)
				f.transactionsDAL.On("TransitionStatus", ctx, transactionID, domain.StatusCompleted, mock.Anything, actorID, actorName).Return(completedEntry, nil)
				f.accountsDAL.On("DebitGuarded", ctx, clientID, 100.0).Return(nil)
				f.transactionsDAL.On("SyncMirror", ctx, completedEntry).Return(nil)
				f.notificationsDAL.On("Create", ctx, clientID, mock.Anything).Return(nil)
			},
			assert: func(t *testing.T, f *fields, entry *domain.LedgerEntry, err error) {
				assert.NoError(t, err)
				assert.Equal(t, domain.StatusCompleted, entry.Status)
				f.accountsDAL.AssertCalled(t, "DebitGuarded", ctx, clientID, 100.0)
			},
		},
		{
			name: "refuses an already processed transaction",
			on: func(f *fields) {
				f.transactionsDAL.On("GetLedgerEntry", ctx, transactionID).Return(completedEntry, nil)
			},
			assert: func(t *testing.T, f *fields, entry *domain.LedgerEntry, err error) {
				assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
				assert.Nil(t, entry)
				f.transactionsDAL.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			},
		},
		{
			name: "propagates a lost transition race",
			on: func(f *fields) {
				f.transactionsDAL.On("GetLedgerEntry", ctx, transactionID).Return(pendingEntry, nil)
				f.transactionsDAL.On("TransitionStatus", ctx, transactionID, domain.StatusCompleted, mock.Anything, actorID, actorName).Return(nil, domain.ErrInvalidStateTransition)
			},
			assert: func(t *testing.T, f *fields, entry *domain.LedgerEntry, err error) {
				assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
				f.accountsDAL.AssertNotCalled(t, "DebitGuarded", mock.Anything, mock.Anything, mock.Anything)
			},
		},
		{
			name: "records a balance hold when the debit is refused",
			on: func(f *fields) {
				f.transactionsDAL.On("GetLedgerEntry", ctx, transactionID).Return(pendingEntry, nil)
				f.transactionsDAL.On("TransitionStatus", ctx, transactionID, domain.StatusCompleted, mock.Anything, actorID, actorName).Return(completedEntry, nil)
				f.accountsDAL.On("DebitGuarded", ctx, clientID, 100.0).Return(accountDal.ErrInsufficientBalance)
				f.transactionsDAL.On("AppendLedgerStep", ctx, transactionID, clientID, mock.MatchedBy(func(step domain.ProcessingStep) bool {
					return step.Step == domain.StepBalanceHold
				})).Return(nil)
				f.transactionsDAL.On("SyncMirror", ctx, completedEntry).Return(nil)
				f.notificationsDAL.On("Create", ctx, clientID, mock.Anything).Return(nil)
			},
			assert: func(t *testing.T, f *fields, entry *domain.LedgerEntry, err error) {
				assert.NoError(t, err)
				assert.Equal(t, domain.StatusCompleted, entry.Status)
				f.transactionsDAL.AssertCalled(t, "AppendLedgerStep", ctx, transactionID, clientID, mock.Anything)
			},
		},
		{
			name: "a mirror failure does not undo the approval",
			on: func(f *fields) {
				f.transactionsDAL.On("GetLedgerEntry", ctx, transactionID).Return(pendingEntry, nil)
				f.transactionsDAL.On("TransitionStatus", ctx, transactionID, domain.StatusCompleted, mock.Anything, actorID, actorName).Return(completedEntry, nil)
				f.accountsDAL.On("DebitGuarded", ctx, clientID, 100.0).Return(nil)
				f.transactionsDAL.On("SyncMirror", ctx, completedEntry).Return(errors.New("mirror write failed"))
				f.notificationsDAL.On("Create", ctx, clientID, mock.Anything).Return(nil)
			},
			assert: func(t *testing.T, f *fields, entry *domain.LedgerEntry, err error) {
				assert.NoError(t, err)
				assert.Equal(t, domain.StatusCompleted, entry.Status)
			},
		},
		{
			name: "propagates a missing transaction",
			on: func(f *fields) {
				f.transactionsDAL.On("GetLedgerEntry", ctx, transactionID).Return(nil, domain.ErrNotFound)
			},
			assert: func(t *testing.T, f *fields, entry *domain.LedgerEntry, err error) {
				assert.ErrorIs(t, err, domain.ErrNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fields{
				transactionsDAL:  &txMocks.Transactions{},
				accountsDAL:      &accountMocks.Accounts{},
				notificationsDAL: &notificationMocks.Notifications{},
			}
			tt.on(f)

			s := newTestService(f)

			entry, err := s.Approve(ctx, transactionID, actorID, actorName)
			tt.assert(t, f, entry, err)
		})
	}
}

func TestService_Reject(t *testing.T) {
	var (
		ctx           = context.Background()
		transactionID = "TXN-2-def"
		clientID      = "client-1"

		pendingEntry = &domain.LedgerEntry{
			ID:       transactionID,
			ClientID: clientID,
			Amount:   100,
			Status:   domain.StatusPending,
		}

		rejectedEntry = &domain.LedgerEntry{
			ID:       transactionID,
			ClientID: clientID,
			Amount:   100,
			Status:   domain.StatusRejected,
		}
	)

	t.Run("rejects without moving funds", func(t *testing.T) {
		f := &fields{
			transactionsDAL:  &txMocks.Transactions{},
			accountsDAL:      &accountMocks.Accounts{},
			notificationsDAL: &notificationMocks.Notifications{},
		}

		f.transactionsDAL.On("GetLedgerEntry", ctx, transactionID).Return(pendingEntry, nil)
		f.transactionsDAL.On("TransitionStatus", ctx, transactionID, domain.StatusRejected, mock.Anything, "attendant-1", "Jane").Return(rejectedEntry, nil)
		f.transactionsDAL.On("SyncMirror", ctx, rejectedEntry).Return(nil)
		f.notificationsDAL.On("Create", ctx, clientID, mock.Anything).Return(nil)

		s := newTestService(f)

		entry, err := s.Reject(ctx, transactionID, "attendant-1", "Jane")
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, entry.Status)
		f.accountsDAL.AssertNotCalled(t, "DebitGuarded", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("refuses to reject a rejected transaction", func(t *testing.T) {
		f := &fields{
			transactionsDAL:  &txMocks.Transactions{},
			accountsDAL:      &accountMocks.Accounts{},
			notificationsDAL: &notificationMocks.Notifications{},
		}

		f.transactionsDAL.On("GetLedgerEntry", ctx, transactionID).Return(rejectedEntry, nil)

		s := newTestService(f)

		_, err := s.Reject(ctx, transactionID, "attendant-1", "Jane")
		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	})
}
