package service

import (
	"context"
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	accountMocks "github.com/kawerify-tech/flo-orders-app-sub000/account/dal/mocks"
	accountDomain "github.com/kawerify-tech/flo-orders-app-sub000/account/domain"
	"github.com/kawerify-tech/flo-orders-app-sub000/draft/dal"
	"github.com/kawerify-tech/flo-orders-app-sub000/draft/domain"
	"github.com/kawerify-tech/flo-orders-app-sub000/logger"
	loggerMocks "github.com/kawerify-tech/flo-orders-app-sub000/logger/mocks"
	txdomain "github.com/kawerify-tech/flo-orders-app-sub000/transaction/domain"
)

// fakeDrafts is an in-memory draft store with the same consume-on-promote
// semantics as the Firestore transaction.
type fakeDrafts struct {
	mu     sync.Mutex
	drafts map[string]*domain.Draft

	promoted []*txdomain.LedgerEntry
}

func newFakeDrafts() *fakeDrafts {
	return &fakeDrafts{drafts: map[string]*domain.Draft{}}
}

func (f *fakeDrafts) Save(ctx context.Context, draft *domain.Draft) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.drafts[draft.ID] = draft

	return nil
}

func (f *fakeDrafts) Get(ctx context.Context, clientID, draftID string) (*domain.Draft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	draft, ok := f.drafts[draftID]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}

	return draft, nil
}

func (f *fakeDrafts) List(ctx context.Context, clientID string) ([]*domain.Draft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*domain.Draft, 0, len(f.drafts))
	for _, d := range f.drafts {
		out = append(out, d)
	}

	return out, nil
}

func (f *fakeDrafts) Delete(ctx context.Context, clientID, draftID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.drafts, draftID)

	return nil
}

func (f *fakeDrafts) Watch(ctx context.Context, clientID string) (<-chan []*domain.Draft, error) {
	ch := make(chan []*domain.Draft)
	close(ch)

	return ch, nil
}

func (f *fakeDrafts) Promote(ctx context.Context, clientID, draftID string, fun dal.PromoteFun) (*txdomain.LedgerEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	draft, ok := f.drafts[draftID]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}

	entry, _, err := fun(draft)
	if err != nil {
		return nil, err
	}

	delete(f.drafts, draftID)
	f.promoted = append(f.promoted, entry)

	return entry, nil
}

func newTestService(drafts *fakeDrafts, accounts *accountMocks.Accounts) *service {
	return &service{
		loggerProvider: func(ctx context.Context) logger.ILogger {
			return &loggerMocks.ILogger{}
		},
		validate:    validator.New(),
		draftsDAL:   drafts,
		accountsDAL: accounts,
	}
}

func TestService_SaveDraft(t *testing.T) {
	var (
		ctx      = context.Background()
		clientID = "client-1"

		account = &accountDomain.Account{
			ID:        clientID,
			Balance:   1000,
			PumpPrice: 8,
		}
	)

	t.Run("prices and stores a new draft", func(t *testing.T) {
		drafts := newFakeDrafts()
		accounts := &accountMocks.Accounts{}
		accounts.On("Get", ctx, clientID).Return(account, nil)

		s := newTestService(drafts, accounts)

		draft, err := s.SaveDraft(ctx, &SaveRequest{
			ClientID: clientID,
			Amount:   100,
			FuelType: txdomain.FuelDiesel,
			Vehicle:  "KBX 123A",
		})
		assert.NoError(t, err)
		assert.Equal(t, 12.5, draft.Litres)
		assert.Contains(t, draft.ID, "DRAFT-")

		stored, err := drafts.Get(ctx, clientID, draft.ID)
		assert.NoError(t, err)
		assert.Equal(t, draft, stored)
	})

	t.Run("overwrite keeps the original creation time", func(t *testing.T) {
		drafts := newFakeDrafts()
		accounts := &accountMocks.Accounts{}
		accounts.On("Get", ctx, clientID).Return(account, nil)

		s := newTestService(drafts, accounts)

		first, err := s.SaveDraft(ctx, &SaveRequest{
			ClientID: clientID,
			Amount:   100,
			FuelType: txdomain.FuelDiesel,
			Vehicle:  "KBX 123A",
		})
		assert.NoError(t, err)

		second, err := s.SaveDraft(ctx, &SaveRequest{
			DraftID:  first.ID,
			ClientID: clientID,
			Amount:   200,
			FuelType: txdomain.FuelDiesel,
			Vehicle:  "KBX 123A",
		})
		assert.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.CreatedAt, second.CreatedAt)
		assert.Equal(t, 25.0, second.Litres)
	})

	t.Run("rejects an invalid fuel type", func(t *testing.T) {
		s := newTestService(newFakeDrafts(), &accountMocks.Accounts{})

		_, err := s.SaveDraft(ctx, &SaveRequest{
			ClientID: clientID,
			Amount:   100,
			FuelType: "kerosene",
			Vehicle:  "KBX 123A",
		})
		assert.Error(t, err)
	})
}

func TestService_PromoteDraft(t *testing.T) {
	var (
		ctx      = context.Background()
		clientID = "client-1"

		account = &accountDomain.Account{
			ID:        clientID,
			Email:     "client@flo.example",
			Balance:   1000,
			PumpPrice: 8,
		}
	)

	seed := func(drafts *fakeDrafts) *domain.Draft {
		draft := &domain.Draft{
			ID:       "DRAFT-1-abc",
			ClientID: clientID,
			Amount:   100,
			FuelType: txdomain.FuelDiesel,
			Vehicle:  "KBX 123A",
		}
		_ = drafts.Save(ctx, draft)

		return draft
	}

	t.Run("promotes once and consumes the draft", func(t *testing.T) {
		drafts := newFakeDrafts()
		accounts := &accountMocks.Accounts{}
		accounts.On("Get", ctx, clientID).Return(account, nil)

		draft := seed(drafts)
		s := newTestService(drafts, accounts)

		entry, err := s.PromoteDraft(ctx, clientID, draft.ID)
		assert.NoError(t, err)
		assert.Equal(t, txdomain.StatusPending, entry.Status)
		assert.Equal(t, 12.5, entry.Litres)
		assert.Equal(t, 1000.0, entry.Metadata.ClientBalance)

		steps := make([]string, 0, len(entry.ProcessingSteps))
		for _, step := range entry.ProcessingSteps {
			steps = append(steps, step.Step)
		}
		assert.Equal(t, []string{txdomain.StepCreated, txdomain.StepDraftSent}, steps)

		// the retry finds no draft and creates nothing
		_, err = s.PromoteDraft(ctx, clientID, draft.ID)
		assert.ErrorIs(t, err, domain.ErrDraftNotFound)
		assert.Len(t, drafts.promoted, 1)
	})

	t.Run("an unaffordable draft survives the failed promotion", func(t *testing.T) {
		drafts := newFakeDrafts()
		accounts := &accountMocks.Accounts{}
		accounts.On("Get", ctx, clientID).Return(&accountDomain.Account{
			ID:        clientID,
			Balance:   50,
			PumpPrice: 8,
		}, nil)

		draft := seed(drafts)
		s := newTestService(drafts, accounts)

		_, err := s.PromoteDraft(ctx, clientID, draft.ID)
		assert.True(t, txdomain.IsInsufficientFunds(err))

		_, err = drafts.Get(ctx, clientID, draft.ID)
		assert.NoError(t, err)
	})
}
