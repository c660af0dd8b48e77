package service

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/kawerify-tech/flo-orders-app-sub000/account/domain"
	"github.com/kawerify-tech/flo-orders-app-sub000/common"
	txdomain "github.com/kawerify-tech/flo-orders-app-sub000/transaction/domain"
)

const reconcileConcurrency = 4

// ReconciliationReport describes what reconciliation found and changed for
// one account.
type ReconciliationReport struct {
	AccountID       string  `json:"accountId"`
	PreviousBalance float64 `json:"previousBalance"`
	ExpectedBalance float64 `json:"expectedBalance"`
	Adjusted        bool    `json:"adjusted"`
	MirrorsRepaired int     `json:"mirrorsRepaired"`
}

// Reconcile recomputes every active account from its top-up history and the
// authoritative ledger, repairing drift left behind by best-effort writes.
func (s *service) Reconcile(ctx context.Context) ([]*ReconciliationReport, error) {
	accounts, err := s.accountsDAL.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		reports []*ReconciliationReport
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(reconcileConcurrency)

	for _, account := range accounts {
		account := account

		g.Go(func() error {
			report, err := s.ReconcileAccount(gctx, account.ID)
			if err != nil {
				return err
			}

			mu.Lock()
			reports = append(reports, report)
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}

// ReconcileAccount folds the account's top-ups against its completed ledger
// debits, resets the stored balance when it drifted and rewrites mirrors that
// fell out of sync with the ledger.
func (s *service) ReconcileAccount(ctx context.Context, accountID string) (*ReconciliationReport, error) {
	account, err := s.accountsDAL.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	var (
		topUps  []*domain.TopUp
		ledger  []*txdomain.LedgerEntry
		mirrors []*txdomain.LedgerEntry
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		topUps, err = s.accountsDAL.ListTopUps(gctx, accountID)
		return err
	})

	g.Go(func() error {
		var err error
		ledger, err = s.transactionsDAL.ListLedgerByClient(gctx, accountID)
		return err
	})

	g.Go(func() error {
		var err error
		mirrors, err = s.transactionsDAL.ListByClient(gctx, accountID, 0)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var expected float64

	for _, topUp := range topUps {
		expected += topUp.Amount
	}

	for _, entry := range ledger {
		if entry.Status == txdomain.StatusCompleted {
			expected -= entry.Amount
		}
	}

	expected = common.Round2(expected)
	if expected < 0 {
		expected = 0
	}

	report := &ReconciliationReport{
		AccountID:       accountID,
		PreviousBalance: account.Balance,
		ExpectedBalance: expected,
	}

	if stale := staleMirrors(ledger, mirrors); len(stale) > 0 {
		if err := s.transactionsDAL.RepairMirrors(ctx, stale); err != nil {
			return nil, err
		}

		report.MirrorsRepaired = len(stale)
	}

	if expected != account.Balance {
		if err := s.accountsDAL.SetBalance(ctx, accountID, expected); err != nil {
			return nil, err
		}

		report.Adjusted = true

		s.loggerProvider(ctx).Warningf("account %s balance adjusted %.2f -> %.2f", accountID, account.Balance, expected)
	}

	return report, nil
}

// staleMirrors returns the ledger entries whose mirror is missing or carries
// a different status. The ledger always wins.
func staleMirrors(ledger, mirrors []*txdomain.LedgerEntry) []*txdomain.LedgerEntry {
	byID := make(map[string]*txdomain.LedgerEntry, len(mirrors))
	for _, mirror := range mirrors {
		byID[mirror.ID] = mirror
	}

	var stale []*txdomain.LedgerEntry

	for _, entry := range ledger {
		mirror, ok := byID[entry.ID]
		if !ok || mirror.Status != entry.Status {
			stale = append(stale, entry)
		}
	}

	return stale
}
