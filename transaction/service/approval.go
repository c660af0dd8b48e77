package service

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/qmuntal/stateless"

	accountDal "github.com/kawerify-tech/flo-orders-app-sub000/account/dal"
	notifdomain "github.com/kawerify-tech/flo-orders-app-sub000/notification/domain"
	"github.com/kawerify-tech/flo-orders-app-sub000/transaction/domain"
)

const (
	triggerApprove = "approve"
	triggerReject  = "reject"
)

// Approve completes a pending transaction: the ledger transition is strict and
// serialized, everything after it (debit, mirror, notification) is best effort
// and logged on failure.
func (s *service) Approve(ctx context.Context, transactionID, actorID, actorName string) (*domain.LedgerEntry, error) {
	return s.transition(ctx, transactionID, actorID, actorName, triggerApprove)
}

// Reject declines a pending transaction. No funds move.
func (s *service) Reject(ctx context.Context, transactionID, actorID, actorName string) (*domain.LedgerEntry, error) {
	return s.transition(ctx, transactionID, actorID, actorName, triggerReject)
}

func (s *service) transition(ctx context.Context, transactionID, actorID, actorName, trigger string) (*domain.LedgerEntry, error) {
	entry, err := s.transactionsDAL.GetLedgerEntry(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	var (
		updated *domain.LedgerEntry
		hookErr error
	)

	machine := stateless.NewStateMachine(string(entry.Status))

	machine.Configure(string(domain.StatusPending)).
		Permit(triggerApprove, string(domain.StatusCompleted)).
		Permit(triggerReject, string(domain.StatusRejected))

	machine.Configure(string(domain.StatusCompleted)).
		OnEntryFrom(triggerApprove, func(_ context.Context, _ ...any) error {
			updated, hookErr = s.onApproved(ctx, transactionID, actorID, actorName)
			return hookErr
		})

	machine.Configure(string(domain.StatusRejected)).
		OnEntryFrom(triggerReject, func(_ context.Context, _ ...any) error {
			updated, hookErr = s.onRejected(ctx, transactionID, actorID, actorName)
			return hookErr
		})

	if err := machine.Fire(trigger); err != nil {
		if hookErr != nil {
			return nil, hookErr
		}

		// Unpermitted trigger: the entry already reached a terminal status.
		return nil, domain.ErrInvalidStateTransition
	}

	return updated, nil
}

func (s *service) onApproved(ctx context.Context, transactionID, actorID, actorName string) (*domain.LedgerEntry, error) {
	now := time.Now().UTC()

	updated, err := s.transactionsDAL.TransitionStatus(ctx, transactionID, domain.StatusCompleted, domain.ProcessingStep{
		Step:      domain.StepApproved,
		Status:    string(domain.StatusCompleted),
		Actor:     actorName,
		Timestamp: now,
	}, actorID, actorName)
	if err != nil {
		return nil, err
	}

	// The ledger entry is already terminal at this point. Remaining steps
	// must not undo the approval, so their failures are collected and logged
	// for the reconciliation job to repair.
	var berr *multierror.Error

	if err := s.accountsDAL.DebitGuarded(ctx, updated.ClientID, updated.Amount); err != nil {
		if errors.Is(err, accountDal.ErrInsufficientBalance) {
			if aerr := s.transactionsDAL.AppendLedgerStep(ctx, updated.ID, updated.ClientID, domain.ProcessingStep{
				Step:      domain.StepBalanceHold,
				Status:    string(domain.StatusCompleted),
				Actor:     actorID,
				Timestamp: time.Now().UTC(),
			}); aerr != nil {
				berr = multierror.Append(berr, aerr)
			}
		}

		berr = multierror.Append(berr, err)
	}

	if err := s.transactionsDAL.SyncMirror(ctx, updated); err != nil {
		berr = multierror.Append(berr, err)
	}

	if err := s.notificationsDAL.Create(ctx, updated.ClientID, notifdomain.ForStatusChange(updated)); err != nil {
		berr = multierror.Append(berr, err)
	}

	if err := berr.ErrorOrNil(); err != nil {
		s.loggerProvider(ctx).Errorf("post-approval fan-out incomplete for %s: %v", transactionID, err)
	}

	return updated, nil
}

func (s *service) onRejected(ctx context.Context, transactionID, actorID, actorName string) (*domain.LedgerEntry, error) {
	updated, err := s.transactionsDAL.TransitionStatus(ctx, transactionID, domain.StatusRejected, domain.ProcessingStep{
		Step:      domain.StepRejected,
		Status:    string(domain.StatusRejected),
		Actor:     actorName,
		Timestamp: time.Now().UTC(),
	}, actorID, actorName)
	if err != nil {
		return nil, err
	}

	var berr *multierror.Error

	if err := s.transactionsDAL.SyncMirror(ctx, updated); err != nil {
		berr = multierror.Append(berr, err)
	}

	if err := s.notificationsDAL.Create(ctx, updated.ClientID, notifdomain.ForStatusChange(updated)); err != nil {
		berr = multierror.Append(berr, err)
	}

	if err := berr.ErrorOrNil(); err != nil {
		s.loggerProvider(ctx).Errorf("post-rejection fan-out incomplete for %s: %v", transactionID, err)
	}

	return updated, nil
}
