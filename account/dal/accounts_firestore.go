package dal

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kawerify-tech/flo-orders-app-sub000/account/domain"
	"github.com/kawerify-tech/flo-orders-app-sub000/framework/connection"
)

const (
	clientsCollection = "clients"
	topUpsCollection  = "topups"

	balanceField   = "balance"
	emailField     = "email"
	statusField    = "status"
	pumpPriceField = "pumpPrice"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrInsufficientBalance = errors.New("balance lower than debit amount")
	ErrInvalidDebitAmount  = errors.New("debit amount must be positive")
	ErrInvalidPumpPrice    = errors.New("pump price must be positive")
)

// AccountsFirestore is used to interact with client accounts stored on Firestore.
type AccountsFirestore struct {
	firestoreClientFun connection.FirestoreFromContextFun
}

// NewAccountsFirestore returns a new AccountsFirestore instance with given project id.
func NewAccountsFirestore(ctx context.Context, projectID string) (*AccountsFirestore, error) {
	fs, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return NewAccountsFirestoreWithClient(
		func(ctx context.Context) *firestore.Client {
			return fs
		},
	), nil
}

// NewAccountsFirestoreWithClient returns a new AccountsFirestore using given client.
func NewAccountsFirestoreWithClient(fun connection.FirestoreFromContextFun) *AccountsFirestore {
	return &AccountsFirestore{
		firestoreClientFun: fun,
	}
}

func (d *AccountsFirestore) clientsCollection(ctx context.Context) *firestore.CollectionRef {
	return d.firestoreClientFun(ctx).Collection(clientsCollection)
}

// GetRef returns the document reference of an account.
func (d *AccountsFirestore) GetRef(ctx context.Context, accountID string) *firestore.DocumentRef {
	return d.clientsCollection(ctx).Doc(accountID)
}

// Get returns an account's data.
func (d *AccountsFirestore) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	if accountID == "" {
		return nil, ErrAccountNotFound
	}

	snap, err := d.GetRef(ctx, accountID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrAccountNotFound
		}

		return nil, err
	}

	var account domain.Account

	if err := snap.DataTo(&account); err != nil {
		return nil, err
	}

	account.ID = snap.Ref.ID

	return &account, nil
}

// GetByEmail returns the account matching the given email.
func (d *AccountsFirestore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	iter := d.clientsCollection(ctx).
		Where(emailField, "==", email).
		Limit(1).
		Documents(ctx)

	snaps, err := iter.GetAll()
	if err != nil {
		return nil, err
	}

	if len(snaps) == 0 {
		return nil, ErrAccountNotFound
	}

	var account domain.Account

	if err := snaps[0].DataTo(&account); err != nil {
		return nil, err
	}

	account.ID = snaps[0].Ref.ID

	return &account, nil
}

// ListActive returns all active accounts. Used by the reconciliation job.
func (d *AccountsFirestore) ListActive(ctx context.Context) ([]*domain.Account, error) {
	iter := d.clientsCollection(ctx).
		Where(statusField, "==", string(domain.AccountActive)).
		Documents(ctx)

	snaps, err := iter.GetAll()
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(snaps))

	for _, snap := range snaps {
		var account domain.Account

		if err := snap.DataTo(&account); err != nil {
			return nil, err
		}

		account.ID = snap.Ref.ID
		accounts = append(accounts, &account)
	}

	return accounts, nil
}

// Credit tops up an account balance and records the immutable top-up event in
// the same batch. The arithmetic uses the storage layer's atomic increment so
// concurrent credits never lose updates.
func (d *AccountsFirestore) Credit(ctx context.Context, accountID string, amount float64, actorID string) error {
	if amount <= 0 {
		return ErrInvalidDebitAmount
	}

	accountRef := d.GetRef(ctx, accountID)
	topUpRef := accountRef.Collection(topUpsCollection).NewDoc()

	batch := d.firestoreClientFun(ctx).Batch()
	batch.Update(accountRef, []firestore.Update{
		{Path: balanceField, Value: firestore.Increment(amount)},
	})
	batch.Set(topUpRef, domain.TopUp{
		Amount:    amount,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
	})

	if _, err := batch.Commit(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrAccountNotFound
		}

		return err
	}

	return nil
}

// DebitGuarded decrements the balance inside a transaction guarded by
// "balance >= amount", so concurrent debits can never drive it negative.
func (d *AccountsFirestore) DebitGuarded(ctx context.Context, accountID string, amount float64) error {
	if amount <= 0 {
		return ErrInvalidDebitAmount
	}

	fs := d.firestoreClientFun(ctx)

	return fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		accountRef := d.GetRef(ctx, accountID)

		snap, err := tx.Get(accountRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrAccountNotFound
			}

			return err
		}

		var account domain.Account
		if err := snap.DataTo(&account); err != nil {
			return err
		}

		if account.Balance < amount {
			return ErrInsufficientBalance
		}

		return tx.Update(accountRef, []firestore.Update{
			{Path: balanceField, Value: account.Balance - amount},
		})
	})
}

// ListTopUps returns the account's credit events, most recent first.
func (d *AccountsFirestore) ListTopUps(ctx context.Context, accountID string) ([]*domain.TopUp, error) {
	iter := d.GetRef(ctx, accountID).
		Collection(topUpsCollection).
		OrderBy("timestamp", firestore.Desc).
		Documents(ctx)

	snaps, err := iter.GetAll()
	if err != nil {
		return nil, err
	}

	topUps := make([]*domain.TopUp, 0, len(snaps))

	for _, snap := range snaps {
		var topUp domain.TopUp

		if err := snap.DataTo(&topUp); err != nil {
			return nil, err
		}

		topUp.ID = snap.Ref.ID
		topUps = append(topUps, &topUp)
	}

	return topUps, nil
}

// SetBalance overwrites the balance field. Reserved for the reconciliation job.
func (d *AccountsFirestore) SetBalance(ctx context.Context, accountID string, balance float64) error {
	_, err := d.GetRef(ctx, accountID).Update(ctx, []firestore.Update{
		{Path: balanceField, Value: balance},
	})
	if status.Code(err) == codes.NotFound {
		return ErrAccountNotFound
	}

	return err
}

// SetPumpPrice updates the pump price used for quoting.
func (d *AccountsFirestore) SetPumpPrice(ctx context.Context, accountID string, price float64) error {
	if price <= 0 {
		return ErrInvalidPumpPrice
	}

	_, err := d.GetRef(ctx, accountID).Update(ctx, []firestore.Update{
		{Path: pumpPriceField, Value: price},
	})
	if status.Code(err) == codes.NotFound {
		return ErrAccountNotFound
	}

	return err
}
