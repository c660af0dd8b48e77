package dal

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/hashicorp/go-multierror"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kawerify-tech/flo-orders-app-sub000/firebase"
	"github.com/kawerify-tech/flo-orders-app-sub000/framework/connection"
	notifdomain "github.com/kawerify-tech/flo-orders-app-sub000/notification/domain"
	"github.com/kawerify-tech/flo-orders-app-sub000/transaction/domain"
)

const (
	transactionsCollection  = "transactions"
	clientsCollection       = "clients"
	notificationsCollection = "notifications"

	statusField          = "status"
	clientIDField        = "clientId"
	timestampField       = "timestamp"
	processingStepsField = "processingSteps"
)

// TransactionsFirestore owns the global ledger collection and the per-client
// mirrors. The fan-out write keeps both, plus the derived notification, in a
// single atomic batch.
type TransactionsFirestore struct {
	firestoreClientFun connection.FirestoreFromContextFun
}

// NewTransactionsFirestore returns a new TransactionsFirestore instance with given project id.
func NewTransactionsFirestore(ctx context.Context, projectID string) (*TransactionsFirestore, error) {
	fs, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return NewTransactionsFirestoreWithClient(
		func(ctx context.Context) *firestore.Client {
			return fs
		},
	), nil
}

// NewTransactionsFirestoreWithClient returns a new TransactionsFirestore using given client.
func NewTransactionsFirestoreWithClient(fun connection.FirestoreFromContextFun) *TransactionsFirestore {
	return &TransactionsFirestore{
		firestoreClientFun: fun,
	}
}

func (d *TransactionsFirestore) ledgerRef(ctx context.Context, id string) *firestore.DocumentRef {
	return d.firestoreClientFun(ctx).Collection(transactionsCollection).Doc(id)
}

func (d *TransactionsFirestore) mirrorRef(ctx context.Context, clientID, id string) *firestore.DocumentRef {
	return d.firestoreClientFun(ctx).
		Collection(clientsCollection).Doc(clientID).
		Collection(transactionsCollection).Doc(id)
}

func (d *TransactionsFirestore) notificationRef(ctx context.Context, clientID string) *firestore.DocumentRef {
	return d.firestoreClientFun(ctx).
		Collection(clientsCollection).Doc(clientID).
		Collection(notificationsCollection).NewDoc()
}

// GetLedgerEntry returns the authoritative ledger entry.
func (d *TransactionsFirestore) GetLedgerEntry(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	snap, err := d.ledgerRef(ctx, id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrNotFound
		}

		return nil, err
	}

	var entry domain.LedgerEntry
	if err := snap.DataTo(&entry); err != nil {
		return nil, err
	}

	return &entry, nil
}

// CreateWithFanout writes the ledger entry, its per-client mirror and the
// derived notification in one atomic batch. Either all three exist afterwards,
// or none do.
func (d *TransactionsFirestore) CreateWithFanout(ctx context.Context, entry *domain.LedgerEntry, notification *notifdomain.Notification) error {
	batch := d.firestoreClientFun(ctx).Batch()

	batch.Create(d.ledgerRef(ctx, entry.ID), entry)
	batch.Set(d.mirrorRef(ctx, entry.ClientID, entry.ID), entry)
	batch.Set(d.notificationRef(ctx, entry.ClientID), notification)

	_, err := batch.Commit(ctx)

	return err
}

// TransitionStatus moves a pending ledger entry to a terminal status inside a
// transaction. The pending check runs against the entry re-read in the
// transaction, so two racing approvals cannot both win; the loser gets
// ErrInvalidStateTransition.
func (d *TransactionsFirestore) TransitionStatus(ctx context.Context, id string, to domain.Status, step domain.ProcessingStep, actorID, actorName string) (*domain.LedgerEntry, error) {
	fs := d.firestoreClientFun(ctx)

	var updated domain.LedgerEntry

	err := fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		ref := d.ledgerRef(ctx, id)

		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return domain.ErrNotFound
			}

			return err
		}

		var entry domain.LedgerEntry
		if err := snap.DataTo(&entry); err != nil {
			return err
		}

		if entry.Status != domain.StatusPending {
			return domain.ErrInvalidStateTransition
		}

		now := time.Now().UTC()
		entry.Status = to
		entry.AttendantID = actorID
		entry.AttendantName = actorName
		entry.ProcessedAt = &now
		entry.ProcessingSteps = append(entry.ProcessingSteps, step)

		updated = entry

		return tx.Set(ref, &entry)
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// SyncMirror overwrites the per-client mirror with the current ledger entry.
// Callers treat a failure here as a background inconsistency, not a user error.
func (d *TransactionsFirestore) SyncMirror(ctx context.Context, entry *domain.LedgerEntry) error {
	_, err := d.mirrorRef(ctx, entry.ClientID, entry.ID).Set(ctx, entry)
	return err
}

// AppendLedgerStep appends a processing step to the ledger entry and mirrors
// it, without touching the status.
func (d *TransactionsFirestore) AppendLedgerStep(ctx context.Context, id, clientID string, step domain.ProcessingStep) error {
	update := []firestore.Update{
		{Path: processingStepsField, Value: firestore.ArrayUnion(step)},
	}

	if _, err := d.ledgerRef(ctx, id).Update(ctx, update); err != nil {
		return err
	}

	_, err := d.mirrorRef(ctx, clientID, id).Update(ctx, update)

	return err
}

// RepairMirrors overwrites the per-client mirrors of the given ledger
// entries, batching past the 500 write limit when the reconciliation job
// finds a large drift.
func (d *TransactionsFirestore) RepairMirrors(ctx context.Context, entries []*domain.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	batch := firebase.NewAutomaticWriteBatch(d.firestoreClientFun(ctx), 250)

	for _, entry := range entries {
		batch.Set(d.mirrorRef(ctx, entry.ClientID, entry.ID), entry)
	}

	var berr *multierror.Error
	for _, err := range batch.Commit(ctx) {
		berr = multierror.Append(berr, err)
	}

	return berr.ErrorOrNil()
}

// ListByClient returns the client's mirrored transactions, most recent first.
func (d *TransactionsFirestore) ListByClient(ctx context.Context, clientID string, limit int) ([]*domain.LedgerEntry, error) {
	q := d.firestoreClientFun(ctx).
		Collection(clientsCollection).Doc(clientID).
		Collection(transactionsCollection).
		OrderBy(timestampField, firestore.Desc)

	if limit > 0 {
		q = q.Limit(limit)
	}

	return entriesFromIterator(q.Documents(ctx))
}

// ListPending returns pending ledger entries for the attendant queue, oldest first.
func (d *TransactionsFirestore) ListPending(ctx context.Context) ([]*domain.LedgerEntry, error) {
	iter := d.firestoreClientFun(ctx).
		Collection(transactionsCollection).
		Where(statusField, "==", string(domain.StatusPending)).
		OrderBy(timestampField, firestore.Asc).
		Documents(ctx)

	return entriesFromIterator(iter)
}

// ListLedgerByClient queries the global ledger by client id. The
// reconciliation job uses this to fold the authoritative history.
func (d *TransactionsFirestore) ListLedgerByClient(ctx context.Context, clientID string) ([]*domain.LedgerEntry, error) {
	iter := d.firestoreClientFun(ctx).
		Collection(transactionsCollection).
		Where(clientIDField, "==", clientID).
		Documents(ctx)

	return entriesFromIterator(iter)
}

func entriesFromIterator(iter *firestore.DocumentIterator) ([]*domain.LedgerEntry, error) {
	defer iter.Stop()

	var entries []*domain.LedgerEntry

	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}

		if err != nil {
			return nil, err
		}

		var entry domain.LedgerEntry

		if err := snap.DataTo(&entry); err != nil {
			return nil, err
		}

		entries = append(entries, &entry)
	}

	return entries, nil
}
