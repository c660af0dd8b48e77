package dal

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kawerify-tech/flo-orders-app-sub000/draft/domain"
	"github.com/kawerify-tech/flo-orders-app-sub000/framework/connection"
	"github.com/kawerify-tech/flo-orders-app-sub000/logger"
	notifdomain "github.com/kawerify-tech/flo-orders-app-sub000/notification/domain"
	txdomain "github.com/kawerify-tech/flo-orders-app-sub000/transaction/domain"
)

const (
	clientsCollection       = "clients"
	draftsCollection        = "drafts"
	transactionsCollection  = "transactions"
	notificationsCollection = "notifications"

	lastModifiedField = "lastModified"
)

// PromoteFun builds the ledger entry and notification for a draft inside the
// promotion transaction. Returning an error aborts the promotion and leaves
// the draft untouched.
type PromoteFun func(draft *domain.Draft) (*txdomain.LedgerEntry, *notifdomain.Notification, error)

// DraftsFirestore stores unsent requests under the owning client document.
type DraftsFirestore struct {
	firestoreClientFun connection.FirestoreFromContextFun
}

// NewDraftsFirestore returns a new DraftsFirestore instance with given project id.
func NewDraftsFirestore(ctx context.Context, projectID string) (*DraftsFirestore, error) {
	fs, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return NewDraftsFirestoreWithClient(
		func(ctx context.Context) *firestore.Client {
			return fs
		},
	), nil
}

// NewDraftsFirestoreWithClient returns a new DraftsFirestore using given client.
func NewDraftsFirestoreWithClient(fun connection.FirestoreFromContextFun) *DraftsFirestore {
	return &DraftsFirestore{
		firestoreClientFun: fun,
	}
}

func (d *DraftsFirestore) draftRef(ctx context.Context, clientID, draftID string) *firestore.DocumentRef {
	return d.firestoreClientFun(ctx).
		Collection(clientsCollection).Doc(clientID).
		Collection(draftsCollection).Doc(draftID)
}

// Save creates or overwrites a draft.
func (d *DraftsFirestore) Save(ctx context.Context, draft *domain.Draft) error {
	_, err := d.draftRef(ctx, draft.ClientID, draft.ID).Set(ctx, draft)
	return err
}

// Get returns a single draft.
func (d *DraftsFirestore) Get(ctx context.Context, clientID, draftID string) (*domain.Draft, error) {
	snap, err := d.draftRef(ctx, clientID, draftID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrDraftNotFound
		}

		return nil, err
	}

	var draft domain.Draft
	if err := snap.DataTo(&draft); err != nil {
		return nil, err
	}

	return &draft, nil
}

// List returns the client's drafts, most recently modified first.
func (d *DraftsFirestore) List(ctx context.Context, clientID string) ([]*domain.Draft, error) {
	snaps, err := d.firestoreClientFun(ctx).
		Collection(clientsCollection).Doc(clientID).
		Collection(draftsCollection).
		OrderBy(lastModifiedField, firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	return draftsFromSnaps(snaps)
}

// Delete removes a draft. Deleting a missing draft is a no-op.
func (d *DraftsFirestore) Delete(ctx context.Context, clientID, draftID string) error {
	_, err := d.draftRef(ctx, clientID, draftID).Delete(ctx)
	return err
}

// Watch streams the client's draft list on every change until ctx is
// cancelled. The returned channel is closed when the subscription ends.
func (d *DraftsFirestore) Watch(ctx context.Context, clientID string) (<-chan []*domain.Draft, error) {
	iter := d.firestoreClientFun(ctx).
		Collection(clientsCollection).Doc(clientID).
		Collection(draftsCollection).
		OrderBy(lastModifiedField, firestore.Desc).
		Snapshots(ctx)

	out := make(chan []*domain.Draft)

	go func() {
		defer close(out)
		defer iter.Stop()

		for {
			snap, err := iter.Next()
			if err != nil {
				d.watchEnded(ctx, clientID, err)
				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				d.watchEnded(ctx, clientID, err)
				return
			}

			drafts, err := draftsFromSnaps(docs)
			if err != nil {
				d.watchEnded(ctx, clientID, err)
				return
			}

			select {
			case out <- drafts:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// watchEnded reports why a live subscription stopped. Cancellation is the
// normal teardown and stays quiet.
func (d *DraftsFirestore) watchEnded(ctx context.Context, clientID string, err error) {
	if ctx.Err() != nil {
		return
	}

	logger.FromContext(ctx).Errorf("draft watch for client %s ended: %v", clientID, err)
}

// Promote atomically consumes a draft and fans out the transaction it
// describes. The draft read, its deletion and the three fan-out writes share
// one Firestore transaction; a draft promoted by a concurrent request is gone
// by the time the retry reads it, so the retry fails with ErrDraftNotFound
// instead of double-writing the ledger.
func (d *DraftsFirestore) Promote(ctx context.Context, clientID, draftID string, fun PromoteFun) (*txdomain.LedgerEntry, error) {
	fs := d.firestoreClientFun(ctx)

	var promoted *txdomain.LedgerEntry

	err := fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		draftRef := d.draftRef(ctx, clientID, draftID)

		snap, err := tx.Get(draftRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return domain.ErrDraftNotFound
			}

			return err
		}

		var draft domain.Draft
		if err := snap.DataTo(&draft); err != nil {
			return err
		}

		entry, notification, err := fun(&draft)
		if err != nil {
			return err
		}

		ledgerRef := fs.Collection(transactionsCollection).Doc(entry.ID)
		mirrorRef := fs.Collection(clientsCollection).Doc(entry.ClientID).
			Collection(transactionsCollection).Doc(entry.ID)
		notificationRef := fs.Collection(clientsCollection).Doc(entry.ClientID).
			Collection(notificationsCollection).NewDoc()

		if err := tx.Delete(draftRef); err != nil {
			return err
		}

		if err := tx.Create(ledgerRef, entry); err != nil {
			return err
		}

		if err := tx.Set(mirrorRef, entry); err != nil {
			return err
		}

		if err := tx.Set(notificationRef, notification); err != nil {
			return err
		}

		promoted = entry

		return nil
	})
	if err != nil {
		return nil, err
	}

	return promoted, nil
}

func draftsFromSnaps(snaps []*firestore.DocumentSnapshot) ([]*domain.Draft, error) {
	drafts := make([]*domain.Draft, 0, len(snaps))

	for _, snap := range snaps {
		var draft domain.Draft

		if err := snap.DataTo(&draft); err != nil {
			return nil, err
		}

		drafts = append(drafts, &draft)
	}

	return drafts, nil
}
