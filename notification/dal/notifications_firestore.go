package dal

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kawerify-tech/flo-orders-app-sub000/framework/connection"
	"github.com/kawerify-tech/flo-orders-app-sub000/notification/domain"
)

const (
	clientsCollection       = "clients"
	notificationsCollection = "notifications"

	readField      = "read"
	timestampField = "timestamp"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationsFirestore stores per-client notifications under the owning
// account document.
type NotificationsFirestore struct {
	firestoreClientFun connection.FirestoreFromContextFun
}

// NewNotificationsFirestore returns a new NotificationsFirestore instance with given project id.
func NewNotificationsFirestore(ctx context.Context, projectID string) (*NotificationsFirestore, error) {
	fs, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return NewNotificationsFirestoreWithClient(
		func(ctx context.Context) *firestore.Client {
			return fs
		},
	), nil
}

// NewNotificationsFirestoreWithClient returns a new NotificationsFirestore using given client.
func NewNotificationsFirestoreWithClient(fun connection.FirestoreFromContextFun) *NotificationsFirestore {
	return &NotificationsFirestore{
		firestoreClientFun: fun,
	}
}

func (d *NotificationsFirestore) collectionRef(ctx context.Context, clientID string) *firestore.CollectionRef {
	return d.firestoreClientFun(ctx).
		Collection(clientsCollection).Doc(clientID).
		Collection(notificationsCollection)
}

// Create appends a notification for the client.
func (d *NotificationsFirestore) Create(ctx context.Context, clientID string, notification *domain.Notification) error {
	_, _, err := d.collectionRef(ctx, clientID).Add(ctx, notification)
	return err
}

// List returns the client's notifications, most recent first.
func (d *NotificationsFirestore) List(ctx context.Context, clientID string, limit int) ([]*domain.Notification, error) {
	q := d.collectionRef(ctx, clientID).OrderBy(timestampField, firestore.Desc)

	if limit > 0 {
		q = q.Limit(limit)
	}

	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	notifications := make([]*domain.Notification, 0, len(snaps))

	for _, snap := range snaps {
		var n domain.Notification

		if err := snap.DataTo(&n); err != nil {
			return nil, err
		}

		n.ID = snap.Ref.ID
		notifications = append(notifications, &n)
	}

	return notifications, nil
}

// MarkRead flags a single notification as read.
func (d *NotificationsFirestore) MarkRead(ctx context.Context, clientID, notificationID string) error {
	_, err := d.collectionRef(ctx, clientID).Doc(notificationID).Update(ctx, []firestore.Update{
		{Path: readField, Value: true},
	})
	if status.Code(err) == codes.NotFound {
		return ErrNotificationNotFound
	}

	return err
}

// MarkAllRead flags every unread notification of the client as read.
func (d *NotificationsFirestore) MarkAllRead(ctx context.Context, clientID string) error {
	snaps, err := d.collectionRef(ctx, clientID).
		Where(readField, "==", false).
		Documents(ctx).GetAll()
	if err != nil {
		return err
	}

	if len(snaps) == 0 {
		return nil
	}

	batch := d.firestoreClientFun(ctx).Batch()

	for _, snap := range snaps {
		batch.Update(snap.Ref, []firestore.Update{
			{Path: readField, Value: true},
		})
	}

	_, err = batch.Commit(ctx)

	return err
}
