package dal

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/kawerify-tech/flo-orders-app-sub000/framework/connection"
	"github.com/kawerify-tech/flo-orders-app-sub000/iam/domain"
)

const emailField = "email"

// Role membership is data, not token claims: each role has its own collection
// and the first collection containing the email wins, admin outranking
// attendant outranking client.
var roleCollections = []struct {
	collection string
	role       domain.Role
}{
	{"admins", domain.RoleAdmin},
	{"attendants", domain.RoleAttendant},
	{"clients", domain.RoleClient},
}

// IAMFirestore resolves roles from the role membership collections.
type IAMFirestore struct {
	firestoreClientFun connection.FirestoreFromContextFun
}

// NewIAMFirestore returns a new IAMFirestore instance with given project id.
func NewIAMFirestore(ctx context.Context, projectID string) (*IAMFirestore, error) {
	fs, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return NewIAMFirestoreWithClient(
		func(ctx context.Context) *firestore.Client {
			return fs
		},
	), nil
}

// NewIAMFirestoreWithClient returns a new IAMFirestore using given client.
func NewIAMFirestoreWithClient(fun connection.FirestoreFromContextFun) *IAMFirestore {
	return &IAMFirestore{
		firestoreClientFun: fun,
	}
}

// RoleByEmail returns the role provisioned for the email, or
// ErrUnknownIdentity when no collection contains it.
func (d *IAMFirestore) RoleByEmail(ctx context.Context, email string) (domain.Role, error) {
	fs := d.firestoreClientFun(ctx)

	for _, rc := range roleCollections {
		snaps, err := fs.Collection(rc.collection).
			Where(emailField, "==", email).
			Limit(1).
			Documents(ctx).GetAll()
		if err != nil {
			return "", err
		}

		if len(snaps) > 0 {
			return rc.role, nil
		}
	}

	return "", domain.ErrUnknownIdentity
}
