package connection

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"

	"github.com/kawerify-tech/flo-orders-app-sub000/common"
)

var ErrFirestoreInitialization = errors.New("firestore initialization error")

type FirestoreClient struct {
	fs *firestore.Client
}

func NewFirestore(ctx context.Context) (*FirestoreClient, error) {
	fs, err := firestore.NewClient(ctx, common.ProjectID)
	if err != nil {
		return nil, ErrFirestoreInitialization
	}

	return &FirestoreClient{
		fs,
	}, nil
}
