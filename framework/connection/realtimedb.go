package connection

import (
	"context"
	"errors"

	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/db"

	fb "github.com/kawerify-tech/flo-orders-app-sub000/firebase"
)

var (
	ErrRealtimeDBInitialization = errors.New("realtime database initialization error")
	ErrAuthInitialization       = errors.New("firebase auth initialization error")
)

type RealtimeDBClient struct {
	rtdb *db.Client
}

func NewRealtimeDB(ctx context.Context) (*RealtimeDBClient, error) {
	rtdb, err := fb.App.Database(ctx)
	if err != nil {
		return nil, ErrRealtimeDBInitialization
	}

	return &RealtimeDBClient{
		rtdb,
	}, nil
}

func NewAuth(ctx context.Context) (*auth.Client, error) {
	authClient, err := fb.App.Auth(ctx)
	if err != nil {
		return nil, ErrAuthInitialization
	}

	return authClient, nil
}
