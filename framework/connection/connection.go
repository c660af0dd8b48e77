package connection

import (
	"context"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/db"
	"github.com/gin-gonic/gin"
)

const (
	// CtxFirestoreKey is how firestore connections are stored/retrieved.
	CtxFirestoreKey = "app-firestore"

	// CtxRealtimeDBKey is how realtime database connections are stored/retrieved.
	CtxRealtimeDBKey = "app-rtdb"
)

// Connection holds the managed backend clients the service talks to:
// Firestore for documents, the Realtime Database for presence/chat, and
// firebase auth for identity.
type Connection struct {
	*FirestoreClient
	*RealtimeDBClient
	AuthClient *auth.Client
}

// NewConnection initializes the backend clients necessary for api support.
func NewConnection(ctx context.Context) (*Connection, error) {
	fs, err := NewFirestore(ctx)
	if err != nil {
		return nil, err
	}

	rtdb, err := NewRealtimeDB(ctx)
	if err != nil {
		return nil, err
	}

	authClient, err := NewAuth(ctx)
	if err != nil {
		return nil, err
	}

	return &Connection{
		fs,
		rtdb,
		authClient,
	}, nil
}

// Firestore returns a firestore connection that was stored in context.
// it returns by default a firestore connection, if there was not on context.
func (c *Connection) Firestore(ctx context.Context) *firestore.Client {
	if fs, ok := ctx.Value(CtxFirestoreKey).(*firestore.Client); ok {
		return fs
	}

	return c.fs
}

// RealtimeDB returns a realtime database connection that was stored in context.
// it returns by default the shared connection, if there was not one on context.
func (c *Connection) RealtimeDB(ctx context.Context) *db.Client {
	if rtdb, ok := ctx.Value(CtxRealtimeDBKey).(*db.Client); ok {
		return rtdb
	}

	return c.rtdb
}

// Auth returns the firebase auth client.
func (c *Connection) Auth(ctx context.Context) *auth.Client {
	return c.AuthClient
}

// FirestoreWithContext stores under gin context, a firestore connection.
func (c *Connection) FirestoreWithContext(ctx *gin.Context) {
	ctx.Set(CtxFirestoreKey, c.fs)
}

type FirestoreFromContextFun = func(ctx context.Context) *firestore.Client
type RealtimeDBFromContextFun = func(ctx context.Context) *db.Client
