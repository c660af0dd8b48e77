package domain

import "time"

type AccountStatus string

const (
	AccountActive   AccountStatus = "active"
	AccountInactive AccountStatus = "inactive"
)

// Account is a fuel client account. Balance is the single source of truth for
// spendable funds; it is credited by top-ups and debited on approval only.
type Account struct {
	ID        string        `firestore:"-" json:"id"`
	Email     string        `firestore:"email" json:"email"`
	Name      string        `firestore:"name" json:"name"`
	Balance   float64       `firestore:"balance" json:"balance"`
	PumpPrice float64       `firestore:"pumpPrice" json:"pumpPrice"`
	Vehicles  []string      `firestore:"vehicles" json:"vehicles"`
	Status    AccountStatus `firestore:"status" json:"status"`
	UpdatedAt time.Time     `firestore:"updatedAt,serverTimestamp" json:"updatedAt"`
}

// TopUp is an immutable credit event stored under the account. The
// reconciliation job folds these together with completed ledger debits to
// recompute the expected balance.
type TopUp struct {
	ID        string    `firestore:"-" json:"id"`
	Amount    float64   `firestore:"amount" json:"amount"`
	ActorID   string    `firestore:"actorId" json:"actorId"`
	Timestamp time.Time `firestore:"timestamp" json:"timestamp"`
}
