package domain

import (
	"errors"
	"time"

	txdomain "github.com/kawerify-tech/flo-orders-app-sub000/transaction/domain"
)

// ErrDraftNotFound doubles as the promotion idempotence guard: a promoted
// draft no longer exists, so a retried promotion fails here instead of
// creating a second ledger entry.
var ErrDraftNotFound = errors.New("draft not found")

// Draft is an unsent fuel request, editable until promoted. Drafts are priced
// on save so the client sees litres while editing, but the figures are
// recomputed at promotion time against the live account.
type Draft struct {
	ID           string            `firestore:"id" json:"id"`
	ClientID     string            `firestore:"clientId" json:"clientId"`
	Amount       float64           `firestore:"amount" json:"amount"`
	Litres       float64           `firestore:"litres" json:"litres"`
	FuelType     txdomain.FuelType `firestore:"fuelType" json:"fuelType"`
	Vehicle      string            `firestore:"vehicle" json:"vehicle"`
	PumpPrice    float64           `firestore:"pumpPrice" json:"pumpPrice"`
	CreatedAt    time.Time         `firestore:"createdAt" json:"createdAt"`
	LastModified time.Time         `firestore:"lastModified" json:"lastModified"`
}
