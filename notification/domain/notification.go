package domain

import (
	"fmt"
	"time"

	txdomain "github.com/kawerify-tech/flo-orders-app-sub000/transaction/domain"
)

// Notification is a human-readable projection of a ledger event, stored under
// the owning account. Its status tracks the transaction loosely, best-effort.
type Notification struct {
	ID            string          `firestore:"-" json:"id"`
	Title         string          `firestore:"title" json:"title"`
	Body          string          `firestore:"body" json:"body"`
	TransactionID string          `firestore:"transactionId,omitempty" json:"transactionId,omitempty"`
	Status        txdomain.Status `firestore:"status,omitempty" json:"status,omitempty"`
	Read          bool            `firestore:"read" json:"read"`
	Timestamp     time.Time       `firestore:"timestamp" json:"timestamp"`
}

// ForTransaction derives the notification written in the same batch as a new
// ledger entry.
func ForTransaction(entry *txdomain.LedgerEntry) *Notification {
	return &Notification{
		Title:         "Fuel request received",
		Body:          fmt.Sprintf("Request for %.2f litres of %s (%s) is pending approval", entry.Litres, entry.FuelType, entry.Vehicle),
		TransactionID: entry.ID,
		Status:        entry.Status,
		Read:          false,
		Timestamp:     entry.Timestamp,
	}
}

// ForStatusChange derives the notification update text for a processed
// transaction.
func ForStatusChange(entry *txdomain.LedgerEntry) *Notification {
	title := "Fuel request rejected"
	if entry.Status == txdomain.StatusCompleted {
		title = "Fuel request completed"
	}

	return &Notification{
		Title:         title,
		Body:          fmt.Sprintf("Request %s for %.2f litres is %s", entry.ID, entry.Litres, entry.Status),
		TransactionID: entry.ID,
		Status:        entry.Status,
		Read:          false,
		Timestamp:     time.Now().UTC(),
	}
}
