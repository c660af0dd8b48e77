package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status of a ledger entry. Transitions are monotonic:
// pending -> completed or pending -> rejected, nothing leaves a terminal state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
)

// Terminal reports whether no further transitions are allowed from s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

type FuelType string

const (
	FuelDiesel FuelType = "diesel"
	FuelBlend  FuelType = "blend"
)

// Processing step names recorded on the ledger entry audit trail.
const (
	StepCreated     = "created"
	StepDraftSent   = "draft_sent"
	StepApproved    = "approved"
	StepRejected    = "rejected"
	StepBalanceHold = "balance_hold"
)

// ProcessingStep is one entry of the ordered audit trail on a ledger entry.
type ProcessingStep struct {
	Step      string    `firestore:"step" json:"step"`
	Status    string    `firestore:"status" json:"status"`
	Actor     string    `firestore:"actor,omitempty" json:"actor,omitempty"`
	Timestamp time.Time `firestore:"timestamp" json:"timestamp"`
}

// Metadata carries the balance snapshot taken at request time. It is never
// recomputed after creation.
type Metadata struct {
	ClientBalance float64 `firestore:"clientBalance" json:"clientBalance"`
}

// LedgerEntry is the authoritative transaction record in the global
// transactions collection. The per-client mirror is structurally identical.
type LedgerEntry struct {
	ID              string           `firestore:"id" json:"id"`
	ClientID        string           `firestore:"clientId" json:"clientId"`
	ClientEmail     string           `firestore:"clientEmail" json:"clientEmail"`
	Amount          float64          `firestore:"amount" json:"amount"`
	Litres          float64          `firestore:"litres" json:"litres"`
	FuelType        FuelType         `firestore:"fuelType" json:"fuelType"`
	Vehicle         string           `firestore:"vehicle" json:"vehicle"`
	PumpPrice       float64          `firestore:"pumpPrice" json:"pumpPrice"`
	Status          Status           `firestore:"status" json:"status"`
	AttendantID     string           `firestore:"attendantId,omitempty" json:"attendantId,omitempty"`
	AttendantName   string           `firestore:"attendantName,omitempty" json:"attendantName,omitempty"`
	Timestamp       time.Time        `firestore:"timestamp" json:"timestamp"`
	ProcessedAt     *time.Time       `firestore:"processedAt,omitempty" json:"processedAt,omitempty"`
	Metadata        Metadata         `firestore:"metadata" json:"metadata"`
	ProcessingSteps []ProcessingStep `firestore:"processingSteps" json:"processingSteps"`
}

// Intent is a finalized transaction request, ready for the fan-out writer.
type Intent struct {
	ClientID      string   `json:"clientId"`
	ClientEmail   string   `json:"clientEmail"`
	Amount        float64  `json:"amount"`
	FuelType      FuelType `json:"fuelType"`
	Vehicle       string   `json:"vehicle"`
	PumpPrice     float64  `json:"pumpPrice"`
	AttendantID   string   `json:"attendantId,omitempty"`
	AttendantName string   `json:"attendantName,omitempty"`
}

// NewTransactionID generates a ledger entry id. Collisions are astronomically
// unlikely, which is acceptable for this domain.
func NewTransactionID() string {
	return fmt.Sprintf("TXN-%d-%s", time.Now().UnixMilli(), idSuffix())
}

// NewDraftID generates a draft id.
func NewDraftID() string {
	return fmt.Sprintf("DRAFT-%d-%s", time.Now().UnixMilli(), idSuffix())
}

func idSuffix() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}
