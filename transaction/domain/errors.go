package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount flags malformed or out-of-range user input. Caught
	// before any write, never retried.
	ErrInvalidAmount = errors.New("requested amount must be a positive number")

	// ErrPumpPriceUnavailable flags missing external configuration. Blocks
	// submission until an administrator sets the pump price.
	ErrPumpPriceUnavailable = errors.New("pump price unavailable")

	// ErrInvalidStateTransition flags an approve/reject against an entry that
	// already reached a terminal status. Treated as a no-op.
	ErrInvalidStateTransition = errors.New("transaction already processed")

	// ErrNotFound is returned when a ledger entry does not exist.
	ErrNotFound = errors.New("transaction not found")
)

// InsufficientFundsError reports a requested amount exceeding the available
// balance. Both figures are surfaced to the user.
type InsufficientFundsError struct {
	Requested float64
	Available float64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: requested %.2f, available %.2f", e.Requested, e.Available)
}

// IsInsufficientFunds reports whether err is an InsufficientFundsError.
func IsInsufficientFunds(err error) bool {
	var target *InsufficientFundsError
	return errors.As(err, &target)
}
