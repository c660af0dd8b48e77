package domain

import (
	"math"

	"github.com/kawerify-tech/flo-orders-app-sub000/common"
)

// Quote is the result of pricing a fuel request against an account.
type Quote struct {
	Litres     float64 `json:"litres"`
	Affordable bool    `json:"affordable"`
}

// ComputeQuote prices amount at pumpPrice and checks affordability against
// balance. Pure function, no side effects.
//
// Litres are rounded half-up to two decimal places; the rounded value is what
// gets persisted and reported, it is never re-rounded downstream.
func ComputeQuote(amount, pumpPrice, balance float64) (Quote, error) {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Quote{}, ErrInvalidAmount
	}

	if pumpPrice <= 0 || math.IsNaN(pumpPrice) || math.IsInf(pumpPrice, 0) {
		return Quote{}, ErrPumpPriceUnavailable
	}

	return Quote{
		Litres:     common.Round2(amount / pumpPrice),
		Affordable: amount <= balance,
	}, nil
}
