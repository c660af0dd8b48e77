package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeQuote(t *testing.T) {
	type args struct {
		amount    float64
		pumpPrice float64
		balance   float64
	}

	tests := []struct {
		name    string
		args    args
		want    Quote
		wantErr error
	}{
		{
			name: "exact division",
			args: args{amount: 100, pumpPrice: 8, balance: 500},
			want: Quote{Litres: 12.5, Affordable: true},
		},
		{
			name: "repeating decimal rounds to two places",
			args: args{amount: 100, pumpPrice: 3, balance: 500},
			want: Quote{Litres: 33.33, Affordable: true},
		},
		{
			name: "rounds up past the half",
			args: args{amount: 200, pumpPrice: 7, balance: 500},
			want: Quote{Litres: 28.57, Affordable: true},
		},
		{
			name: "amount equal to balance is affordable",
			args: args{amount: 500, pumpPrice: 10, balance: 500},
			want: Quote{Litres: 50, Affordable: true},
		},
		{
			name: "amount above balance is not affordable",
			args: args{amount: 500.01, pumpPrice: 10, balance: 500},
			want: Quote{Litres: 50, Affordable: false},
		},
		{
			name: "zero balance",
			args: args{amount: 10, pumpPrice: 10, balance: 0},
			want: Quote{Litres: 1, Affordable: false},
		},
		{
			name:    "zero amount",
			args:    args{amount: 0, pumpPrice: 10, balance: 100},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			args:    args{amount: -50, pumpPrice: 10, balance: 100},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "NaN amount",
			args:    args{amount: math.NaN(), pumpPrice: 10, balance: 100},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "infinite amount",
			args:    args{amount: math.Inf(1), pumpPrice: 10, balance: 100},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "zero pump price",
			args:    args{amount: 100, pumpPrice: 0, balance: 100},
			wantErr: ErrPumpPriceUnavailable,
		},
		{
			name:    "negative pump price",
			args:    args{amount: 100, pumpPrice: -3, balance: 100},
			wantErr: ErrPumpPriceUnavailable,
		},
		{
			name:    "NaN pump price",
			args:    args{amount: 100, pumpPrice: math.NaN(), balance: 100},
			wantErr: ErrPumpPriceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeQuote(tt.args.amount, tt.args.pumpPrice, tt.args.balance)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeQuoteLitresNotRecomputed(t *testing.T) {
	// The rounded litres figure from the quote is the one persisted; pricing
	// the same inputs twice must agree to the cent.
	first, err := ComputeQuote(1000, 3, 5000)
	assert.NoError(t, err)

	second, err := ComputeQuote(1000, 3, 5000)
	assert.NoError(t, err)

	assert.Equal(t, first.Litres, second.Litres)
	assert.Equal(t, 333.33, first.Litres)
}
