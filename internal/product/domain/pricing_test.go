package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestQuotePrice(t *testing.T) {
	tests := []struct {
		name           string
		unitPrice      decimal.Decimal
		wholesalePrice *decimal.Decimal
		threshold      int
		quantity       int
		wantUnit       string
		wantTotal      string
		wantWholesale  bool
	}{
		{
			name:           "wholesale applies above threshold",
			unitPrice:      dec("10.00"),
			wholesalePrice: decPtr("8.00"),
			threshold:      20,
			quantity:       25,
			wantUnit:       "8.00",
			wantTotal:      "200.00",
			wantWholesale:  true,
		},
		{
			name:           "base price at threshold",
			unitPrice:      dec("10.00"),
			wholesalePrice: decPtr("8.00"),
			threshold:      20,
			quantity:       20,
			wantUnit:       "10.00",
			wantTotal:      "200.00",
			wantWholesale:  false,
		},
		{
			name:           "base price below threshold",
			unitPrice:      dec("10.00"),
			wholesalePrice: decPtr("8.00"),
			threshold:      20,
			quantity:       5,
			wantUnit:       "10.00",
			wantTotal:      "50.00",
			wantWholesale:  false,
		},
		{
			name:          "no wholesale price configured",
			unitPrice:     dec("10.00"),
			threshold:     20,
			quantity:      25,
			wantUnit:      "10.00",
			wantTotal:     "250.00",
			wantWholesale: false,
		},
		{
			name:           "custom threshold",
			unitPrice:      dec("5.50"),
			wholesalePrice: decPtr("4.75"),
			threshold:      10,
			quantity:       11,
			wantUnit:       "4.75",
			wantTotal:      "52.25",
			wantWholesale:  true,
		},
		{
			name:          "total rounds half up",
			unitPrice:     dec("0.335"),
			threshold:     20,
			quantity:      3,
			wantUnit:      "0.335",
			wantTotal:     "1.01", // 1.005 rounds up
			wantWholesale: false,
		},
		{
			name:          "single unit",
			unitPrice:     dec("19.99"),
			threshold:     20,
			quantity:      1,
			wantUnit:      "19.99",
			wantTotal:     "19.99",
			wantWholesale: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := QuotePrice(tt.unitPrice, tt.wholesalePrice, tt.threshold, tt.quantity)
			require.NoError(t, err)

			assert.True(t, quote.UnitPrice.Equal(dec(tt.wantUnit)),
				"unit price: got %s, want %s", quote.UnitPrice, tt.wantUnit)
			assert.True(t, quote.Total.Equal(dec(tt.wantTotal)),
				"total: got %s, want %s", quote.Total, tt.wantTotal)
			assert.Equal(t, tt.wantWholesale, quote.Wholesale)
			assert.Equal(t, tt.quantity, quote.Quantity)
		})
	}
}

func TestQuotePriceRejectsNonPositiveQuantity(t *testing.T) {
	for _, quantity := range []int{0, -1, -100} {
		_, err := QuotePrice(dec("10.00"), nil, 20, quantity)
		assert.ErrorIs(t, err, ErrInvalidQuantity, "quantity %d", quantity)
	}
}

func TestProductQuoteUsesOwnPolicy(t *testing.T) {
	p := Product{
		UnitPrice:          dec("12.00"),
		WholesalePrice:     decPtr("9.50"),
		WholesaleThreshold: 15,
	}

	quote, err := p.Quote(16)
	require.NoError(t, err)
	assert.True(t, quote.Wholesale)
	assert.True(t, quote.Total.Equal(dec("152.00")))

	quote, err = p.Quote(15)
	require.NoError(t, err)
	assert.False(t, quote.Wholesale)
	assert.True(t, quote.Total.Equal(dec("180.00")))
}

func TestIsAvailable(t *testing.T) {
	assert.True(t, (&Product{Stock: 1, IsActive: true}).IsAvailable())
	assert.False(t, (&Product{Stock: 0, IsActive: true}).IsAvailable())
	assert.False(t, (&Product{Stock: 5, IsActive: false}).IsAvailable())
}
