package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// DefaultWholesaleThreshold is the quantity above which the wholesale
// price applies when a product does not configure its own threshold.
const DefaultWholesaleThreshold = 20

var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// PriceQuote is the result of applying the pricing policy to a quantity
type PriceQuote struct {
	UnitPrice decimal.Decimal `json:"unit_price_applied"`
	Total     decimal.Decimal `json:"total"`
	Quantity  int             `json:"quantity"`
	Wholesale bool            `json:"wholesale"`
}

// QuotePrice applies the tiered pricing policy: the wholesale price, when
// configured, applies only to quantities strictly above the threshold;
// otherwise the base unit price applies.
//
// Totals are rounded to 2 decimal places, half-up (decimal.Round is
// round-half-away-from-zero, which is half-up for non-negative money).
// The function is pure; it reads nothing and writes nothing.
func QuotePrice(unitPrice decimal.Decimal, wholesalePrice *decimal.Decimal, threshold, quantity int) (PriceQuote, error) {
	if quantity <= 0 {
		return PriceQuote{}, ErrInvalidQuantity
	}

	applied := unitPrice
	wholesale := false
	if wholesalePrice != nil && quantity > threshold {
		applied = *wholesalePrice
		wholesale = true
	}

	total := applied.Mul(decimal.NewFromInt(int64(quantity))).Round(2)

	return PriceQuote{
		UnitPrice: applied,
		Total:     total,
		Quantity:  quantity,
		Wholesale: wholesale,
	}, nil
}
