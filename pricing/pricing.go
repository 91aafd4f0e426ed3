// Package pricing implements size scaling and the double-portion add-on.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"

	"pizza-deprizza/models"
)

// DoubleSurcharge is added per unit, after size scaling, when one ingredient is doubled.
const DoubleSurcharge int64 = 30

// SizePrice scales a medium (8 piece) price proportionally to the piece count:
// round(base × pieces / 8).
func SizePrice(base int64, size models.SizeOption) int64 {
	return int64(math.Round(float64(base) * float64(size.Pieces) / models.BasePieces))
}

// UnitPrice is the price of one pizza of item at size, with the surcharge when
// an ingredient is doubled.
func UnitPrice(item models.MenuItem, size models.SizeOption, double string) int64 {
	p := SizePrice(item.Price, size)
	if double != "" {
		p += DoubleSurcharge
	}
	return p
}

// PricePerSlice keeps full precision; round only for display.
func PricePerSlice(price int64, size models.SizeOption) float64 {
	if size.Pieces == 0 {
		return 0
	}
	return float64(price) / float64(size.Pieces)
}

// FormatPerSlice renders the per-slice price with one decimal.
func FormatPerSlice(price int64, size models.SizeOption) string {
	if size.Pieces == 0 {
		return "0.0"
	}
	return decimal.NewFromInt(price).Div(decimal.NewFromInt(int64(size.Pieces))).StringFixed(1)
}

// StartingPrice is the cheapest size price, shown as "Desde $X" on menu cards.
func StartingPrice(item models.MenuItem) int64 {
	return SizePrice(item.Price, models.Sizes[0])
}

// Money renders an amount with two decimals, as on the cart and the ticket.
func Money(amount int64) string {
	return decimal.NewFromInt(amount).StringFixed(2)
}

// SizeChoice is one button of the size dialog.
type SizeChoice struct {
	Size     models.SizeOption
	Price    int64
	PerSlice string
}

// SizeChoices prices item in every canonical size.
func SizeChoices(item models.MenuItem, double string) []SizeChoice {
	out := make([]SizeChoice, 0, len(models.Sizes))
	for _, s := range models.Sizes {
		p := UnitPrice(item, s, double)
		out = append(out, SizeChoice{Size: s, Price: p, PerSlice: FormatPerSlice(p, s)})
	}
	return out
}
