package pricing

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-deprizza/errs"
	"pizza-deprizza/models"
)

func TestSizePriceScalesFromMedium(t *testing.T) {
	for _, item := range models.DefaultMenu() {
		for _, size := range models.Sizes {
			want := int64(math.Round(float64(item.Price) * float64(size.Pieces) / 8))
			assert.Equal(t, want, SizePrice(item.Price, size), "%s %s", item.Name, size.Key)
		}
	}

	large, ok := models.LookupSize(models.SizeLarge)
	require.True(t, ok)
	assert.Equal(t, int64(270), SizePrice(180, large))

	medium, _ := models.LookupSize(models.SizeMedium)
	assert.Equal(t, int64(180), SizePrice(180, medium))
}

func TestSizePriceRounds(t *testing.T) {
	small, _ := models.LookupSize(models.SizeSmall)
	// 215 * 6 / 8 = 161.25
	assert.Equal(t, int64(161), SizePrice(215, small))
	// 250 * 6 / 8 = 187.5
	assert.Equal(t, int64(188), SizePrice(250, small))
}

func TestUnitPriceAddsSurchargeAfterScaling(t *testing.T) {
	item := models.DefaultMenu()[0]
	family, _ := models.LookupSize(models.SizeFamily)

	assert.Equal(t, int64(360), UnitPrice(item, family, ""))
	assert.Equal(t, int64(390), UnitPrice(item, family, "mozzarella"))
}

func TestPerSlice(t *testing.T) {
	chica, _ := models.LookupSize(models.SizeSmall)
	assert.InDelta(t, 36.666666, PricePerSlice(220, chica), 0.0001)
	assert.Equal(t, "36.7", FormatPerSlice(220, chica))
	assert.Equal(t, "0.0", FormatPerSlice(220, models.SizeOption{}))
}

func TestSizeChoicesAndStartingPrice(t *testing.T) {
	item := models.DefaultMenu()[1] // 220
	choices := SizeChoices(item, "")
	require.Len(t, choices, 5)
	assert.Equal(t, int64(110), choices[0].Price)
	assert.Equal(t, "27.5", choices[0].PerSlice)
	assert.Equal(t, int64(440), choices[4].Price)
	assert.Equal(t, int64(110), StartingPrice(item))
	assert.Equal(t, "440.00", Money(choices[4].Price))
}

func TestDoubleCandidates(t *testing.T) {
	tests := []struct {
		name        string
		ingredients string
		want        []string
	}{
		{"margherita", "Salsa de tomate, mozzarella fresca, albahaca, aceite de oliva", []string{"mozzarella", "albahaca"}},
		{"case insensitive", "PEPPERONI, Jamón", []string{"pepperoni", "jamón"}},
		{"none", "Salsa de tomate, orégano", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DoubleCandidates(tt.ingredients))
		})
	}
}

func TestDoubleFlowRequiresSelection(t *testing.T) {
	flow := NewDoubleFlow(models.DefaultMenu()[3]) // hawaiana
	require.False(t, flow.Empty())

	_, err := flow.Confirm()
	assert.True(t, errors.Is(err, errs.ErrValidation))

	assert.Error(t, flow.Select("anchoas"))
	assert.Empty(t, flow.Selected())

	require.NoError(t, flow.Select("Piña"))
	require.NoError(t, flow.Select("jamón"))
	got, err := flow.Confirm()
	require.NoError(t, err)
	assert.Equal(t, "jamón", got)
}

func TestDoubleFlowEmpty(t *testing.T) {
	flow := NewDoubleFlow(models.MenuItem{Name: "Marinara", Ingredients: "Salsa de tomate, ajo, orégano"})
	assert.True(t, flow.Empty())

	_, err := flow.Confirm()
	require.Error(t, err)
	assert.Equal(t, NoDoubleCandidatesMessage, errs.Message(err))
}

func TestDoubleName(t *testing.T) {
	assert.Equal(t, "Meat Lovers (doble tocino)", DoubleName("Meat Lovers", "tocino"))
	assert.Equal(t, "Meat Lovers", DoubleName("Meat Lovers", ""))
}
