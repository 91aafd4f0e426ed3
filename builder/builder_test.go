package builder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-deprizza/errs"
	"pizza-deprizza/models"
)

func TestDefaultBuildPricesToMediumBase(t *testing.T) {
	b := New()
	assert.Equal(t, int64(180), b.Price())
	assert.NoError(t, b.State().Validate())
}

func TestAxisSelectionReplacesPreviousChoice(t *testing.T) {
	b := New()
	require.NoError(t, b.SetDough("integral"))
	require.NoError(t, b.SetDough("sin-gluten"))
	require.NoError(t, b.SetSauce("pesto"))
	require.NoError(t, b.SetCheese("cheddar"))
	require.NoError(t, b.SetSize(models.SizeLarge))

	st := b.State()
	assert.Equal(t, "sin-gluten", st.Dough)
	// 270 + 30 + 20 + 15
	assert.Equal(t, int64(335), b.Price())
}

func TestUnknownAxisValueDoesNotMutate(t *testing.T) {
	b := New()
	err := b.SetSauce("chocolate")
	assert.True(t, errors.Is(err, errs.ErrValidation))
	assert.Equal(t, "tomate", b.State().Sauce)

	assert.Error(t, b.SetSize("gigante"))
	assert.Equal(t, models.SizeMedium, b.State().Size)
}

func TestIngredientQuantityAndCoverage(t *testing.T) {
	b := New()
	require.NoError(t, b.AddIngredient("pepperoni", CoverageLeft))
	require.NoError(t, b.IncrementIngredient("pepperoni"))
	require.NoError(t, b.IncrementIngredient("champiñones"))

	st := b.State()
	assert.Equal(t, Topping{Coverage: CoverageLeft, Quantity: 2}, st.Ingredients["pepperoni"])
	assert.Equal(t, Topping{Coverage: CoverageFull, Quantity: 1}, st.Ingredients["champiñones"])
	assert.Equal(t, int64(180+2*20+15), b.Price())

	require.NoError(t, b.AddIngredient("pepperoni", CoverageRight))
	assert.Equal(t, 2, b.State().Ingredients["pepperoni"].Quantity)
	assert.Equal(t, CoverageRight, b.State().Ingredients["pepperoni"].Coverage)

	require.NoError(t, b.IncrementIngredient("pepperoni"))
	assert.Error(t, b.IncrementIngredient("pepperoni"))
	assert.Equal(t, MaxIngredientQuantity, b.State().Ingredients["pepperoni"].Quantity)
}

func TestDecrementLastUnitRemovesEntry(t *testing.T) {
	b := New()
	require.NoError(t, b.IncrementIngredient("aceitunas"))
	require.NoError(t, b.IncrementIngredient("aceitunas"))
	require.NoError(t, b.DecrementIngredient("aceitunas"))
	_, present := b.State().Ingredients["aceitunas"]
	assert.True(t, present)

	require.NoError(t, b.DecrementIngredient("aceitunas"))
	_, present = b.State().Ingredients["aceitunas"]
	assert.False(t, present)
	assert.Error(t, b.DecrementIngredient("aceitunas"))
	assert.Equal(t, int64(180), b.Price())
}

func TestInvalidIngredientInput(t *testing.T) {
	b := New()
	assert.Error(t, b.AddIngredient("anchoas", CoverageFull))
	assert.Error(t, b.AddIngredient("pepperoni", Coverage("center")))
	assert.Error(t, b.SetCoverage("pepperoni", CoverageLeft))
	assert.Error(t, b.RemoveIngredient("pepperoni"))
	assert.Empty(t, b.State().Ingredients)
}

func TestPriceIsIdempotent(t *testing.T) {
	b := New()
	require.NoError(t, b.AddIngredient("tocino", CoverageFull))
	require.NoError(t, b.SetCheese("cuatro-quesos"))
	first := b.Price()
	assert.Equal(t, first, b.Price())
	assert.Equal(t, first, b.State().Price())
}

func TestMaterializeResetsBuild(t *testing.T) {
	b := New()
	ids := []string{"a", "b"}
	b.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	var lastPrice int64 = -1
	b.SetChangeCallback(func(_ Build, price int64) { lastPrice = price })

	require.NoError(t, b.SetSize(models.SizeFamily))
	require.NoError(t, b.AddIngredient("pepperoni", CoverageLeft))
	require.NoError(t, b.IncrementIngredient("pepperoni"))
	require.NoError(t, b.AddIngredient("piña", CoverageRight))

	line, err := b.Materialize()
	require.NoError(t, err)
	assert.Equal(t, "custom-a", line.CartID)
	assert.Equal(t, CustomName, line.Name)
	assert.Equal(t, models.SizeFamily, line.Size)
	assert.Equal(t, "Familiar (16 pz)", line.SizeLabel)
	assert.Equal(t, int64(360+40+15), line.UnitPrice)
	assert.Equal(t,
		"Familiar (16 pz), masa Tradicional, salsa Tomate, queso Mozzarella. Ingredientes: Pepperoni x2 (mitad izquierda), Piña (mitad derecha)",
		line.Description)
	assert.True(t, line.IsCustom())

	assert.Equal(t, DefaultBuild(), b.State())
	assert.Equal(t, int64(180), lastPrice)

	again, err := b.Materialize()
	require.NoError(t, err)
	assert.Equal(t, "custom-b", again.CartID)
	assert.Contains(t, again.Description, "Sin ingredientes extra")
}

func TestValidateRejectsUnknownIngredientKey(t *testing.T) {
	bd := DefaultBuild()
	bd.Ingredients["anchoas"] = Topping{Coverage: CoverageFull, Quantity: 1}
	assert.True(t, errors.Is(bd.Validate(), errs.ErrValidation))

	bd = DefaultBuild()
	bd.Ingredients["pepperoni"] = Topping{Coverage: CoverageFull, Quantity: 0}
	assert.Error(t, bd.Validate())
}

func TestValidateChecksEveryAxisTag(t *testing.T) {
	tests := []struct {
		field string
		set   func(*Build)
	}{
		{"size", func(b *Build) { b.Size = "gigante" }},
		{"dough", func(b *Build) { b.Dough = "pan" }},
		{"sauce", func(b *Build) { b.Sauce = "mole" }},
		{"cheese", func(b *Build) { b.Cheese = "gouda" }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			bd := DefaultBuild()
			tt.set(&bd)
			err := bd.Validate()
			var ve *errs.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}
