package pricing

import (
	"fmt"
	"strings"

	"pizza-deprizza/errs"
	"pizza-deprizza/models"
)

// DoubleVocabulary is the set of ingredients that can be ordered as a double portion.
var DoubleVocabulary = []string{
	"mozzarella",
	"pepperoni",
	"jamón",
	"piña",
	"champiñones",
	"pimientos",
	"cebolla",
	"aceitunas",
	"albahaca",
	"salchicha",
	"tocino",
	"parmesano",
	"gorgonzola",
	"queso cabra",
	"queso feta",
	"queso vegano",
	"tomates cherry",
	"rúcula",
	"espinacas",
	"vegetales asados",
}

// NoDoubleCandidatesMessage is shown instead of the picker when nothing matches.
const NoDoubleCandidatesMessage = "Esta pizza no tiene ingredientes disponibles para doble porción"

// DoubleCandidates returns the vocabulary entries found in the item's
// ingredient text (case-insensitive substring match), in vocabulary order.
func DoubleCandidates(ingredients string) []string {
	text := strings.ToLower(ingredients)
	var out []string
	for _, name := range DoubleVocabulary {
		if strings.Contains(text, strings.ToLower(name)) {
			out = append(out, name)
		}
	}
	return out
}

// DoubleFlow is one run of the double-portion picker for a menu item.
type DoubleFlow struct {
	Item       models.MenuItem
	Candidates []string
	selected   string
}

// NewDoubleFlow starts a picker for item.
func NewDoubleFlow(item models.MenuItem) *DoubleFlow {
	return &DoubleFlow{Item: item, Candidates: DoubleCandidates(item.Ingredients)}
}

// Empty is true when the item offers nothing to double.
func (f *DoubleFlow) Empty() bool { return len(f.Candidates) == 0 }

// Select marks name as the doubled ingredient, replacing any earlier choice.
func (f *DoubleFlow) Select(name string) error {
	for _, c := range f.Candidates {
		if strings.EqualFold(c, name) {
			f.selected = c
			return nil
		}
	}
	return errs.Invalid("ingredient", "%q no es un ingrediente de %s", name, f.Item.Name)
}

// Selected returns the current choice, empty if none.
func (f *DoubleFlow) Selected() string { return f.selected }

// Confirm returns the chosen ingredient or a validation error when none was picked.
func (f *DoubleFlow) Confirm() (string, error) {
	if f.Empty() {
		return "", errs.Invalid("ingredient", NoDoubleCandidatesMessage)
	}
	if f.selected == "" {
		return "", errs.Invalid("ingredient", "Selecciona un ingrediente para duplicar")
	}
	return f.selected, nil
}

// DoubleName is the display name of a pizza with a doubled ingredient.
func DoubleName(name, ingredient string) string {
	if ingredient == "" {
		return name
	}
	return fmt.Sprintf("%s (doble %s)", name, ingredient)
}
