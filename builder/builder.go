// Package builder implements the custom pizza builder: four single-select axes
// plus a set of ingredients, each with a coverage and a quantity.
package builder

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"pizza-deprizza/errs"
	"pizza-deprizza/models"
)

// Coverage is how much of the pizza an ingredient covers.
type Coverage string

const (
	CoverageFull  Coverage = "full"
	CoverageLeft  Coverage = "left"
	CoverageRight Coverage = "right"
)

// Label is the Spanish annotation used in descriptions.
func (c Coverage) Label() string {
	switch c {
	case CoverageLeft:
		return "mitad izquierda"
	case CoverageRight:
		return "mitad derecha"
	default:
		return "completa"
	}
}

// Topping is an ingredient on the build.
type Topping struct {
	Coverage Coverage `validate:"oneof=full left right"`
	Quantity int      `validate:"min=1,max=3"`
}

// Build is the state of the builder.
type Build struct {
	Size        string             `validate:"required,pizza_size"`
	Dough       string             `validate:"required,pizza_dough"`
	Sauce       string             `validate:"required,pizza_sauce"`
	Cheese      string             `validate:"required,pizza_cheese"`
	Ingredients map[string]Topping `validate:"dive,keys,pizza_ingredient,endkeys"`
}

// DefaultBuild is the state the builder starts from and returns to after every
// pizza is added to the cart.
func DefaultBuild() Build {
	return Build{
		Size:        models.SizeMedium,
		Dough:       Doughs[0].Key,
		Sauce:       Sauces[0].Key,
		Cheese:      Cheeses[0].Key,
		Ingredients: map[string]Topping{},
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	axis := func(opts func() []Option) validator.Func {
		return func(fl validator.FieldLevel) bool {
			_, ok := lookup(opts(), fl.Field().String())
			return ok
		}
	}
	tags := map[string]validator.Func{
		"pizza_size":       axis(SizeOptions),
		"pizza_dough":      axis(func() []Option { return Doughs }),
		"pizza_sauce":      axis(func() []Option { return Sauces }),
		"pizza_cheese":     axis(func() []Option { return Cheeses }),
		"pizza_ingredient": axis(func() []Option { return Ingredients }),
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("builder: register %s validation: %v", tag, err))
		}
	}
	return v
}

// Validate checks every axis and ingredient against the option tables.
func (b Build) Validate() error {
	if err := validate.Struct(b); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return errs.Invalid(strings.ToLower(verrs[0].Field()), "valor no válido %v", verrs[0].Value())
		}
		return errs.Invalid("build", "%v", err)
	}
	return nil
}

// Price recomputes the total from scratch: size + dough + sauce + cheese +
// Σ unit price × quantity. Unknown keys contribute nothing.
func (b Build) Price() int64 {
	var total int64
	if o, ok := lookup(SizeOptions(), b.Size); ok {
		total += o.Price
	}
	if o, ok := lookup(Doughs, b.Dough); ok {
		total += o.Price
	}
	if o, ok := lookup(Sauces, b.Sauce); ok {
		total += o.Price
	}
	if o, ok := lookup(Cheeses, b.Cheese); ok {
		total += o.Price
	}
	for name, t := range b.Ingredients {
		if o, ok := lookup(Ingredients, name); ok {
			total += o.Price * int64(t.Quantity)
		}
	}
	return total
}

// Description is the human readable summary stored on the cart line.
func (b Build) Description() string {
	var sb strings.Builder
	size, _ := models.LookupSize(b.Size)
	fmt.Fprintf(&sb, "%s, masa %s, salsa %s, queso %s",
		size.Label, label(Doughs, b.Dough), label(Sauces, b.Sauce), label(Cheeses, b.Cheese))

	if len(b.Ingredients) == 0 {
		sb.WriteString(". Sin ingredientes extra")
		return sb.String()
	}

	names := make([]string, 0, len(b.Ingredients))
	for name := range b.Ingredients {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		t := b.Ingredients[name]
		p := label(Ingredients, name)
		if t.Quantity > 1 {
			p += fmt.Sprintf(" x%d", t.Quantity)
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", p, t.Coverage.Label()))
	}
	sb.WriteString(". Ingredientes: ")
	sb.WriteString(strings.Join(parts, ", "))
	return sb.String()
}

func (b Build) clone() Build {
	out := b
	out.Ingredients = make(map[string]Topping, len(b.Ingredients))
	for k, v := range b.Ingredients {
		out.Ingredients[k] = v
	}
	return out
}

func label(opts []Option, key string) string {
	if o, ok := lookup(opts, key); ok {
		return o.Label
	}
	return key
}

// CustomName is the display name of every builder pizza.
const CustomName = "Pizza Personalizada"

// Builder owns one Build and notifies after every change.
type Builder struct {
	mu       sync.Mutex
	build    Build
	newID    func() string
	onChange func(Build, int64)
}

// New returns a builder in the default state.
func New() *Builder {
	return &Builder{build: DefaultBuild(), newID: uuid.NewString}
}

// SetChangeCallback sets the function called with the new state and price.
func (b *Builder) SetChangeCallback(fn func(Build, int64)) {
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

// State returns a copy of the current build.
func (b *Builder) State() Build {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.build.clone()
}

// Price is the price of the current build.
func (b *Builder) Price() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.build.Price()
}

// SetSize picks one of the canonical sizes by key.
func (b *Builder) SetSize(key string) error {
	return b.setAxis("size", SizeOptions(), key, func(bd *Build) { bd.Size = key })
}

// SetDough picks the dough from Doughs.
func (b *Builder) SetDough(key string) error {
	return b.setAxis("dough", Doughs, key, func(bd *Build) { bd.Dough = key })
}

// SetSauce picks the sauce from Sauces.
func (b *Builder) SetSauce(key string) error {
	return b.setAxis("sauce", Sauces, key, func(bd *Build) { bd.Sauce = key })
}

// SetCheese picks the cheese from Cheeses.
func (b *Builder) SetCheese(key string) error {
	return b.setAxis("cheese", Cheeses, key, func(bd *Build) { bd.Cheese = key })
}

func (b *Builder) setAxis(field string, opts []Option, key string, set func(*Build)) error {
	if _, ok := lookup(opts, key); !ok {
		return errs.Invalid(field, "opción desconocida %q", key)
	}
	return b.mutate(func(bd *Build) error {
		set(bd)
		return nil
	})
}

// AddIngredient puts name on the pizza with the given coverage. An ingredient
// already present keeps its quantity and only changes coverage.
func (b *Builder) AddIngredient(name string, cov Coverage) error {
	if err := checkIngredient(name, cov); err != nil {
		return err
	}
	return b.mutate(func(bd *Build) error {
		t, ok := bd.Ingredients[name]
		if !ok {
			t.Quantity = 1
		}
		t.Coverage = cov
		bd.Ingredients[name] = t
		return nil
	})
}

// SetCoverage changes the coverage of an ingredient already on the pizza.
func (b *Builder) SetCoverage(name string, cov Coverage) error {
	if err := checkIngredient(name, cov); err != nil {
		return err
	}
	return b.mutate(func(bd *Build) error {
		t, ok := bd.Ingredients[name]
		if !ok {
			return errs.Invalid("ingredient", "%s no está en la pizza", name)
		}
		t.Coverage = cov
		bd.Ingredients[name] = t
		return nil
	})
}

// IncrementIngredient adds one unit, adding the ingredient with full coverage
// when it is absent.
func (b *Builder) IncrementIngredient(name string) error {
	if err := checkIngredient(name, CoverageFull); err != nil {
		return err
	}
	return b.mutate(func(bd *Build) error {
		t, ok := bd.Ingredients[name]
		if !ok {
			bd.Ingredients[name] = Topping{Coverage: CoverageFull, Quantity: 1}
			return nil
		}
		if t.Quantity >= MaxIngredientQuantity {
			return errs.Invalid("quantity", "máximo %d porciones de %s", MaxIngredientQuantity, name)
		}
		t.Quantity++
		bd.Ingredients[name] = t
		return nil
	})
}

// DecrementIngredient removes one unit; removing the last unit removes the ingredient.
func (b *Builder) DecrementIngredient(name string) error {
	return b.mutate(func(bd *Build) error {
		t, ok := bd.Ingredients[name]
		if !ok {
			return errs.Invalid("ingredient", "%s no está en la pizza", name)
		}
		t.Quantity--
		if t.Quantity <= 0 {
			delete(bd.Ingredients, name)
			return nil
		}
		bd.Ingredients[name] = t
		return nil
	})
}

// RemoveIngredient takes an ingredient off regardless of its quantity.
func (b *Builder) RemoveIngredient(name string) error {
	return b.mutate(func(bd *Build) error {
		if _, ok := bd.Ingredients[name]; !ok {
			return errs.Invalid("ingredient", "%s no está en la pizza", name)
		}
		delete(bd.Ingredients, name)
		return nil
	})
}

// Reset returns to the default build.
func (b *Builder) Reset() {
	_ = b.mutate(func(bd *Build) error {
		*bd = DefaultBuild()
		return nil
	})
}

// Materialize turns the current build into a cart line with a fresh identity
// and resets the builder.
func (b *Builder) Materialize() (models.CartLine, error) {
	b.mu.Lock()
	bd := b.build.clone()
	if err := bd.Validate(); err != nil {
		b.mu.Unlock()
		return models.CartLine{}, err
	}
	size, _ := models.LookupSize(bd.Size)
	line := models.CartLine{
		CartID:      "custom-" + b.newID(),
		Name:        CustomName,
		Size:        size.Key,
		SizeLabel:   size.Label,
		UnitPrice:   bd.Price(),
		Quantity:    1,
		Description: bd.Description(),
	}
	b.build = DefaultBuild()
	state, fn := b.build.clone(), b.onChange
	b.mu.Unlock()

	if fn != nil {
		fn(state, state.Price())
	}
	return line, nil
}

// mutate applies fn to a copy and commits it only when fn succeeds.
func (b *Builder) mutate(fn func(*Build) error) error {
	b.mu.Lock()
	next := b.build.clone()
	if err := fn(&next); err != nil {
		b.mu.Unlock()
		return err
	}
	b.build = next
	state, cb := next.clone(), b.onChange
	b.mu.Unlock()

	if cb != nil {
		cb(state, state.Price())
	}
	return nil
}

func checkIngredient(name string, cov Coverage) error {
	if _, ok := lookup(Ingredients, name); !ok {
		return errs.Invalid("ingredient", "ingrediente desconocido %q", name)
	}
	switch cov {
	case CoverageFull, CoverageLeft, CoverageRight:
		return nil
	}
	return errs.Invalid("coverage", "cobertura desconocida %q", cov)
}
