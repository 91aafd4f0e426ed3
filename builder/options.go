package builder

import (
	"pizza-deprizza/models"
	"pizza-deprizza/pricing"
)

// Option is one choice of a single-select axis with its price delta.
type Option struct {
	Key   string
	Label string
	Price int64
}

// CustomBasePrice is the medium price of a custom pizza before any extras.
const CustomBasePrice int64 = 180

// MaxIngredientQuantity caps the units of a single ingredient.
const MaxIngredientQuantity = 3

// Doughs, Sauces and Cheeses list the axis choices in display order; the first
// entry of each is the default and costs nothing.
var (
	Doughs = []Option{
		{Key: "tradicional", Label: "Tradicional", Price: 0},
		{Key: "delgada", Label: "Delgada", Price: 0},
		{Key: "integral", Label: "Integral", Price: 15},
		{Key: "sin-gluten", Label: "Sin gluten", Price: 30},
		{Key: "orilla-rellena", Label: "Orilla rellena", Price: 40},
	}
	Sauces = []Option{
		{Key: "tomate", Label: "Tomate", Price: 0},
		{Key: "blanca", Label: "Blanca", Price: 10},
		{Key: "bbq", Label: "BBQ", Price: 10},
		{Key: "pesto", Label: "Pesto", Price: 20},
	}
	Cheeses = []Option{
		{Key: "mozzarella", Label: "Mozzarella", Price: 0},
		{Key: "cheddar", Label: "Cheddar", Price: 15},
		{Key: "vegano", Label: "Queso vegano", Price: 25},
		{Key: "cuatro-quesos", Label: "Cuatro quesos", Price: 35},
		{Key: "sin-queso", Label: "Sin queso", Price: 0},
	}
)

// Ingredients are the toppings of the builder with their unit price.
var Ingredients = []Option{
	{Key: "pepperoni", Label: "Pepperoni", Price: 20},
	{Key: "jamón", Label: "Jamón", Price: 18},
	{Key: "salchicha", Label: "Salchicha", Price: 20},
	{Key: "tocino", Label: "Tocino", Price: 25},
	{Key: "champiñones", Label: "Champiñones", Price: 15},
	{Key: "pimientos", Label: "Pimientos", Price: 12},
	{Key: "cebolla", Label: "Cebolla", Price: 10},
	{Key: "aceitunas", Label: "Aceitunas", Price: 15},
	{Key: "piña", Label: "Piña", Price: 15},
	{Key: "albahaca", Label: "Albahaca", Price: 8},
	{Key: "espinacas", Label: "Espinacas", Price: 12},
	{Key: "tomates cherry", Label: "Tomates cherry", Price: 15},
	{Key: "rúcula", Label: "Rúcula", Price: 15},
	{Key: "queso feta", Label: "Queso feta", Price: 25},
}

// SizeOptions prices the canonical sizes for a custom pizza.
func SizeOptions() []Option {
	out := make([]Option, 0, len(models.Sizes))
	for _, s := range models.Sizes {
		out = append(out, Option{Key: s.Key, Label: s.Label, Price: pricing.SizePrice(CustomBasePrice, s)})
	}
	return out
}

func lookup(opts []Option, key string) (Option, bool) {
	for _, o := range opts {
		if o.Key == key {
			return o, true
		}
	}
	return Option{}, false
}
