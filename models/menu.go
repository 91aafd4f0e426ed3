package models

// MenuCategory groups pizzas on the storefront filter bar
type MenuCategory string

const (
	CategoryClassic MenuCategory = "clasica"
	CategoryPremium MenuCategory = "premium"
	CategoryVeggie  MenuCategory = "veggie"
)

// MenuItem is a pizza of the catalog. Price is the medium (8 piece) price.
type MenuItem struct {
	ID          int64        `json:"id" gorm:"primaryKey"`
	Name        string       `json:"name" gorm:"not null"`
	Category    MenuCategory `json:"category" gorm:"not null"`
	Emoji       string       `json:"emoji"`
	Ingredients string       `json:"ingredients"`
	Price       int64        `json:"price" gorm:"not null"`
	TimeRange   string       `json:"time"`
	Available   bool         `json:"available" gorm:"default:true"`
}

func (MenuItem) TableName() string { return "pizzas" }

// SizeOption is one of the selectable pizza sizes.
type SizeOption struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Pieces int    `json:"pieces"`
}

// BasePieces is the piece count the menu price refers to.
const BasePieces = 8

const (
	SizeIndividual = "individual"
	SizeSmall      = "chica"
	SizeMedium     = "mediana"
	SizeLarge      = "grande"
	SizeFamily     = "familiar"
)

// Sizes lists the canonical sizes from smallest to largest.
var Sizes = []SizeOption{
	{Key: SizeIndividual, Label: "Individual (4 pz)", Pieces: 4},
	{Key: SizeSmall, Label: "Chica (6 pz)", Pieces: 6},
	{Key: SizeMedium, Label: "Mediana (8 pz)", Pieces: 8},
	{Key: SizeLarge, Label: "Grande (12 pz)", Pieces: 12},
	{Key: SizeFamily, Label: "Familiar (16 pz)", Pieces: 16},
}

// LookupSize returns the size option for key.
func LookupSize(key string) (SizeOption, bool) {
	for _, s := range Sizes {
		if s.Key == key {
			return s, true
		}
	}
	return SizeOption{}, false
}

// DefaultMenu is the built-in catalog. It is also the offline fallback of the
// storefront and the seed of the backend.
func DefaultMenu() []MenuItem {
	return []MenuItem{
		{ID: 1, Name: "Margherita Clásica", Category: CategoryClassic, Emoji: "🍕", Price: 180, Ingredients: "Salsa de tomate, mozzarella fresca, albahaca, aceite de oliva", TimeRange: "15-20 min", Available: true},
		{ID: 2, Name: "Pepperoni Supreme", Category: CategoryClassic, Emoji: "🍕", Price: 220, Ingredients: "Salsa de tomate, mozzarella, pepperoni extra, orégano", TimeRange: "18-23 min", Available: true},
		{ID: 3, Name: "Cuatro Quesos", Category: CategoryPremium, Emoji: "🧀", Price: 280, Ingredients: "Salsa blanca, mozzarella, parmesano, gorgonzola, queso cabra", TimeRange: "20-25 min", Available: true},
		{ID: 4, Name: "Hawaiana Tropical", Category: CategoryClassic, Emoji: "🍍", Price: 240, Ingredients: "Salsa de tomate, mozzarella, jamón, piña natural", TimeRange: "16-21 min", Available: true},
		{ID: 5, Name: "Vegetariana Garden", Category: CategoryVeggie, Emoji: "🥬", Price: 200, Ingredients: "Salsa de tomate, mozzarella, pimientos, champiñones, cebolla, aceitunas", TimeRange: "17-22 min", Available: true},
		{ID: 6, Name: "Meat Lovers", Category: CategoryPremium, Emoji: "🥩", Price: 320, Ingredients: "Salsa BBQ, mozzarella, pepperoni, salchicha, jamón, tocino", TimeRange: "22-27 min", Available: true},
		{ID: 7, Name: "Mediterránea", Category: CategoryPremium, Emoji: "🫒", Price: 300, Ingredients: "Salsa pesto, mozzarella, tomates cherry, aceitunas, rúcula, queso feta", TimeRange: "19-24 min", Available: true},
		{ID: 8, Name: "Vegana Delight", Category: CategoryVeggie, Emoji: "🌱", Price: 250, Ingredients: "Salsa de tomate, queso vegano, vegetales asados, espinacas", TimeRange: "20-25 min", Available: true},
	}
}
