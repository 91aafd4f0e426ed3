package models

// CartLine is one priced configuration in the customer cart. Lines with the same
// CartID are merged by incrementing Quantity.
type CartLine struct {
	CartID           string `json:"cartId"`
	ItemID           int64  `json:"id"`
	Name             string `json:"name"`
	Size             string `json:"size"`
	SizeLabel        string `json:"sizeLabel"`
	UnitPrice        int64  `json:"price"`
	Quantity         int    `json:"quantity"`
	DoubleIngredient string `json:"doubleIngredient,omitempty"`
	Description      string `json:"description,omitempty"`
}

// LineTotal is UnitPrice × Quantity.
func (l CartLine) LineTotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// IsCustom reports whether the line comes from the pizza builder.
func (l CartLine) IsCustom() bool {
	return l.Description != ""
}
