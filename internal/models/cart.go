package models

// CartLine is one distinct cart entry: a dish plus its instructions variant.
// The same dish with different special instructions occupies a separate line.
type CartLine struct {
	ID                  string  `json:"id"`
	MenuItemID          int     `json:"menu_item_id"`
	Name                string  `json:"name"`
	Image               string  `json:"image"`
	Price               float64 `json:"price"`
	Quantity            int     `json:"quantity"`
	SpecialInstructions string  `json:"special_instructions,omitempty"`
}

// LineTotal returns the price contribution of this line
func (l CartLine) LineTotal() float64 {
	return l.Price * float64(l.Quantity)
}

// Matches reports whether another add targets this line: same dish and the
// same instructions string (both empty counts as equal).
func (l CartLine) Matches(menuItemID int, instructions string) bool {
	return l.MenuItemID == menuItemID && l.SpecialInstructions == instructions
}
