package cart

import (
	"errors"

	"github.com/google/uuid"

	"fooddash/internal/models"
)

// ErrLineNotFound is returned when an action targets a line that is not in the cart
var ErrLineNotFound = errors.New("cart line not found")

// State is a cart snapshot with totals kept consistent with its lines.
// Totals are always recomputed from the lines, never adjusted in place.
type State struct {
	Lines       []models.CartLine `json:"lines"`
	TotalItems  int               `json:"total_items"`
	TotalAmount float64           `json:"total_amount"`
}

// Empty returns a cart with no lines and zero totals
func Empty() State {
	return State{Lines: []models.CartLine{}}
}

// AddItem merges a dish into the cart. An existing line with the same dish
// and the same special instructions absorbs the quantity; otherwise a new
// line is appended.
type AddItem struct {
	Item                models.MenuItem
	Quantity            int
	SpecialInstructions string
}

// RemoveItem drops a line regardless of its quantity
type RemoveItem struct {
	LineID string
}

// SetQuantity replaces a line's quantity. A quantity of zero or less
// removes the line.
type SetQuantity struct {
	LineID   string
	Quantity int
}

// SetInstructions replaces a line's special instructions
type SetInstructions struct {
	LineID              string
	SpecialInstructions string
}

// Clear empties the cart
type Clear struct{}

// Action is one cart mutation
type Action interface {
	apply(State) (State, error)
}

// Apply runs an action against the cart and returns the next state with
// recomputed totals. The input state is never modified.
func Apply(state State, action Action) (State, error) {
	next, err := action.apply(state)
	if err != nil {
		return state, err
	}
	return recompute(next), nil
}

func (a AddItem) apply(state State) (State, error) {
	quantity := a.Quantity
	if quantity < 1 {
		quantity = 1
	}

	lines := cloneLines(state.Lines)
	for i := range lines {
		if lines[i].Matches(a.Item.ID, a.SpecialInstructions) {
			lines[i].Quantity += quantity
			return State{Lines: lines}, nil
		}
	}

	lines = append(lines, models.CartLine{
		ID:                  uuid.NewString(),
		MenuItemID:          a.Item.ID,
		Name:                a.Item.Name,
		Image:               a.Item.Image,
		Price:               a.Item.Price,
		Quantity:            quantity,
		SpecialInstructions: a.SpecialInstructions,
	})
	return State{Lines: lines}, nil
}

func (a RemoveItem) apply(state State) (State, error) {
	lines := cloneLines(state.Lines)
	for i := range lines {
		if lines[i].ID == a.LineID {
			return State{Lines: append(lines[:i], lines[i+1:]...)}, nil
		}
	}
	return state, ErrLineNotFound
}

func (a SetQuantity) apply(state State) (State, error) {
	if a.Quantity <= 0 {
		return RemoveItem{LineID: a.LineID}.apply(state)
	}

	lines := cloneLines(state.Lines)
	for i := range lines {
		if lines[i].ID == a.LineID {
			lines[i].Quantity = a.Quantity
			return State{Lines: lines}, nil
		}
	}
	return state, ErrLineNotFound
}

func (a SetInstructions) apply(state State) (State, error) {
	lines := cloneLines(state.Lines)
	for i := range lines {
		if lines[i].ID == a.LineID {
			lines[i].SpecialInstructions = a.SpecialInstructions
			return State{Lines: lines}, nil
		}
	}
	return state, ErrLineNotFound
}

func (a Clear) apply(State) (State, error) {
	return Empty(), nil
}

func recompute(state State) State {
	if state.Lines == nil {
		state.Lines = []models.CartLine{}
	}
	state.TotalItems = 0
	state.TotalAmount = 0
	for _, line := range state.Lines {
		state.TotalItems += line.Quantity
		state.TotalAmount += line.LineTotal()
	}
	return state
}

func cloneLines(lines []models.CartLine) []models.CartLine {
	cloned := make([]models.CartLine, len(lines))
	copy(cloned, lines)
	return cloned
}
