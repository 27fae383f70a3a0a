package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fooddash/internal/models"
)

func dish(id int, name string, price float64) models.MenuItem {
	return models.MenuItem{ID: id, Name: name, Price: price, Available: true}
}

func TestAddItemMergesSameDishAndInstructions(t *testing.T) {
	state := Empty()

	state, err := Apply(state, AddItem{Item: dish(1, "Paneer Tikka", 250), Quantity: 1})
	require.NoError(t, err)
	state, err = Apply(state, AddItem{Item: dish(1, "Paneer Tikka", 250), Quantity: 2})
	require.NoError(t, err)

	require.Len(t, state.Lines, 1)
	assert.Equal(t, 3, state.Lines[0].Quantity)
	assert.Equal(t, 3, state.TotalItems)
	assert.Equal(t, 750.0, state.TotalAmount)
}

func TestAddItemWithDifferentInstructionsCreatesSeparateLine(t *testing.T) {
	state := Empty()

	state, err := Apply(state, AddItem{Item: dish(1, "Paneer Tikka", 250), Quantity: 1})
	require.NoError(t, err)
	state, err = Apply(state, AddItem{Item: dish(1, "Paneer Tikka", 250), Quantity: 1, SpecialInstructions: "extra spicy"})
	require.NoError(t, err)

	require.Len(t, state.Lines, 2)
	assert.NotEqual(t, state.Lines[0].ID, state.Lines[1].ID)
	assert.Equal(t, 2, state.TotalItems)

	// A third add with the matching instructions merges into the second line
	state, err = Apply(state, AddItem{Item: dish(1, "Paneer Tikka", 250), Quantity: 1, SpecialInstructions: "extra spicy"})
	require.NoError(t, err)
	require.Len(t, state.Lines, 2)
	assert.Equal(t, 2, state.Lines[1].Quantity)
}

func TestSetQuantityZeroOrNegativeRemovesLine(t *testing.T) {
	state := Empty()
	state, err := Apply(state, AddItem{Item: dish(1, "Masala Dosa", 120), Quantity: 2})
	require.NoError(t, err)
	lineID := state.Lines[0].ID

	state, err = Apply(state, SetQuantity{LineID: lineID, Quantity: 0})
	require.NoError(t, err)
	assert.Empty(t, state.Lines)
	assert.Equal(t, 0, state.TotalItems)
	assert.Equal(t, 0.0, state.TotalAmount)

	state, err = Apply(state, AddItem{Item: dish(1, "Masala Dosa", 120), Quantity: 2})
	require.NoError(t, err)
	state, err = Apply(state, SetQuantity{LineID: state.Lines[0].ID, Quantity: -3})
	require.NoError(t, err)
	assert.Empty(t, state.Lines)
}

func TestSetQuantityReplacesAndRecomputesTotals(t *testing.T) {
	state := Empty()
	state, err := Apply(state, AddItem{Item: dish(1, "Biryani", 300), Quantity: 1})
	require.NoError(t, err)
	state, err = Apply(state, AddItem{Item: dish(2, "Lassi", 80), Quantity: 2})
	require.NoError(t, err)

	state, err = Apply(state, SetQuantity{LineID: state.Lines[0].ID, Quantity: 4})
	require.NoError(t, err)

	assert.Equal(t, 6, state.TotalItems)
	assert.Equal(t, 4*300.0+2*80.0, state.TotalAmount)
}

func TestSetInstructionsKeepsQuantityAndTotals(t *testing.T) {
	state := Empty()
	state, err := Apply(state, AddItem{Item: dish(1, "Biryani", 300), Quantity: 2})
	require.NoError(t, err)

	state, err = Apply(state, SetInstructions{LineID: state.Lines[0].ID, SpecialInstructions: "no onions"})
	require.NoError(t, err)

	assert.Equal(t, "no onions", state.Lines[0].SpecialInstructions)
	assert.Equal(t, 2, state.Lines[0].Quantity)
	assert.Equal(t, 600.0, state.TotalAmount)
}

func TestRemoveItemDropsWholeLine(t *testing.T) {
	state := Empty()
	state, err := Apply(state, AddItem{Item: dish(1, "Biryani", 300), Quantity: 5})
	require.NoError(t, err)
	state, err = Apply(state, AddItem{Item: dish(2, "Lassi", 80), Quantity: 1})
	require.NoError(t, err)

	state, err = Apply(state, RemoveItem{LineID: state.Lines[0].ID})
	require.NoError(t, err)

	require.Len(t, state.Lines, 1)
	assert.Equal(t, 2, state.Lines[0].MenuItemID)
	assert.Equal(t, 80.0, state.TotalAmount)
}

func TestActionsOnUnknownLineFail(t *testing.T) {
	state := Empty()
	state, err := Apply(state, AddItem{Item: dish(1, "Biryani", 300), Quantity: 1})
	require.NoError(t, err)

	_, err = Apply(state, SetQuantity{LineID: "missing", Quantity: 2})
	assert.ErrorIs(t, err, ErrLineNotFound)

	_, err = Apply(state, RemoveItem{LineID: "missing"})
	assert.ErrorIs(t, err, ErrLineNotFound)

	_, err = Apply(state, SetInstructions{LineID: "missing", SpecialInstructions: "x"})
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestFailedActionLeavesStateUntouched(t *testing.T) {
	state := Empty()
	state, err := Apply(state, AddItem{Item: dish(1, "Biryani", 300), Quantity: 2})
	require.NoError(t, err)

	next, err := Apply(state, SetQuantity{LineID: "missing", Quantity: 9})
	require.Error(t, err)
	assert.Equal(t, state, next)
}

func TestClearEmptiesCart(t *testing.T) {
	state := Empty()
	state, err := Apply(state, AddItem{Item: dish(1, "Biryani", 300), Quantity: 2})
	require.NoError(t, err)

	state, err = Apply(state, Clear{})
	require.NoError(t, err)

	assert.Empty(t, state.Lines)
	assert.Equal(t, 0, state.TotalItems)
	assert.Equal(t, 0.0, state.TotalAmount)
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	state := Empty()
	state, err := Apply(state, AddItem{Item: dish(1, "Biryani", 300)})
	require.NoError(t, err)

	require.Len(t, state.Lines, 1)
	assert.Equal(t, 1, state.Lines[0].Quantity)
}

func TestRecomputeNeverTrustsStoredTotals(t *testing.T) {
	// Simulates a snapshot whose persisted totals drifted from its lines
	state := State{
		Lines: []models.CartLine{
			{ID: "a", MenuItemID: 1, Price: 100, Quantity: 2},
		},
		TotalItems:  99,
		TotalAmount: 9999,
	}

	state = recompute(state)

	assert.Equal(t, 2, state.TotalItems)
	assert.Equal(t, 200.0, state.TotalAmount)
}
