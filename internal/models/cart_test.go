package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bowlWithMods() MenuItem {
	return MenuItem{
		ID:          "bowl-1",
		Name:        "Grilled Chicken Bowl",
		Description: "Chicken over rice",
		Price:       12.50,
		Category:    CategoryEntrees,
		ModGroups: []ModificationGroup{
			{Name: "Spice Level", Options: []string{"Mild", "Medium", "Hot"}, Required: true},
			{Name: "Extras", Options: []string{"Avocado", "Fried Egg"}, MultiSelect: true},
		},
	}
}

func TestCartAddAndSubtotal(t *testing.T) {
	var cart Cart
	lemonade := MenuItem{ID: "drink-1", Name: "Lemonade", Description: "Fresh", Price: 3.50, Category: CategoryDrinks}

	require.NoError(t, cart.Add(lemonade, 2, nil))
	require.NoError(t, cart.Add(lemonade, 1, nil))

	// Same item and modifications coalesce into one line.
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.InDelta(t, 10.50, cart.Subtotal(), 1e-9)
}

func TestCartAddRejectsNonPositiveQuantity(t *testing.T) {
	var cart Cart
	item := MenuItem{ID: "x", Name: "X", Description: "x", Price: 1, Category: CategorySnacks}

	assert.Error(t, cart.Add(item, 0, nil))
	assert.Error(t, cart.Add(item, -2, nil))
	assert.True(t, cart.Empty())
}

func TestCartAdjustRemovesZeroQuantityLines(t *testing.T) {
	var cart Cart
	item := MenuItem{ID: "x", Name: "X", Description: "x", Price: 5, Category: CategorySnacks}
	require.NoError(t, cart.Add(item, 2, nil))

	require.NoError(t, cart.Adjust(0, -1))
	assert.Equal(t, 1, cart.Items[0].Quantity)

	require.NoError(t, cart.Adjust(0, -1))
	assert.True(t, cart.Empty())

	assert.Error(t, cart.Adjust(0, 1))
}

func TestCartModificationValidation(t *testing.T) {
	item := bowlWithMods()
	var cart Cart

	// Required group with no selection fails.
	err := cart.Add(item, 1, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Spice Level")

	// Unknown group fails.
	err = cart.Add(item, 1, map[string][]string{"Sauce": {"BBQ"}})
	assert.Error(t, err)

	// Unknown option fails.
	err = cart.Add(item, 1, map[string][]string{"Spice Level": {"Nuclear"}})
	assert.Error(t, err)

	// Multiple picks in a single-select group fail.
	err = cart.Add(item, 1, map[string][]string{"Spice Level": {"Mild", "Hot"}})
	assert.Error(t, err)

	// A valid selection passes, with multi-select extras allowed.
	err = cart.Add(item, 1, map[string][]string{
		"Spice Level": {"Medium"},
		"Extras":      {"Avocado", "Fried Egg"},
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
}

func TestCartSeparateLinesForDifferentModifications(t *testing.T) {
	item := bowlWithMods()
	var cart Cart

	require.NoError(t, cart.Add(item, 1, map[string][]string{"Spice Level": {"Mild"}}))
	require.NoError(t, cart.Add(item, 1, map[string][]string{"Spice Level": {"Hot"}}))

	assert.Len(t, cart.Items, 2)
	assert.InDelta(t, 25.00, cart.Subtotal(), 1e-9)
}
