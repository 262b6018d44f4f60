package models

import "fmt"

// CartItem is one line of an in-progress cart: a snapshot of the menu item,
// a positive quantity, and the options picked per modification group.
type CartItem struct {
	Item          MenuItem            `json:"item"`
	Quantity      int                 `json:"quantity"`
	Modifications map[string][]string `json:"modifications,omitempty"`
}

// Cart accumulates a customer's selections before checkout. It lives only in
// the customer's session and is discarded once the order is placed.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Add merges qty of the item into the cart. Lines with identical item id and
// modification selections are coalesced.
func (c *Cart) Add(item MenuItem, qty int, mods map[string][]string) error {
	if qty <= 0 {
		return &ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	if err := validateModifications(item, mods); err != nil {
		return err
	}
	for i := range c.Items {
		if c.Items[i].Item.ID == item.ID && sameModifications(c.Items[i].Modifications, mods) {
			c.Items[i].Quantity += qty
			return nil
		}
	}
	c.Items = append(c.Items, CartItem{Item: item, Quantity: qty, Modifications: mods})
	return nil
}

// Adjust changes the quantity of the line at index i by delta. Lines that
// reach zero are removed immediately.
func (c *Cart) Adjust(i, delta int) error {
	if i < 0 || i >= len(c.Items) {
		return &ValidationError{Field: "index", Reason: "no such cart line"}
	}
	c.Items[i].Quantity += delta
	if c.Items[i].Quantity <= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
	return nil
}

// Subtotal is the sum of unit price times quantity over all lines.
func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, line := range c.Items {
		sum += line.Item.Price * float64(line.Quantity)
	}
	return sum
}

// Empty reports whether the cart holds no lines.
func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}

// Clear drops every line.
func (c *Cart) Clear() {
	c.Items = nil
}

// validateModifications checks the picked options against the item's
// modification groups: required groups need at least one pick, single-select
// groups allow at most one, and every picked option must exist in its group.
func validateModifications(item MenuItem, mods map[string][]string) error {
	for name, picks := range mods {
		group, ok := item.ModGroup(name)
		if !ok {
			return &ValidationError{Field: "modifications", Reason: fmt.Sprintf("item %q has no group %q", item.Name, name)}
		}
		if !group.MultiSelect && len(picks) > 1 {
			return &ValidationError{Field: "modifications", Reason: fmt.Sprintf("group %q allows one option", name)}
		}
		for _, pick := range picks {
			if !containsOption(group.Options, pick) {
				return &ValidationError{Field: "modifications", Reason: fmt.Sprintf("group %q has no option %q", name, pick)}
			}
		}
	}
	for _, group := range item.ModGroups {
		if group.Required && len(mods[group.Name]) == 0 {
			return &ValidationError{Field: "modifications", Reason: fmt.Sprintf("group %q requires a selection", group.Name)}
		}
	}
	return nil
}

func containsOption(options []string, want string) bool {
	for _, opt := range options {
		if opt == want {
			return true
		}
	}
	return false
}

func sameModifications(a, b map[string][]string) bool {
	if len(a) != len(b) {
		return false
	}
	for name, picksA := range a {
		picksB, ok := b[name]
		if !ok || len(picksA) != len(picksB) {
			return false
		}
		for i := range picksA {
			if picksA[i] != picksB[i] {
				return false
			}
		}
	}
	return true
}
