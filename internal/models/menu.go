package models

import "fmt"

// MenuItem represents a dish on the menu. Orders capture copies of the fields
// they need, so editing or deleting an item never rewrites order history.
type MenuItem struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Price       float64             `json:"price"`
	Category    MenuCategory        `json:"category"`
	Image       string              `json:"image,omitempty"`
	Vegetarian  bool                `json:"isVegetarian,omitempty"`
	Spicy       bool                `json:"isSpicy,omitempty"`
	Popular     bool                `json:"isPopular,omitempty"`
	Calories    int                 `json:"calories,omitempty"`
	Protein     string              `json:"protein,omitempty"`
	Fats        string              `json:"fats,omitempty"`
	Carbs       string              `json:"carbs,omitempty"`
	Sugar       string              `json:"sugar,omitempty"`
	Ingredients []string            `json:"ingredients,omitempty"`
	Allergens   []string            `json:"allergens,omitempty"`
	ModGroups   []ModificationGroup `json:"modificationGroups,omitempty"`
}

// ModificationGroup is a named set of customization options attached to a
// menu item, e.g. spice level or choice of side.
type ModificationGroup struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Options     []string `json:"options"`
	Required    bool     `json:"required"`
	MultiSelect bool     `json:"multiSelect"`
}

// MenuCategory represents the category of a menu item
type MenuCategory string

const (
	CategoryEntrees   MenuCategory = "Entrees"
	CategoryGrabAndGo MenuCategory = "Grab & Go"
	CategoryDrinks    MenuCategory = "Drinks"
	CategorySnacks    MenuCategory = "Snacks"
	CategoryExtras    MenuCategory = "Extras"
)

// Categories lists every valid menu category.
func Categories() []MenuCategory {
	return []MenuCategory{
		CategoryEntrees,
		CategoryGrabAndGo,
		CategoryDrinks,
		CategorySnacks,
		CategoryExtras,
	}
}

// ValidCategory reports whether c is one of the fixed menu categories.
func ValidCategory(c MenuCategory) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Validate checks the required fields of a menu item before it reaches the
// catalog. It returns a *ValidationError describing the first problem found.
func (m *MenuItem) Validate() error {
	if m.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if m.Description == "" {
		return &ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if m.Price < 0 {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if !ValidCategory(m.Category) {
		return &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", m.Category)}
	}
	for _, g := range m.ModGroups {
		if g.Name == "" {
			return &ValidationError{Field: "modificationGroups", Reason: "group name must not be empty"}
		}
		if len(g.Options) == 0 {
			return &ValidationError{Field: "modificationGroups", Reason: fmt.Sprintf("group %q has no options", g.Name)}
		}
		for _, opt := range g.Options {
			if opt == "" {
				return &ValidationError{Field: "modificationGroups", Reason: fmt.Sprintf("group %q has an empty option label", g.Name)}
			}
		}
	}
	return nil
}

// ModGroup returns the modification group with the given name, if any.
func (m *MenuItem) ModGroup(name string) (ModificationGroup, bool) {
	for _, g := range m.ModGroups {
		if g.Name == name {
			return g, true
		}
	}
	return ModificationGroup{}, false
}

// ValidationError reports a malformed field on input crossing the store
// boundary.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
