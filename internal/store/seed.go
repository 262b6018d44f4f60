package store

import "tableside/internal/models"

// SeedMenu loads the default catalog into an empty store. The demo ships a
// small menu across all five categories so the portals have something to
// show before the admin edits anything.
func (s *Store) SeedMenu() error {
	for _, item := range defaultMenu() {
		if _, err := s.AddMenuItem(item); err != nil {
			return err
		}
	}
	return nil
}

func defaultMenu() []models.MenuItem {
	return []models.MenuItem{
		{
			Name:        "Grilled Chicken Bowl",
			Description: "Char-grilled chicken over jasmine rice with seasonal vegetables.",
			Price:       12.50,
			Category:    models.CategoryEntrees,
			Image:       "/images/chicken-bowl.jpg",
			Popular:     true,
			Calories:    640,
			Protein:     "42g",
			Ingredients: []string{"chicken breast", "jasmine rice", "broccoli", "carrots", "teriyaki glaze"},
			Allergens:   []string{"soy", "sesame"},
			ModGroups: []models.ModificationGroup{
				{
					Name:        "Spice Level",
					Options:     []string{"Mild", "Medium", "Hot"},
					Required:    true,
					MultiSelect: false,
				},
				{
					Name:        "Extras",
					Options:     []string{"Extra Chicken", "Avocado", "Fried Egg"},
					MultiSelect: true,
				},
			},
		},
		{
			Name:        "Spicy Tofu Curry",
			Description: "Crispy tofu in a red coconut curry with steamed rice.",
			Price:       11.00,
			Category:    models.CategoryEntrees,
			Image:       "/images/tofu-curry.jpg",
			Vegetarian:  true,
			Spicy:       true,
			Calories:    580,
			Ingredients: []string{"tofu", "coconut milk", "red curry paste", "rice"},
			Allergens:   []string{"soy"},
		},
		{
			Name:        "Caprese Wrap",
			Description: "Mozzarella, tomato, and basil pesto in a toasted tortilla.",
			Price:       8.50,
			Category:    models.CategoryGrabAndGo,
			Image:       "/images/caprese-wrap.jpg",
			Vegetarian:  true,
			Allergens:   []string{"dairy", "gluten"},
		},
		{
			Name:        "Fresh Lemonade",
			Description: "Squeezed to order with mint.",
			Price:       3.50,
			Category:    models.CategoryDrinks,
			Image:       "/images/lemonade.jpg",
			Vegetarian:  true,
		},
		{
			Name:        "Sparkling Water",
			Description: "Chilled bottle, lightly carbonated.",
			Price:       2.50,
			Category:    models.CategoryDrinks,
			Image:       "/images/sparkling-water.jpg",
			Vegetarian:  true,
		},
		{
			Name:        "Sweet Potato Fries",
			Description: "Crispy fries with chipotle aioli.",
			Price:       5.00,
			Category:    models.CategorySnacks,
			Image:       "/images/sp-fries.jpg",
			Vegetarian:  true,
			Popular:     true,
			Allergens:   []string{"egg"},
		},
		{
			Name:        "Side of Aioli",
			Description: "House chipotle aioli.",
			Price:       1.00,
			Category:    models.CategoryExtras,
			Image:       "/images/aioli.jpg",
			Vegetarian:  true,
			Allergens:   []string{"egg"},
		},
	}
}
