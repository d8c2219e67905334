// Package menu holds the static café catalog. It is compiled in, loaded once,
// and never mutated at runtime.
package menu

// Item is a single sellable catalog entry.
type Item struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// Menu groups items into the nested structure the browser client and the
// conversational agent consume.
type Menu struct {
	Drinks         map[string][]Item `json:"drinks"`
	Food           map[string][]Item `json:"food"`
	Customizations map[string][]Item `json:"customizations"`
}

// Catalog is the full menu.
var Catalog = Menu{
	Drinks: map[string][]Item{
		"espresso": {
			{ID: "espresso", Name: "Espresso", Price: 3.0, Description: "Single shot of espresso"},
			{ID: "double-espresso", Name: "Double Espresso", Price: 4.0, Description: "Double shot of espresso"},
			{ID: "americano", Name: "Americano", Price: 3.5, Description: "Espresso with hot water"},
			{ID: "cappuccino", Name: "Cappuccino", Price: 4.5, Description: "Espresso with steamed milk and foam"},
			{ID: "latte", Name: "Latte", Price: 5.0, Description: "Espresso with steamed milk"},
			{ID: "cortado", Name: "Binary Brew (Cortado)", Price: 4.5, Description: "Our signature perfectly balanced cortado"},
			{ID: "flat-white", Name: "Flat White", Price: 5.0, Description: "Double shot with microfoam milk"},
			{ID: "mocha", Name: "Mocha", Price: 5.5, Description: "Chocolate espresso with steamed milk"},
			{ID: "macchiato", Name: "Macchiato", Price: 4.0, Description: "Espresso marked with foam"},
		},
		"cold": {
			{ID: "iced-coffee", Name: "Iced Coffee", Price: 3.5, Description: "Cold brew coffee over ice"},
			{ID: "iced-latte", Name: "Iced Latte", Price: 5.0, Description: "Espresso with cold milk over ice"},
			{ID: "cold-brew", Name: "Cold Brew", Price: 4.0, Description: "24-hour steeped cold brew"},
			{ID: "nitro-cold-brew", Name: "Nitro Cold Brew", Price: 5.0, Description: "Nitrogen-infused cold brew"},
			{ID: "frappuccino", Name: "Frappuccino", Price: 6.0, Description: "Blended ice coffee drink"},
		},
		"non_coffee": {
			{ID: "matcha-latte", Name: "Matcha Latte", Price: 5.5, Description: "Premium matcha with steamed milk"},
			{ID: "chai-latte", Name: "Chai Latte", Price: 4.5, Description: "Spiced chai with steamed milk"},
			{ID: "hot-chocolate", Name: "Hot Chocolate", Price: 4.0, Description: "Rich Belgian hot chocolate"},
			{ID: "tea", Name: "Tea", Price: 3.0, Description: "Selection of premium teas"},
		},
	},
	Food: map[string][]Item{
		"pastries": {
			{ID: "croissant", Name: "Croissant", Price: 3.5, Description: "Buttery French croissant"},
			{ID: "pain-au-chocolat", Name: "Pain au Chocolat", Price: 4.0, Description: "Chocolate croissant"},
			{ID: "muffin", Name: "Blueberry Muffin", Price: 3.5, Description: "Fresh blueberry muffin"},
			{ID: "scone", Name: "Chocolate Scone", Price: 3.5, Description: "Chocolate chip scone"},
			{ID: "danish", Name: "Danish Pastry", Price: 4.0, Description: "Fruit-filled Danish"},
		},
		"sandwiches": {
			{ID: "avocado-toast", Name: "Avocado Toast", Price: 9.0, Description: "Smashed avocado on sourdough"},
			{ID: "breakfast-sandwich", Name: "Breakfast Sandwich", Price: 8.5, Description: "Egg, cheese, and bacon"},
			{ID: "club-sandwich", Name: "Club Sandwich", Price: 10.0, Description: "Turkey, bacon, lettuce, tomato"},
			{ID: "veggie-wrap", Name: "Veggie Wrap", Price: 8.0, Description: "Grilled vegetables in a wrap"},
		},
	},
	Customizations: map[string][]Item{
		"milk": {
			{ID: "whole", Name: "Whole Milk", Price: 0, Description: "Regular whole milk"},
			{ID: "skim", Name: "Skim Milk", Price: 0, Description: "Non-fat milk"},
			{ID: "oat", Name: "Oat Milk", Price: 0.7, Description: "Creamy oat milk"},
			{ID: "almond", Name: "Almond Milk", Price: 0.7, Description: "Almond milk"},
			{ID: "soy", Name: "Soy Milk", Price: 0.7, Description: "Soy milk"},
			{ID: "coconut", Name: "Coconut Milk", Price: 0.7, Description: "Coconut milk"},
		},
		"extras": {
			{ID: "extra-shot", Name: "Extra Shot", Price: 1.0, Description: "Additional espresso shot"},
			{ID: "decaf", Name: "Decaf", Price: 0, Description: "Decaffeinated option"},
			{ID: "vanilla", Name: "Vanilla Syrup", Price: 0.5, Description: "Vanilla flavoring"},
			{ID: "caramel", Name: "Caramel Syrup", Price: 0.5, Description: "Caramel flavoring"},
			{ID: "hazelnut", Name: "Hazelnut Syrup", Price: 0.5, Description: "Hazelnut flavoring"},
			{ID: "whipped-cream", Name: "Whipped Cream", Price: 0.5, Description: "Whipped cream topping"},
		},
	},
}
