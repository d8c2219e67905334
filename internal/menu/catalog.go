package menu

// ItemInfo is a resolved catalog entry along with its category path.
type ItemInfo struct {
	Item
	Category    string
	Subcategory string
}

// categoryFor maps a drink subcategory to the analytics category used on
// order lines.
func categoryFor(group, subcategory string) string {
	if group == "food" {
		return "food"
	}
	if subcategory == "non_coffee" {
		return "non_coffee"
	}
	return "coffee"
}

// FindItem resolves a sellable item by catalog id.
func FindItem(id string) (ItemInfo, bool) {
	for sub, items := range Catalog.Drinks {
		for _, it := range items {
			if it.ID == id {
				return ItemInfo{Item: it, Category: categoryFor("drinks", sub), Subcategory: sub}, true
			}
		}
	}
	for sub, items := range Catalog.Food {
		for _, it := range items {
			if it.ID == id {
				return ItemInfo{Item: it, Category: categoryFor("food", sub), Subcategory: sub}, true
			}
		}
	}
	return ItemInfo{}, false
}

// FindCustomization resolves a customization by id across all customization
// groups.
func FindCustomization(id string) (Item, bool) {
	for _, items := range Catalog.Customizations {
		for _, it := range items {
			if it.ID == id {
				return it, true
			}
		}
	}
	return Item{}, false
}

// DefaultTemperature returns the temperature an item is served at when the
// order does not say otherwise.
func DefaultTemperature(info ItemInfo) string {
	if info.Subcategory == "cold" {
		return "iced"
	}
	return "hot"
}
