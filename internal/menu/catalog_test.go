package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindItem(t *testing.T) {
	t.Run("espresso drink", func(t *testing.T) {
		info, ok := FindItem("latte")
		require.True(t, ok)
		assert.Equal(t, "Latte", info.Name)
		assert.Equal(t, 5.0, info.Price)
		assert.Equal(t, "coffee", info.Category)
		assert.Equal(t, "espresso", info.Subcategory)
	})

	t.Run("non-coffee drink", func(t *testing.T) {
		info, ok := FindItem("matcha-latte")
		require.True(t, ok)
		assert.Equal(t, "non_coffee", info.Category)
	})

	t.Run("food item", func(t *testing.T) {
		info, ok := FindItem("croissant")
		require.True(t, ok)
		assert.Equal(t, "food", info.Category)
		assert.Equal(t, "pastries", info.Subcategory)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, ok := FindItem("pumpkin-spice")
		assert.False(t, ok)
	})
}

func TestFindCustomization(t *testing.T) {
	oat, ok := FindCustomization("oat")
	require.True(t, ok)
	assert.Equal(t, "Oat Milk", oat.Name)
	assert.Equal(t, 0.7, oat.Price)

	shot, ok := FindCustomization("extra-shot")
	require.True(t, ok)
	assert.Equal(t, 1.0, shot.Price)

	_, ok = FindCustomization("unicorn-dust")
	assert.False(t, ok)
}

func TestDefaultTemperature(t *testing.T) {
	latte, ok := FindItem("latte")
	require.True(t, ok)
	assert.Equal(t, "hot", DefaultTemperature(latte))

	coldBrew, ok := FindItem("cold-brew")
	require.True(t, ok)
	assert.Equal(t, "iced", DefaultTemperature(coldBrew))
}

func TestCatalogIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, group := range []map[string][]Item{Catalog.Drinks, Catalog.Food} {
		for _, items := range group {
			for _, it := range items {
				assert.False(t, seen[it.ID], "duplicate sellable id %q", it.ID)
				seen[it.ID] = true
			}
		}
	}
}
