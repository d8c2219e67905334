package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuote(t *testing.T) {
	t.Run("latte with oat milk", func(t *testing.T) {
		quote := BuildQuote([]RequestItem{
			{ItemID: "latte", Quantity: 1, Customizations: []string{"oat"}},
		})

		require.Len(t, quote.Lines, 1)
		line := quote.Lines[0]
		assert.Equal(t, "Latte", line.Name)
		assert.Equal(t, "1x Latte (Oat Milk)", line.Description)
		assert.Equal(t, 5.0, line.UnitPrice)
		assert.InDelta(t, 5.7, line.Price, 0.001)
		assert.Equal(t, "medium", line.Size, "size defaults to medium")
		assert.Equal(t, "hot", line.Temperature, "espresso drinks default to hot")

		assert.InDelta(t, 5.7, quote.Subtotal, 0.001)
		assert.Equal(t, "0.40", FormatAmount(quote.Tax))
		assert.Equal(t, "6.10", FormatAmount(quote.Total))
	})

	t.Run("customization surcharge multiplies by quantity", func(t *testing.T) {
		quote := BuildQuote([]RequestItem{
			{ItemID: "latte", Quantity: 2, Customizations: []string{"oat"}},
		})

		require.Len(t, quote.Lines, 1)
		assert.Equal(t, "2x Latte (Oat Milk)", quote.Lines[0].Description)
		assert.InDelta(t, 11.4, quote.Lines[0].Price, 0.001)
	})

	t.Run("unknown item is skipped, the rest is priced", func(t *testing.T) {
		quote := BuildQuote([]RequestItem{
			{ItemID: "pumpkin-spice", Quantity: 1},
			{ItemID: "espresso", Quantity: 1},
		})

		require.Len(t, quote.Lines, 1)
		assert.Equal(t, "Espresso", quote.Lines[0].Name)
		assert.InDelta(t, 3.0, quote.Subtotal, 0.001)
	})

	t.Run("unknown customization is skipped", func(t *testing.T) {
		quote := BuildQuote([]RequestItem{
			{ItemID: "espresso", Quantity: 1, Customizations: []string{"unicorn-dust", "extra-shot"}},
		})

		require.Len(t, quote.Lines, 1)
		assert.Equal(t, []string{"Extra Shot"}, quote.Lines[0].Customizations)
		assert.InDelta(t, 4.0, quote.Lines[0].Price, 0.001)
	})

	t.Run("quantity below one is clamped", func(t *testing.T) {
		quote := BuildQuote([]RequestItem{{ItemID: "tea", Quantity: 0}})

		require.Len(t, quote.Lines, 1)
		assert.Equal(t, 1, quote.Lines[0].Quantity)
		assert.InDelta(t, 3.0, quote.Subtotal, 0.001)
	})

	t.Run("cold drinks default to iced", func(t *testing.T) {
		quote := BuildQuote([]RequestItem{{ItemID: "cold-brew", Quantity: 1}})

		require.Len(t, quote.Lines, 1)
		assert.Equal(t, "iced", quote.Lines[0].Temperature)
	})

	t.Run("empty request prices to zero", func(t *testing.T) {
		quote := BuildQuote(nil)
		assert.Empty(t, quote.Lines)
		assert.Equal(t, "0.00", FormatAmount(quote.Total))
	})
}

func TestTotalQuantity(t *testing.T) {
	quote := BuildQuote([]RequestItem{
		{ItemID: "latte", Quantity: 2},
		{ItemID: "croissant", Quantity: 3},
	})
	assert.Equal(t, 5, quote.TotalQuantity())
}

func TestEstimateMinutes(t *testing.T) {
	assert.Equal(t, 3, EstimateMinutes(0))
	assert.Equal(t, 4, EstimateMinutes(1))
	assert.Equal(t, 4, EstimateMinutes(2))
	assert.Equal(t, 5, EstimateMinutes(4))
	assert.Equal(t, 7, EstimateMinutes(8))
	// The per-item contribution caps out at 4 extra minutes.
	assert.Equal(t, 7, EstimateMinutes(100))

	// Monotonic in the item count.
	prev := 0
	for n := 0; n <= 20; n++ {
		eta := EstimateMinutes(n)
		assert.GreaterOrEqual(t, eta, prev, "ETA must never shrink as items are added")
		prev = eta
	}
}
