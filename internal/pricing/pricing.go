// Package pricing turns requested items into priced order lines. Both the
// order-confirmation preview and the final submission go through the same
// Quote so the two can never disagree on tax handling.
package pricing

import (
	"fmt"
	"log"
	"math"
	"strings"

	"brewbyte-backend/internal/menu"
)

// TaxRate is the fixed sales tax applied to the subtotal.
const TaxRate = 0.07

// RequestItem is one requested order line as sent by the agent or the
// browser client.
type RequestItem struct {
	ItemID         string   `json:"itemId"`
	Quantity       int      `json:"quantity"`
	Size           string   `json:"size"`
	Temperature    string   `json:"temperature"`
	Customizations []string `json:"customizations"`
}

// Line is a priced order line. Price is the line total including
// customization surcharges, UnitPrice the catalog price of the bare item.
type Line struct {
	ItemID         string   `json:"itemId"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	Subcategory    string   `json:"subcategory"`
	Size           string   `json:"size"`
	Temperature    string   `json:"temperature"`
	Quantity       int      `json:"quantity"`
	Customizations []string `json:"customizations"`
	UnitPrice      float64  `json:"unitPrice"`
	Price          float64  `json:"price"`
}

// Quote is the full pricing breakdown for a set of requested items.
type Quote struct {
	Lines    []Line  `json:"items"`
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// TotalQuantity is the number of individual items across all lines.
func (q Quote) TotalQuantity() int {
	n := 0
	for _, l := range q.Lines {
		n += l.Quantity
	}
	return n
}

// BuildQuote resolves each requested item against the catalog and prices it.
// Unknown item ids are skipped with a warning rather than failing the whole
// order; unknown customization ids are ignored the same way.
func BuildQuote(items []RequestItem) Quote {
	var q Quote

	for _, req := range items {
		info, ok := menu.FindItem(req.ItemID)
		if !ok {
			log.Printf("Warning: menu item not found, skipping: %q", req.ItemID)
			continue
		}

		quantity := req.Quantity
		if quantity < 1 {
			quantity = 1
		}

		lineTotal := info.Price * float64(quantity)
		description := fmt.Sprintf("%dx %s", quantity, info.Name)

		var custNames []string
		for _, custID := range req.Customizations {
			cust, ok := menu.FindCustomization(custID)
			if !ok {
				log.Printf("Warning: customization not found, skipping: %q", custID)
				continue
			}
			lineTotal += cust.Price * float64(quantity)
			custNames = append(custNames, cust.Name)
		}
		if len(custNames) > 0 {
			description += " (" + strings.Join(custNames, ", ") + ")"
		}

		size := req.Size
		if size == "" {
			size = "medium"
		}
		temperature := req.Temperature
		if temperature == "" {
			temperature = menu.DefaultTemperature(info)
		}

		q.Lines = append(q.Lines, Line{
			ItemID:         req.ItemID,
			Name:           info.Name,
			Description:    description,
			Category:       info.Category,
			Subcategory:    info.Subcategory,
			Size:           size,
			Temperature:    temperature,
			Quantity:       quantity,
			Customizations: custNames,
			UnitPrice:      info.Price,
			Price:          lineTotal,
		})
		q.Subtotal += lineTotal
	}

	q.Tax = q.Subtotal * TaxRate
	q.Total = q.Subtotal + q.Tax
	return q
}

// EstimateMinutes computes the pickup ETA from the total item count. It is a
// documented heuristic, not a queueing model: 3 base minutes plus half a
// minute per item, capped at 4 extra minutes.
func EstimateMinutes(totalQuantity int) int {
	additional := math.Min(float64(totalQuantity)*0.5, 4)
	return int(math.Ceil(3 + additional))
}

// FormatAmount renders a dollar amount with two decimals for API responses.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
