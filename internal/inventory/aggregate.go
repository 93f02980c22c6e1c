// Package inventory extracts item records from decoded events and folds them
// into a running per-item tally.
package inventory

import (
	"github.com/DedPeredoz/rustyloot-scraper/internal/model"
	"github.com/shopspring/decimal"
)

func init() {
	// Snapshots carry prices as plain JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// unknownName is used when a record carries no recognizable name field.
const unknownName = "UNKNOWN"

var hundred = decimal.NewFromInt(100)

// ItemStats accumulates quantity and price for one item name.
type ItemStats struct {
	Amount     int64           `json:"amount"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Aggregate maps normalized item names to their accumulated stats. It grows
// for the life of one run and is mutated only by the run loop.
type Aggregate map[string]*ItemStats

// NewAggregate returns an empty aggregate.
func NewAggregate() Aggregate {
	return make(Aggregate)
}

// Merge folds records into the aggregate and reports how many were merged.
// Field names vary per event shape: the name may live under name,
// market_hash_name or title; the price (in cents) under price or price_cents;
// the quantity under amount or quantity. Non-numeric prices count as 0 and
// non-numeric quantities as 1; nothing here ever fails.
//
// Note: each record contributes its price once, NOT price×quantity. That
// matches the upstream feed, where price already appears to be a line total.
func (a Aggregate) Merge(items []model.ItemRecord) int {
	merged := 0
	for _, it := range items {
		name, ok := strField(it, "name", "market_hash_name", "title")
		if !ok {
			name = unknownName
		}

		price := decimal.Zero
		if v, ok := firstField(it, "price", "price_cents"); ok {
			if cents, ok := toFloat(v); ok {
				price = decimal.NewFromFloat(cents).Div(hundred)
			}
		}

		qty := int64(1)
		if v, ok := firstField(it, "amount", "quantity"); ok {
			if n, ok := toInt(v); ok {
				qty = n
			}
		}

		rec, ok := a[name]
		if !ok {
			rec = &ItemStats{TotalPrice: decimal.Zero}
			a[name] = rec
		}
		rec.Amount += qty
		rec.TotalPrice = rec.TotalPrice.Add(price)
		merged++
	}
	return merged
}

// Copy returns a deep copy safe to hand to another goroutine.
func (a Aggregate) Copy() Aggregate {
	out := make(Aggregate, len(a))
	for name, rec := range a {
		c := *rec
		out[name] = &c
	}
	return out
}
