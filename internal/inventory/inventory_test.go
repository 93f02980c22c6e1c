package inventory

import (
	"encoding/json"
	"testing"

	"github.com/DedPeredoz/rustyloot-scraper/internal/model"
)

func TestLocateNestedDataPath(t *testing.T) {
	a := map[string]any{"name": "A"}
	b := map[string]any{"name": "B"}
	args := []any{map[string]any{
		"data":      map[string]any{"inventory": []any{a}},
		"inventory": []any{b},
	}}

	items := Locate(args)

	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	// The nested data.inventory path takes priority over the flat field.
	if items[0]["name"] != "A" {
		t.Errorf("expected item A, got %v", items[0]["name"])
	}
}

func TestLocateFlatInventoryField(t *testing.T) {
	args := []any{map[string]any{
		"inventory": []any{map[string]any{"name": "B"}},
	}}

	items := Locate(args)

	if len(items) != 1 || items[0]["name"] != "B" {
		t.Errorf("expected item B, got %v", items)
	}
}

func TestLocateBareList(t *testing.T) {
	args := []any{[]any{
		map[string]any{"name": "C"},
		"not a record",
		map[string]any{"name": "D"},
	}}

	items := Locate(args)

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0]["name"] != "C" || items[1]["name"] != "D" {
		t.Errorf("unexpected items: %v", items)
	}
}

func TestLocateNoCandidate(t *testing.T) {
	cases := [][]any{
		nil,
		{},
		{"just a string"},
		{float64(42)},
		{map[string]any{"data": "not an object"}},
		{map[string]any{"inventory": "not a list"}},
	}

	for _, args := range cases {
		if items := Locate(args); len(items) != 0 {
			t.Errorf("args %v: expected no items, got %v", args, items)
		}
	}
}

func TestMergeSingleRecord(t *testing.T) {
	agg := NewAggregate()

	agg.Merge([]model.ItemRecord{{"name": "Widget", "price": float64(250), "amount": float64(2)}})

	rec, ok := agg["Widget"]
	if !ok {
		t.Fatal("expected Widget entry")
	}
	if rec.Amount != 2 {
		t.Errorf("expected amount 2, got %d", rec.Amount)
	}
	if rec.TotalPrice.String() != "2.5" {
		t.Errorf("expected total_price 2.5, got %s", rec.TotalPrice)
	}
}

func TestMergeIsNotIdempotent(t *testing.T) {
	agg := NewAggregate()
	items := []model.ItemRecord{{"name": "Widget", "price": float64(250), "amount": float64(2)}}

	agg.Merge(items)
	agg.Merge(items)

	rec := agg["Widget"]
	if rec.Amount != 4 {
		t.Errorf("expected amount 4, got %d", rec.Amount)
	}
	if rec.TotalPrice.String() != "5" {
		t.Errorf("expected total_price 5, got %s", rec.TotalPrice)
	}
}

func TestMergePriceNotMultipliedByQuantity(t *testing.T) {
	agg := NewAggregate()

	// quantity 10, but the price contributes exactly once per record.
	agg.Merge([]model.ItemRecord{{"name": "Crate", "price": float64(100), "amount": float64(10)}})

	rec := agg["Crate"]
	if rec.Amount != 10 {
		t.Errorf("expected amount 10, got %d", rec.Amount)
	}
	if rec.TotalPrice.String() != "1" {
		t.Errorf("expected total_price 1, got %s", rec.TotalPrice)
	}
}

func TestMergeFieldFallbacks(t *testing.T) {
	agg := NewAggregate()

	agg.Merge([]model.ItemRecord{
		{"market_hash_name": "AK", "price_cents": float64(199), "quantity": float64(3)},
		{"title": "Pipe", "price_cents": "50"},
	})

	ak := agg["AK"]
	if ak == nil || ak.Amount != 3 || ak.TotalPrice.String() != "1.99" {
		t.Errorf("unexpected AK entry: %+v", ak)
	}
	pipe := agg["Pipe"]
	if pipe == nil || pipe.Amount != 1 || pipe.TotalPrice.String() != "0.5" {
		t.Errorf("unexpected Pipe entry: %+v", pipe)
	}
}

func TestMergeDefaults(t *testing.T) {
	agg := NewAggregate()

	agg.Merge([]model.ItemRecord{
		{},                                   // nothing at all
		{"name": nil, "price": nil},          // explicit nulls
		{"name": "Bad", "price": "oops", "amount": "many"}, // non-numeric
	})

	unk := agg[unknownName]
	if unk == nil || unk.Amount != 2 || !unk.TotalPrice.IsZero() {
		t.Errorf("unexpected UNKNOWN entry: %+v", unk)
	}
	bad := agg["Bad"]
	if bad == nil || bad.Amount != 1 || !bad.TotalPrice.IsZero() {
		t.Errorf("unexpected Bad entry: %+v", bad)
	}
}

func TestAggregateJSONShape(t *testing.T) {
	agg := NewAggregate()
	agg.Merge([]model.ItemRecord{{"name": "Widget", "price": float64(250), "amount": float64(2)}})

	raw, err := json.Marshal(agg)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	// Prices serialize as plain numbers, not quoted strings.
	want := `{"Widget":{"amount":2,"total_price":2.5}}`
	if string(raw) != want {
		t.Errorf("expected %s, got %s", want, raw)
	}
}

func TestCopyIsIndependent(t *testing.T) {
	agg := NewAggregate()
	agg.Merge([]model.ItemRecord{{"name": "Widget", "price": float64(100)}})

	cp := agg.Copy()
	agg.Merge([]model.ItemRecord{{"name": "Widget", "price": float64(100)}})

	if cp["Widget"].Amount != 1 {
		t.Errorf("copy mutated by later merge: %+v", cp["Widget"])
	}
	if agg["Widget"].Amount != 2 {
		t.Errorf("original not updated: %+v", agg["Widget"])
	}
}

func TestFirstFieldOrder(t *testing.T) {
	rec := model.ItemRecord{"b": "second", "a": "first"}

	v, ok := firstField(rec, "a", "b")
	if !ok || v != "first" {
		t.Errorf("expected 'first', got %v", v)
	}

	v, ok = firstField(rec, "missing", "b")
	if !ok || v != "second" {
		t.Errorf("expected 'second', got %v", v)
	}

	if _, ok := firstField(rec, "missing"); ok {
		t.Error("expected no value for missing key")
	}
}

func TestStrFieldSkipsEmptyAndFormats(t *testing.T) {
	rec := model.ItemRecord{"name": "", "title": float64(7)}

	s, ok := strField(rec, "name", "title")
	if !ok || s != "7" {
		t.Errorf("expected '7', got %q", s)
	}
}
