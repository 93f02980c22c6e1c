package inventory

import "github.com/DedPeredoz/rustyloot-scraper/internal/model"

// Locate heuristically finds a list of inventory records inside event args.
// Only the first argument is inspected; candidates are tried in priority
// order: data.inventory, inventory, then the argument itself when it is a
// list. Best-effort — unknown payload shapes yield nothing.
func Locate(args []any) []model.ItemRecord {
	if len(args) == 0 {
		return nil
	}
	first := args[0]

	if obj, ok := first.(map[string]any); ok {
		if data, ok := obj["data"].(map[string]any); ok {
			if inv, ok := data["inventory"].([]any); ok {
				return records(inv)
			}
		}
		if inv, ok := obj["inventory"].([]any); ok {
			return records(inv)
		}
		return nil
	}

	if list, ok := first.([]any); ok {
		return records(list)
	}
	return nil
}

// records keeps the object elements of a candidate list.
func records(list []any) []model.ItemRecord {
	var out []model.ItemRecord
	for _, el := range list {
		if rec, ok := el.(map[string]any); ok {
			out = append(out, rec)
		}
	}
	return out
}
