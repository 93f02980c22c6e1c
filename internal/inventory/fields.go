package inventory

import (
	"fmt"
	"strconv"

	"github.com/DedPeredoz/rustyloot-scraper/internal/model"
)

// firstField returns the first present non-null value among the given keys,
// tried in order. Records are heterogeneous, so callers coerce the result.
func firstField(rec model.ItemRecord, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := rec[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// strField returns the first matching field rendered as a non-empty string.
func strField(rec model.ItemRecord, keys ...string) (string, bool) {
	for _, k := range keys {
		v, ok := rec[k]
		if !ok || v == nil {
			continue
		}
		s := fmt.Sprintf("%v", v)
		if s != "" {
			return s, true
		}
	}
	return "", false
}

// toFloat coerces a JSON value to float64. Numbers decode as float64;
// numeric strings are accepted too.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// toInt coerces a JSON value to int64, truncating fractional numbers.
func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}
