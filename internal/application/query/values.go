package query

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayouts are tried in order for query bounds and document dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// documentTime reads a document date: a date string or epoch milliseconds.
func documentTime(v any) (time.Time, bool) {
	switch value := v.(type) {
	case string:
		return parseDate(value)
	case json.Number, float64, int, int64:
		d, ok := toDecimal(value)
		if !ok {
			return time.Time{}, false
		}
		return time.UnixMilli(d.IntPart()).UTC(), true
	default:
		return time.Time{}, false
	}
}

// toDecimal converts numbers and numeric strings. Anything else is not numeric.
func toDecimal(v any) (decimal.Decimal, bool) {
	switch value := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(value.String())
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(value), true
	case int:
		return decimal.NewFromInt(int64(value)), true
	case int64:
		return decimal.NewFromInt(value), true
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return decimal.Zero, true
		}
		d, err := decimal.NewFromString(trimmed)
		return d, err == nil
	case bool:
		if value {
			return decimal.NewFromInt(1), true
		}
		return decimal.Zero, true
	default:
		return decimal.Decimal{}, false
	}
}

// scalarString renders scalars the way they appear in a URL.
func scalarString(v any) (string, bool) {
	switch value := v.(type) {
	case string:
		return value, true
	case json.Number:
		return value.String(), true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	case int:
		return strconv.Itoa(value), true
	case int64:
		return strconv.FormatInt(value, 10), true
	case bool:
		return strconv.FormatBool(value), true
	default:
		return "", false
	}
}

// looseEqual compares a document value with a request parameter: numbers compare
// numerically, everything else by string form.
func looseEqual(v any, param string) bool {
	s, ok := scalarString(v)
	if !ok {
		return false
	}
	if s == param {
		return true
	}
	if _, isString := v.(string); isString {
		return false
	}
	left, ok := toDecimal(v)
	if !ok {
		return false
	}
	right, err := decimal.NewFromString(strings.TrimSpace(param))
	return err == nil && left.Equal(right)
}
