package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Stock-Valuation-Backend/internal/model"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/vci"
)

// Lookup returns the value of the first candidate field that is present,
// non-null and non-blank in rec. When no candidate qualifies it returns def.
//
// The provider exposes several historical and localized names for the same
// attribute, so every logical attribute carries an ordered candidate list.
func Lookup(rec vci.Record, candidates []string, def any) any {
	for _, name := range candidates {
		v, ok := rec[name]
		if !ok || v == nil {
			continue
		}
		if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
			continue
		}
		return v
	}
	return def
}

// LookupString is Lookup for descriptive attributes. Non-string values are
// formatted with their default representation.
func LookupString(rec vci.Record, candidates []string, def string) string {
	v := Lookup(rec, candidates, nil)
	if v == nil {
		return def
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return fmt.Sprint(v)
}

// LookupFloat returns the first candidate that holds a finite number. Textual
// numerals such as "1,234,567" are accepted; a candidate that fails to parse
// is skipped rather than treated as an error.
func LookupFloat(rec vci.Record, candidates []string) null.Float {
	for _, name := range candidates {
		if f, ok := parseNumber(rec[name]); ok {
			return f
		}
	}
	return null.Float{}
}

// LookupPositive is LookupFloat for quantities that are only meaningful when
// strictly positive, such as share counts. Candidates holding zero or a
// negative number are skipped; the result is missing when none qualifies.
func LookupPositive(rec vci.Record, candidates []string) null.Float {
	for _, name := range candidates {
		if f, ok := parseNumber(rec[name]); ok && f.Float64 > 0 {
			return f
		}
	}
	return null.Float{}
}

// parseNumber coerces a JSON value to a finite float.
func parseNumber(v any) (null.Float, bool) {
	switch n := v.(type) {
	case float64:
		f := model.Num(n)
		return f, f.Valid
	case float32:
		f := model.Num(float64(n))
		return f, f.Valid
	case int:
		return null.FloatFrom(float64(n)), true
	case int64:
		return null.FloatFrom(float64(n)), true
	case json.Number:
		return parseNumeral(n.String())
	case string:
		return parseNumeral(n)
	default:
		return null.Float{}, false
	}
}

// parseNumeral parses comma-grouped text.
func parseNumeral(s string) (null.Float, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return null.Float{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return null.Float{}, false
	}
	f := model.Num(d.InexactFloat64())
	return f, f.Valid
}
