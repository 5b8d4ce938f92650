// Package filter evaluates declarative "field__operator" predicate
// specs against flat records, independent of where the record came
// from. All conditions in a spec are ANDed; an empty spec matches
// everything.
package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dionysio/spendee-go/internal/errs"
)

// Spec maps "<field>__<operator>" keys to comparison values. It is a
// transient request parameter, revalidated on every call.
type Spec map[string]any

const (
	opEq          = "eq"
	opRegex       = "regex"
	opGt          = "gt"
	opGte         = "gte"
	opLt          = "lt"
	opLte         = "lte"
	opContains    = "contains"
	opNotContains = "not_contains"
)

// eqTolerance is the absolute tolerance for numeric equality.
const eqTolerance = 1e-4

// Validate checks every key for the "field__operator" shape and a
// recognized operator, and precompiles regex patterns, so a malformed
// spec fails before any store access instead of lazily per-record.
func (s Spec) Validate() error {
	for key, value := range s {
		_, op, err := splitKey(key)
		if err != nil {
			return err
		}
		if op == opRegex {
			if _, err := regexp.Compile(stringify(value)); err != nil {
				return errs.NewInvalidFilterError(fmt.Sprintf("invalid regex in filter %q: %v", key, err))
			}
		}
	}
	return nil
}

// Matches reports whether record satisfies every condition in the
// spec. Malformed keys surface as InvalidFilterError; well-formed
// specs never error.
func (s Spec) Matches(record map[string]any) (bool, error) {
	for key, want := range s {
		field, op, err := splitKey(key)
		if err != nil {
			return false, err
		}
		if !evaluate(record[field], op, want) {
			return false, nil
		}
	}
	return true, nil
}

func splitKey(key string) (field, op string, err error) {
	idx := strings.Index(key, "__")
	if idx < 0 {
		return "", "", errs.NewInvalidFilterError(fmt.Sprintf("filter key %q is missing the __operator suffix", key))
	}
	field, op = key[:idx], key[idx+2:]
	switch op {
	case opEq, opRegex, opGt, opGte, opLt, opLte, opContains, opNotContains:
		return field, op, nil
	default:
		return "", "", errs.NewInvalidFilterError(fmt.Sprintf("unknown filter operator %q in key %q", op, key))
	}
}

func evaluate(have any, op string, want any) bool {
	switch op {
	case opEq:
		return equals(have, want)
	case opRegex:
		if isFalsy(have) {
			return false
		}
		re, err := regexp.Compile(stringify(want))
		if err != nil {
			return false
		}
		return re.MatchString(stringify(have))
	case opContains:
		if isFalsy(have) {
			return false
		}
		return contains(have, want)
	case opNotContains:
		// A missing value vacuously contains nothing.
		if isFalsy(have) {
			return true
		}
		return !contains(have, want)
	case opGt, opGte, opLt, opLte:
		if isFalsy(have) {
			return false
		}
		a, aok := toFloat(have)
		b, bok := toFloat(want)
		if !aok || !bok {
			// Non-numeric ordering comparisons fail closed.
			return false
		}
		switch op {
		case opGt:
			return a > b
		case opGte:
			return a >= b
		case opLt:
			return a < b
		default:
			return a <= b
		}
	}
	return false
}

func equals(have, want any) bool {
	a, aok := toFloat(have)
	b, bok := toFloat(want)
	if aok && bok {
		diff := a - b
		if diff < 0 {
			diff = -diff
		}
		return diff <= eqTolerance
	}
	return stringify(have) == stringify(want)
}

func contains(have, want any) bool {
	needle := stringify(want)
	switch v := have.(type) {
	case string:
		return strings.Contains(v, needle)
	case []string:
		for _, item := range v {
			if item == needle {
				return true
			}
		}
		return false
	case []any:
		for _, item := range v {
			if stringify(item) == needle {
				return true
			}
		}
		return false
	default:
		return strings.Contains(stringify(have), needle)
	}
}

func isFalsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case time.Time:
		return t.IsZero()
	case []string:
		return len(t) == 0
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		if f, ok := toFloat(v); ok {
			return f == 0
		}
		return false
	}
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}
