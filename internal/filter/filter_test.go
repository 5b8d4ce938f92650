package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dionysio/spendee-go/internal/errs"
)

func sampleRecord() map[string]any {
	return map[string]any{
		"id":        "tx-1",
		"note":      "Groceries at the corner shop",
		"category":  "Groceries",
		"type":      "regular",
		"isPending": false,
		"amount":    -42.5,
		"labels":    "holiday,szigetspicc",
		"madeAt":    time.Date(2025, 8, 14, 12, 0, 0, 0, time.UTC),
	}
}

func TestValidateMalformedKey(t *testing.T) {
	err := Spec{"category": "Groceries"}.Validate()
	require.Error(t, err)
	assert.IsType(t, &errs.InvalidFilterError{}, err)
}

func TestValidateUnknownOperator(t *testing.T) {
	err := Spec{"amount__between": 5}.Validate()
	require.Error(t, err)
	assert.IsType(t, &errs.InvalidFilterError{}, err)
}

func TestValidateBadRegex(t *testing.T) {
	err := Spec{"note__regex": "("}.Validate()
	require.Error(t, err)
	assert.IsType(t, &errs.InvalidFilterError{}, err)
}

func TestValidateOK(t *testing.T) {
	spec := Spec{
		"category__eq":       "Groceries",
		"note__regex":        "corner",
		"amount__lt":         0,
		"labels__contains":   "szigetspicc",
		"note__not_contains": "refund",
		"amount__gte":        -100,
		"amount__lte":        0,
		"amount__gt":         -100.5,
	}
	require.NoError(t, spec.Validate())
}

func TestEmptySpecMatchesEverything(t *testing.T) {
	ok, err := Spec{}.Matches(sampleRecord())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Spec(nil).Matches(sampleRecord())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMatchesMalformedKeyErrors(t *testing.T) {
	_, err := Spec{"category": "x"}.Matches(sampleRecord())
	require.Error(t, err)
	assert.IsType(t, &errs.InvalidFilterError{}, err)
}

func TestEq(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want bool
	}{
		{"string equality", Spec{"category__eq": "Groceries"}, true},
		{"string mismatch", Spec{"category__eq": "Rent"}, false},
		{"numeric exact", Spec{"amount__eq": -42.5}, true},
		{"numeric within tolerance", Spec{"amount__eq": -42.50009}, true},
		{"numeric outside tolerance", Spec{"amount__eq": -42.51}, false},
		{"numeric as string operand", Spec{"amount__eq": "-42.5"}, true},
		{"missing field", Spec{"currency__eq": "EUR"}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := tc.spec.Matches(sampleRecord())
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestRegexSubstringSearch(t *testing.T) {
	ok, err := Spec{"note__regex": "corner sh"}.Matches(sampleRecord())
	require.NoError(t, err)
	assert.True(t, ok, "regex is a substring search, not a full match")

	ok, err = Spec{"note__regex": "^Groceries"}.Matches(sampleRecord())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Spec{"note__regex": "refund"}.Matches(sampleRecord())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegexMissingValueNoMatch(t *testing.T) {
	ok, err := Spec{"currency__regex": ".*"}.Matches(sampleRecord())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestContains(t *testing.T) {
	record := sampleRecord()
	record["tags"] = []string{"a", "b"}

	tests := []struct {
		name string
		spec Spec
		want bool
	}{
		{"string substring", Spec{"labels__contains": "szigetspicc"}, true},
		{"string miss", Spec{"labels__contains": "commute"}, false},
		{"slice element", Spec{"tags__contains": "b"}, true},
		{"slice miss", Spec{"tags__contains": "c"}, false},
		{"missing field", Spec{"currency__contains": "EU"}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := tc.spec.Matches(record)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestNotContains(t *testing.T) {
	ok, err := Spec{"labels__not_contains": "commute"}.Matches(sampleRecord())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Spec{"labels__not_contains": "szigetspicc"}.Matches(sampleRecord())
	require.NoError(t, err)
	assert.False(t, ok)

	// A missing value vacuously contains nothing.
	ok, err = Spec{"currency__not_contains": "EU"}.Matches(sampleRecord())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOrderingComparisons(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want bool
	}{
		{"gt true", Spec{"amount__gt": -50}, true},
		{"gt false", Spec{"amount__gt": -42.5}, false},
		{"gte boundary", Spec{"amount__gte": -42.5}, true},
		{"lt true", Spec{"amount__lt": 0}, true},
		{"lte boundary", Spec{"amount__lte": -42.5}, true},
		{"lt false", Spec{"amount__lt": -100}, false},
		{"string operand", Spec{"amount__lt": "0"}, true},
		{"non-numeric field fails closed", Spec{"note__gt": 5}, false},
		{"non-numeric operand fails closed", Spec{"amount__gt": "yesterday"}, false},
		{"missing field", Spec{"currency__gt": 1}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := tc.spec.Matches(sampleRecord())
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestConditionsAreANDed(t *testing.T) {
	ok, err := Spec{
		"category__eq": "Groceries",
		"amount__lt":   0,
	}.Matches(sampleRecord())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Spec{
		"category__eq": "Groceries",
		"amount__gt":   0,
	}.Matches(sampleRecord())
	require.NoError(t, err)
	assert.False(t, ok)
}
