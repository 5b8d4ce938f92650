package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dionysio/spendee-go/pkg/logger"
)

func TestToolNames(t *testing.T) {
	r := NewRegistry(nil, nil, nil, logger.NewTestLogger())

	assert.Equal(t, []string{
		"list_wallets",
		"list_categories",
		"list_labels",
		"get_wallet_balance",
		"get_transaction",
		"list_transactions",
		"aggregate_transactions",
		"edit_transaction",
	}, r.ToolNames())
}

func TestParseInstant(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-08-14T12:30:00Z", "2025-08-14T12:30:00Z"},
		{"2025-08-14T12:30:00+02:00", "2025-08-14T10:30:00Z"},
		{"2025-08-14T12:30:00", "2025-08-14T12:30:00Z"},
		{"2025-08-14", "2025-08-14T00:00:00Z"},
	}
	for _, tc := range tests {
		got, err := parseInstant(tc.in)
		if err != nil {
			t.Fatalf("parseInstant(%q) error: %v", tc.in, err)
		}
		assert.Equal(t, tc.want, got.UTC().Format("2006-01-02T15:04:05Z07:00"), "input %q", tc.in)
	}

	if _, err := parseInstant("yesterday"); err == nil {
		t.Fatal("expected an error for an unparseable instant")
	}
}
