package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dionysio/spendee-go/internal/dto"
	"github.com/dionysio/spendee-go/internal/filter"
	"github.com/dionysio/spendee-go/pkg/helpers"
)

func (r *Registry) handleListWallets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	wallets, err := r.wallets.ListWallets(ctx)
	if err != nil {
		return r.toolError("list_wallets", err), nil
	}
	return jsonResult(wallets)
}

func (r *Registry) handleListCategories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	categories, err := r.refs.ListCategories(ctx)
	if err != nil {
		return r.toolError("list_categories", err), nil
	}
	return jsonResult(categories)
}

func (r *Registry) handleListLabels(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	labels, err := r.refs.ListLabels(ctx)
	if err != nil {
		return r.toolError("list_labels", err), nil
	}
	return jsonResult(labels)
}

func (r *Registry) handleWalletBalance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	walletID, err := req.RequireString("wallet_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var asOf *time.Time
	if raw := req.GetString("date", ""); raw != "" {
		t, err := parseInstant(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		asOf = &t
	}

	balance, err := r.wallets.WalletBalance(ctx, walletID, asOf)
	if err != nil {
		return r.toolError("get_wallet_balance", err), nil
	}
	return jsonResult(balance.IntPart())
}

func (r *Registry) handleGetTransaction(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	walletID, err := req.RequireString("wallet_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	txID, err := req.RequireString("transaction_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	record, err := r.txs.Get(ctx, walletID, txID,
		req.GetBool("resolve_category", true),
		req.GetBool("resolve_labels", true))
	if err != nil {
		return r.toolError("get_transaction", err), nil
	}
	return jsonResult(record)
}

func (r *Registry) handleListTransactions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	walletID, err := req.RequireString("wallet_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	start, end, err := parseRange(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	records, err := r.txs.List(ctx, dto.TransactionListArgs{
		WalletID: walletID,
		Start:    start,
		End:      end,
		Filters:  filterSpec(req),
		Limit:    int(req.GetFloat("limit", 20)),
		Fields:   req.GetStringSlice("fields", nil),
	})
	if err != nil {
		return r.toolError("list_transactions", err), nil
	}
	return jsonResult(records)
}

func (r *Registry) handleAggregateTransactions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	walletID, err := req.RequireString("wallet_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	start, end, err := parseRange(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	total, err := r.txs.Aggregate(ctx, walletID, start, end, filterSpec(req))
	if err != nil {
		return r.toolError("aggregate_transactions", err), nil
	}
	return jsonResult(total)
}

func (r *Registry) handleEditTransaction(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	walletID, err := req.RequireString("wallet_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	txID, err := req.RequireString("transaction_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	raw, ok := req.GetArguments()["updates"].(map[string]any)
	if !ok {
		return mcp.NewToolResultError("updates must be an object with optional note, category and labels keys"), nil
	}

	var updates dto.TransactionUpdate
	if v, ok := raw["note"].(string); ok {
		updates.Note = helpers.Ptr(v)
	}
	if v, ok := raw["category"].(string); ok {
		updates.Category = helpers.Ptr(v)
	}
	if v, ok := raw["labels"].(string); ok {
		updates.Labels = helpers.Ptr(v)
	}

	if err := r.txs.Edit(ctx, walletID, txID, updates); err != nil {
		return r.toolError("edit_transaction", err), nil
	}
	return jsonResult(map[string]any{"ok": true})
}

// ---- Helpers ----

// toolError logs and converts a domain error into an MCP tool error
// result, so callers see an explicit failure instead of a silently
// wrong value.
func (r *Registry) toolError(tool string, err error) *mcp.CallToolResult {
	r.log.Warn("tool call failed", "tool", tool, "error", err)
	return mcp.NewToolResultError(err.Error())
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(b)), nil
}

func filterSpec(req mcp.CallToolRequest) filter.Spec {
	raw, ok := req.GetArguments()["filters"].(map[string]any)
	if !ok {
		return nil
	}
	return filter.Spec(raw)
}

func parseRange(req mcp.CallToolRequest) (start time.Time, end *time.Time, err error) {
	start, err = parseInstant(req.GetString("start", ""))
	if err != nil {
		return time.Time{}, nil, err
	}
	if raw := req.GetString("end", ""); raw != "" {
		t, err := parseInstant(raw)
		if err != nil {
			return time.Time{}, nil, err
		}
		end = &t
	}
	return start, end, nil
}

var instantLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseInstant(raw string) (time.Time, error) {
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid instant %q, expected ISO 8601", raw)
}
