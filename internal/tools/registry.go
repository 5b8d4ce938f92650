// Package tools binds the client's public operations to MCP tools.
// The export list is explicit and static: every tool is enumerated
// here, registered in one pass at startup.
package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/shopspring/decimal"

	"github.com/dionysio/spendee-go/internal/dto"
	"github.com/dionysio/spendee-go/internal/filter"
)

type WalletService interface {
	ListWallets(ctx context.Context) ([]dto.WalletSummary, error)
	WalletBalance(ctx context.Context, walletID string, asOf *time.Time) (decimal.Decimal, error)
}

type ReferenceService interface {
	ListCategories(ctx context.Context) ([]dto.CategorySummary, error)
	ListLabels(ctx context.Context) ([]dto.LabelSummary, error)
}

type TransactionService interface {
	List(ctx context.Context, args dto.TransactionListArgs) ([]dto.TransactionRecord, error)
	Get(ctx context.Context, walletID, txID string, resolveCategory, resolveLabels bool) (dto.TransactionRecord, error)
	Aggregate(ctx context.Context, walletID string, start time.Time, end *time.Time, filters filter.Spec) (float64, error)
	Edit(ctx context.Context, walletID, txID string, updates dto.TransactionUpdate) error
}

type Registry struct {
	wallets WalletService
	refs    ReferenceService
	txs     TransactionService
	log     *slog.Logger
}

func NewRegistry(wallets WalletService, refs ReferenceService, txs TransactionService, log *slog.Logger) *Registry {
	return &Registry{
		wallets: wallets,
		refs:    refs,
		txs:     txs,
		log:     log,
	}
}

type binding struct {
	tool    mcp.Tool
	handler server.ToolHandlerFunc
}

// Register adds every exported tool to the server. All tools are
// side-effect-free except edit_transaction.
func (r *Registry) Register(s *server.MCPServer) {
	for _, b := range r.bindings() {
		s.AddTool(b.tool, b.handler)
	}
}

// ToolNames lists the exported tool names in registration order.
func (r *Registry) ToolNames() []string {
	bindings := r.bindings()
	names := make([]string, 0, len(bindings))
	for _, b := range bindings {
		names = append(names, b.tool.Name)
	}
	return names
}

func (r *Registry) bindings() []binding {
	return []binding{
		{
			tool: mcp.NewTool("list_wallets",
				mcp.WithDescription("List the user's active wallets with their currency and starting balance."),
			),
			handler: r.handleListWallets,
		},
		{
			tool: mcp.NewTool("list_categories",
				mcp.WithDescription("List all transaction categories with their income/expense type."),
			),
			handler: r.handleListCategories,
		},
		{
			tool: mcp.NewTool("list_labels",
				mcp.WithDescription("List all labels that can be attached to transactions."),
			),
			handler: r.handleListLabels,
		},
		{
			tool: mcp.NewTool("get_wallet_balance",
				mcp.WithDescription("Return the wallet balance as of a date, rounded to the nearest unit."),
				mcp.WithString("wallet_id", mcp.Required(), mcp.Description("Wallet id")),
				mcp.WithString("date", mcp.Description("Cutoff instant in ISO 8601; omit for the current balance")),
			),
			handler: r.handleWalletBalance,
		},
		{
			tool: mcp.NewTool("get_transaction",
				mcp.WithDescription("Fetch a single transaction with its category and labels resolved to names."),
				mcp.WithString("wallet_id", mcp.Required(), mcp.Description("Wallet id")),
				mcp.WithString("transaction_id", mcp.Required(), mcp.Description("Transaction id")),
				mcp.WithBoolean("resolve_category", mcp.Description("Resolve the category id to its name (default true)")),
				mcp.WithBoolean("resolve_labels", mcp.Description("Include the transaction's labels (default true)")),
			),
			handler: r.handleGetTransaction,
		},
		{
			tool: mcp.NewTool("list_transactions",
				mcp.WithDescription("List transactions in a time range, most recent first, with optional field__operator filters."),
				mcp.WithString("wallet_id", mcp.Required(), mcp.Description("Wallet id")),
				mcp.WithString("start", mcp.Required(), mcp.Description("Range start in ISO 8601")),
				mcp.WithString("end", mcp.Description("Range end in ISO 8601; open-ended when omitted")),
				mcp.WithObject("filters", mcp.Description("Map of \"field__operator\" to a comparison value; operators: eq, regex, gt, gte, lt, lte, contains, not_contains")),
				mcp.WithNumber("limit", mcp.Description("Maximum matches to return; 0 means unlimited (default 20)")),
				mcp.WithArray("fields", mcp.Description("Output fields, a subset of: id, note, madeAt, category, type, isPending, amount, labels")),
			),
			handler: r.handleListTransactions,
		},
		{
			tool: mcp.NewTool("aggregate_transactions",
				mcp.WithDescription("Sum the amounts of transactions in a time range, with optional filters."),
				mcp.WithString("wallet_id", mcp.Required(), mcp.Description("Wallet id")),
				mcp.WithString("start", mcp.Required(), mcp.Description("Range start in ISO 8601")),
				mcp.WithString("end", mcp.Description("Range end in ISO 8601; open-ended when omitted")),
				mcp.WithObject("filters", mcp.Description("Map of \"field__operator\" to a comparison value")),
			),
			handler: r.handleAggregateTransactions,
		},
		{
			tool: mcp.NewTool("edit_transaction",
				mcp.WithDescription("Edit a transaction's note, category or labels. Labels take a comma-separated \"+name,-name\" spec."),
				mcp.WithString("wallet_id", mcp.Required(), mcp.Description("Wallet id")),
				mcp.WithString("transaction_id", mcp.Required(), mcp.Description("Transaction id")),
				mcp.WithObject("updates", mcp.Required(), mcp.Description("Object with optional note, category and labels keys")),
			),
			handler: r.handleEditTransaction,
		},
	}
}
