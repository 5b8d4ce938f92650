package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/subosito/gotenv"

	"github.com/dionysio/spendee-go/internal/bootstrap"
	"github.com/dionysio/spendee-go/internal/catalog"
	"github.com/dionysio/spendee-go/internal/config"
	"github.com/dionysio/spendee-go/internal/services"
	"github.com/dionysio/spendee-go/internal/store"
	"github.com/dionysio/spendee-go/internal/tools"
	"github.com/dionysio/spendee-go/internal/transport"
)

const version = "1.0.0"

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	gotenv.Load()
	cfg := config.New()
	ctx := context.Background()
	bs, err := bootstrap.Run(ctx, cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	wstore := store.NewWalletStore(bs.Firestore)
	rstore := store.NewReferenceStore(bs.Firestore)
	tstore := store.NewTransactionStore(bs.Firestore)

	// reference data, loaded once for the session
	cat, err := catalog.Load(ctx, rstore, bs.Session.UserID)
	exitOnError("catalog load failed", err, bs.Log)

	// services
	wserv := services.NewWalletService(bs.Session.UserID, wstore, tstore)
	rserv := services.NewReferenceService(bs.Session.UserID, rstore)
	tserv := services.NewTransactionService(bs.Session.UserID, tstore, cat)

	// MCP server + tool registry
	mcp := mcpserver.NewMCPServer("spendee", version)
	registry := tools.NewRegistry(wserv, rserv, tserv, bs.Log)
	registry.Register(mcp)

	// transport
	srv := transport.New(cfg, mcp, bs.Log)
	bs.Log.Info("starting MCP server", "transport", srv.Name(), "port", cfg.Port, "auth", !cfg.DisableAuth)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		exitOnError("server start failed", err, bs.Log)
	case <-stop:
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		exitOnError("shutdown failed", srv.Shutdown(shutdownCtx), bs.Log)
		bs.Log.Info("server stopped")
	}
}
