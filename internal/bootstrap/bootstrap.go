package bootstrap

import (
	"context"
	"log/slog"

	"cloud.google.com/go/firestore"

	"github.com/dionysio/spendee-go/internal/auth"
	"github.com/dionysio/spendee-go/internal/client/identity"
	"github.com/dionysio/spendee-go/internal/config"
	"github.com/dionysio/spendee-go/pkg/logger"
)

type Bootstrap struct {
	Log       *slog.Logger
	Lifecycle *auth.Lifecycle
	Session   *auth.Session
	Firestore *firestore.Client
}

func Run(ctx context.Context, cfg *config.Config) (*Bootstrap, error) {
	bs := new(Bootstrap)
	bs.Log = logger.New(cfg.LogLevel, cfg.LogFormat)

	provider := identity.NewAdapter(cfg.GoogleAPIKey)
	bs.Lifecycle = auth.NewLifecycle(provider, cfg.Email, cfg.Password, bs.Log)

	session, err := bs.Lifecycle.Authenticate(ctx)
	if err != nil {
		return bs, err
	}
	bs.Session = session

	bs.Firestore, err = InitFirestore(ctx, cfg.ProjectID, bs.Lifecycle)
	if err != nil {
		return bs, err
	}

	bs.Log.Info("session established", "user", session.UserID, "email", session.Email)
	return bs, nil
}

func (b *Bootstrap) Close() {
	if b.Firestore != nil {
		b.Firestore.Close()
	}
}
