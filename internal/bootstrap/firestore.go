package bootstrap

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"

	"github.com/dionysio/spendee-go/internal/auth"
)

// InitFirestore connects to the Spendee project using the session's
// own access token as the credential; the lifecycle keeps it fresh
// before every call.
func InitFirestore(ctx context.Context, projectID string, lifecycle *auth.Lifecycle) (*firestore.Client, error) {
	return firestore.NewClient(ctx, projectID, option.WithTokenSource(auth.TokenSource(lifecycle)))
}
