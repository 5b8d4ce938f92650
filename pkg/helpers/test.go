package helpers

import (
	"context"

	"github.com/dionysio/spendee-go/pkg/logger"
)

// TestCtx returns a context carrying a discarding test logger.
func TestCtx() context.Context {
	return logger.ToContext(context.Background(), logger.NewTestLogger())
}
