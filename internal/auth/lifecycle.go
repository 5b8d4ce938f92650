// Package auth owns the access-token lifecycle for one Spendee
// session: issuance, expiry checks against the token's own exp claim,
// and synchronous refresh before store access.
package auth

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dionysio/spendee-go/internal/errs"
)

// refreshSkew is subtracted from the claimed expiry so a token is
// refreshed slightly before it actually lapses.
const refreshSkew = 30 * time.Second

// Provider is the external token issuer (Identity Toolkit).
type Provider interface {
	VerifyPassword(ctx context.Context, email, password string) (refreshToken string, err error)
	ExchangeRefreshToken(ctx context.Context, refreshToken string) (accessToken string, expiry time.Time, err error)
}

type Lifecycle struct {
	provider Provider
	email    string
	password string
	log      *slog.Logger

	mu           sync.Mutex
	refreshToken string
	token        string
	expiry       time.Time
}

func NewLifecycle(provider Provider, email, password string, log *slog.Logger) *Lifecycle {
	return &Lifecycle{
		provider: provider,
		email:    email,
		password: password,
		log:      log,
	}
}

// Authenticate runs the full sign-in flow and returns the session
// identity decoded from the issued access token.
func (l *Lifecycle) Authenticate(ctx context.Context) (*Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.refreshLocked(ctx); err != nil {
		return nil, err
	}

	session, err := sessionFromToken(l.token)
	if err != nil {
		return nil, errs.NewAuthError(err.Error())
	}
	return session, nil
}

// CurrentToken returns a fresh access token, refreshing first when the
// held one is expired. Safe for concurrent callers; at most one refresh
// is in flight and callers observe either the pre- or post-refresh
// token, never a torn state.
func (l *Lifecycle) CurrentToken(ctx context.Context) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.expiredLocked() {
		if err := l.refreshLocked(ctx); err != nil {
			return "", err
		}
	}
	return l.token, nil
}

// IsExpired reports whether the held token's exp claim has lapsed. A
// missing or undecodable token counts as expired (fail closed).
func (l *Lifecycle) IsExpired() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.expiredLocked()
}

// RefreshIfNeeded refreshes the token when expired and reports whether
// a refresh actually happened. Idempotent back to back: a freshly
// issued token is not expired, so the second call is a no-op.
func (l *Lifecycle) RefreshIfNeeded(ctx context.Context) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.expiredLocked() {
		return false, nil
	}
	if err := l.refreshLocked(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Expiry returns the expiry instant reported by the issuer.
func (l *Lifecycle) Expiry() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.expiry
}

func (l *Lifecycle) expiredLocked() bool {
	if l.token == "" {
		return true
	}
	claims, err := decodeClaims(l.token)
	if err != nil {
		// Undecodable tokens degrade to "expired" rather than
		// crashing the session; the refresh attempt decides.
		l.log.Warn("failed to decode access token, treating as expired", "error", err)
		return true
	}
	exp, ok := expirationTime(claims)
	if !ok {
		// Absent exp claim counts as expired (fail closed).
		return true
	}
	return time.Now().After(exp.Add(-refreshSkew))
}

func (l *Lifecycle) refreshLocked(ctx context.Context) error {
	if l.refreshToken == "" {
		rt, err := l.provider.VerifyPassword(ctx, l.email, l.password)
		if err != nil {
			return errs.NewAuthError("password verification failed: " + err.Error())
		}
		l.refreshToken = rt
	}

	token, expiry, err := l.provider.ExchangeRefreshToken(ctx, l.refreshToken)
	if err != nil {
		return errs.NewAuthError("token refresh failed: " + err.Error())
	}

	l.token = token
	l.expiry = expiry
	l.log.Debug("access token refreshed", "expiry", expiry)
	return nil
}
