package auth

import (
	"context"

	"golang.org/x/oauth2"
)

// tokenSource adapts the lifecycle to the oauth2.TokenSource interface
// the Firestore client options expect. The lifecycle itself stays
// independent of any store SDK.
type tokenSource struct {
	lifecycle *Lifecycle
}

func TokenSource(l *Lifecycle) oauth2.TokenSource {
	return &tokenSource{lifecycle: l}
}

func (ts *tokenSource) Token() (*oauth2.Token, error) {
	token, err := ts.lifecycle.CurrentToken(context.Background())
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
		Expiry:      ts.lifecycle.Expiry(),
	}, nil
}
