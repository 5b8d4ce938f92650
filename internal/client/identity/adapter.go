// Package identity wraps the Google Identity Toolkit endpoints Spendee
// uses for consumer sign-in: password verification and refresh-token
// exchange. The admin-side Firebase SDK does not expose either, so the
// two calls are made directly.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultVerifyURL = "https://www.googleapis.com/identitytoolkit/v3/relyingparty/verifyPassword"
	defaultTokenURL  = "https://securetoken.googleapis.com/v1/token"
)

type Adapter struct {
	apiKey     string
	httpClient *http.Client

	// Overridable for tests.
	verifyURL string
	tokenURL  string
}

func NewAdapter(apiKey string) *Adapter {
	return &Adapter{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		verifyURL:  defaultVerifyURL,
		tokenURL:   defaultTokenURL,
	}
}

// VerifyPassword exchanges email+password for a long-lived refresh token.
func (a *Adapter) VerifyPassword(ctx context.Context, email, password string) (string, error) {
	payload := map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}

	var resp struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := a.post(ctx, a.verifyURL, payload, &resp); err != nil {
		return "", err
	}
	return resp.RefreshToken, nil
}

// ExchangeRefreshToken trades a refresh token for a fresh access token
// and its expiry instant.
func (a *Adapter) ExchangeRefreshToken(ctx context.Context, refreshToken string) (string, time.Time, error) {
	payload := map[string]any{
		"refresh_token": refreshToken,
		"grant_type":    "refresh_token",
	}

	var resp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   string `json:"expires_in"`
	}
	if err := a.post(ctx, a.tokenURL, payload, &resp); err != nil {
		return "", time.Time{}, err
	}

	expiry := time.Time{}
	if d, err := time.ParseDuration(resp.ExpiresIn + "s"); err == nil {
		expiry = time.Now().Add(d)
	}
	return resp.AccessToken, expiry, nil
}

func (a *Adapter) post(ctx context.Context, url string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url+"?key="+a.apiKey, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("identity endpoint returned %d: %s", resp.StatusCode, msg)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
