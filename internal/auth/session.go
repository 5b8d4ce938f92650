package auth

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Session is the authenticated user context for the whole process:
// identity read from the access token's unverified claims.
type Session struct {
	UserID string
	Email  string
	Name   string
}

// decodeClaims reads a token's claims without signature verification.
// The token came straight from the issuer over TLS; this client only
// needs the embedded identity and expiry.
func decodeClaims(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func sessionFromToken(token string) (*Session, error) {
	claims, err := decodeClaims(token)
	if err != nil {
		return nil, fmt.Errorf("decode access token: %w", err)
	}

	s := &Session{
		UserID: claimString(claims, "user_id"),
		Email:  claimString(claims, "email"),
		Name:   claimString(claims, "name"),
	}
	if s.UserID == "" {
		s.UserID = claimString(claims, "user_uuid")
	}
	return s, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}

func expirationTime(claims jwt.MapClaims) (time.Time, bool) {
	switch exp := claims["exp"].(type) {
	case float64:
		return time.Unix(int64(exp), 0), true
	case json.Number:
		n, err := exp.Int64()
		if err != nil {
			return time.Time{}, false
		}
		return time.Unix(n, 0), true
	default:
		return time.Time{}, false
	}
}
