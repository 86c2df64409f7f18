package authtoken

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// validMethods is the signing-algorithm allow-list. Anything else is
// rejected before key lookup to prevent algorithm confusion.
var validMethods = []string{"RS256", "ES256"}

// Claims is the verified subset of a token the gateway acts on. Both fields
// are optional in the raw token; OrgID's absence is surfaced by Verify as
// ErrMissingOrganization, Subject's absence is left to the caller.
type Claims struct {
	OrgID   string
	Subject string
}

// Verifier validates a bearer token and returns its decoded claims.
type Verifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// tokenClaims maps the raw JWT payload. The identity provider scopes tokens
// to an organization via the org_id claim.
type tokenClaims struct {
	jwt.RegisteredClaims
	OrgID string `json:"org_id,omitempty"`
}

// JWKSVerifier verifies token signatures against a remotely published key
// set. Key fetching and caching are delegated to KeySet.
type JWKSVerifier struct {
	keys *KeySet
}

// NewVerifier creates a verifier backed by the given key set.
func NewVerifier(keys *KeySet) *JWKSVerifier {
	return &JWKSVerifier{keys: keys}
}

// Verify checks the token's signature and temporal claims, then extracts
// the organization and subject. A structurally valid, correctly signed
// token without an organization claim fails with ErrMissingOrganization;
// every other failure wraps ErrInvalidToken.
func (v *JWKSVerifier) Verify(ctx context.Context, token string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		return v.keys.Key(ctx, kid)
	}, jwt.WithValidMethods(validMethods))
	if err != nil {
		// Key-set outages are infrastructure failures, not token failures,
		// but both are terminal for the request; keep the distinction for
		// callers that log them differently.
		if errors.Is(err, ErrKeySetUnavailable) {
			return Claims{}, err
		}
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	tc, ok := parsed.Claims.(*tokenClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	claims := Claims{
		OrgID:   tc.OrgID,
		Subject: tc.Subject,
	}
	if claims.OrgID == "" {
		return claims, ErrMissingOrganization
	}
	return claims, nil
}
