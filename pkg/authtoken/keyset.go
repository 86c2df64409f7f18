package authtoken

import (
	"context"
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"
)

// defaultRefreshInterval bounds how long fetched keys are reused before the
// endpoint is consulted again. Identity providers rotate keys rarely; an
// hour keeps verification off the network on virtually every request.
const defaultRefreshInterval = time.Hour

// KeySet fetches and caches the signing keys published at a JWKS endpoint.
// It is safe for concurrent use; at most one fetch runs at a time and
// verification reads the cached set.
type KeySet struct {
	url        string
	httpClient *http.Client
	refresh    time.Duration

	mu        sync.RWMutex
	keys      map[string]crypto.PublicKey
	expiresAt time.Time
}

// NewKeySet creates a key set backed by the given JWKS URL. A nil client
// gets a 10 second timeout; the zero refresh interval defaults to one hour.
func NewKeySet(url string, httpClient *http.Client) *KeySet {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &KeySet{
		url:        url,
		httpClient: httpClient,
		refresh:    defaultRefreshInterval,
	}
}

// SetRefreshInterval overrides the cache lifetime of a fetched key set.
// Intended for tests and short-rotation providers; not safe to call after
// the set is in use.
func (s *KeySet) SetRefreshInterval(d time.Duration) {
	if d > 0 {
		s.refresh = d
	}
}

// Key returns the public key with the given kid, fetching the key set when
// the cache is empty, stale, or does not contain the kid. An empty kid is
// accepted when the published set holds exactly one key.
func (s *KeySet) Key(ctx context.Context, kid string) (crypto.PublicKey, error) {
	s.mu.RLock()
	if time.Now().Before(s.expiresAt) {
		if key, ok := s.lookupLocked(kid); ok {
			s.mu.RUnlock()
			return key, nil
		}
	}
	s.mu.RUnlock()

	if err := s.fetch(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if key, ok := s.lookupLocked(kid); ok {
		return key, nil
	}
	return nil, fmt.Errorf("%w: kid %q", ErrKeyNotFound, kid)
}

// lookupLocked resolves kid against the cached keys. Callers hold s.mu.
func (s *KeySet) lookupLocked(kid string) (crypto.PublicKey, bool) {
	if kid == "" && len(s.keys) == 1 {
		for _, key := range s.keys {
			return key, true
		}
	}
	key, ok := s.keys[kid]
	return key, ok
}

func (s *KeySet) fetch(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Another request may have refreshed the set while we waited.
	if time.Now().Before(s.expiresAt) && len(s.keys) > 0 {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrKeySetUnavailable, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrKeySetUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %s", ErrKeySetUnavailable, resp.Status)
	}

	var doc struct {
		Keys []jwk `json:"keys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return fmt.Errorf("%w: %w", ErrKeySetUnavailable, err)
	}

	keys := make(map[string]crypto.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		key, err := k.publicKey()
		if err != nil {
			// A single unparseable key must not poison the whole set.
			continue
		}
		keys[k.Kid] = key
	}
	if len(keys) == 0 {
		return fmt.Errorf("%w: no usable keys at %s", ErrKeySetUnavailable, s.url)
	}

	s.keys = keys
	s.expiresAt = time.Now().Add(s.refresh)
	return nil
}

// jwk is the subset of RFC 7517 the gateway understands: RSA and P-256/P-384
// EC public keys.
type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Crv string `json:"crv"`
	N   string `json:"n"`
	E   string `json:"e"`
	X   string `json:"x"`
	Y   string `json:"y"`
}

func (k jwk) publicKey() (crypto.PublicKey, error) {
	switch k.Kty {
	case "RSA":
		n, err := base64URLUint(k.N)
		if err != nil {
			return nil, fmt.Errorf("invalid RSA modulus: %w", err)
		}
		e, err := base64URLUint(k.E)
		if err != nil {
			return nil, fmt.Errorf("invalid RSA exponent: %w", err)
		}
		return &rsa.PublicKey{N: n, E: int(e.Int64())}, nil
	case "EC":
		var curve elliptic.Curve
		switch k.Crv {
		case "P-256":
			curve = elliptic.P256()
		case "P-384":
			curve = elliptic.P384()
		default:
			return nil, fmt.Errorf("unsupported curve %q", k.Crv)
		}
		x, err := base64URLUint(k.X)
		if err != nil {
			return nil, fmt.Errorf("invalid EC x: %w", err)
		}
		y, err := base64URLUint(k.Y)
		if err != nil {
			return nil, fmt.Errorf("invalid EC y: %w", err)
		}
		return &ecdsa.PublicKey{Curve: curve, X: x, Y: y}, nil
	default:
		return nil, fmt.Errorf("unsupported key type %q", k.Kty)
	}
}

func base64URLUint(s string) (*big.Int, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}
