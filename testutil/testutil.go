// Package testutil provides shared helpers for tests across the module.
package testutil

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sashithacj/axios-spring/tokenstore"
)

// signingKey signs minted test tokens. The library never verifies signatures,
// but signed tokens keep the fixtures structurally real.
var signingKey = []byte("testutil-signing-key")

// NewLocalHTTPServer starts an HTTP server bound to IPv4 loopback only.
// Some CI sandboxes cannot bind IPv6 loopback, so force tcp4 to keep tests runnable.
func NewLocalHTTPServer(tb testing.TB, handler http.Handler) *httptest.Server {
	tb.Helper()

	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		tb.Fatalf("failed to create IPv4 listener: %v", err)
	}

	server := httptest.NewUnstartedServer(handler)
	server.Listener = listener
	server.Start()
	tb.Cleanup(server.Close)

	return server
}

// RoundTripFunc allows inlining http.RoundTripper implementations.
type RoundTripFunc func(*http.Request) (*http.Response, error)

// RoundTrip calls the underlying function.
func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// MintAccessToken returns a signed JWT whose exp claim lies ttl from now.
// A negative ttl produces an already expired token.
func MintAccessToken(tb testing.TB, ttl time.Duration) string {
	tb.Helper()

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		tb.Fatalf("failed to sign test token: %v", err)
	}

	return token
}

// MintTokenWithoutExpiry returns a signed JWT that carries no exp claim.
func MintTokenWithoutExpiry(tb testing.TB) string {
	tb.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
	}).SignedString(signingKey)
	if err != nil {
		tb.Fatalf("failed to sign test token: %v", err)
	}

	return token
}

// RefreshServer is a local HTTP server standing in for a token refresh
// endpoint. It counts how many times it was hit, which is what most refresh
// tests assert on.
type RefreshServer struct {
	*httptest.Server

	calls atomic.Int32
}

// NewRefreshServer starts a RefreshServer delegating to handler.
func NewRefreshServer(tb testing.TB, handler http.HandlerFunc) *RefreshServer {
	tb.Helper()

	rs := &RefreshServer{}
	rs.Server = NewLocalHTTPServer(tb, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.calls.Add(1)
		handler(w, r)
	}))

	return rs
}

// Calls reports how many requests the server has received.
func (rs *RefreshServer) Calls() int {
	return int(rs.calls.Load())
}

// ServeTokenPair returns a handler answering every request with a freshly
// minted token pair. The minted access token expires accessTTL from the
// moment of the request.
func ServeTokenPair(tb testing.TB, accessTTL time.Duration) http.HandlerFunc {
	tb.Helper()

	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"accessToken":  MintAccessToken(tb, accessTTL),
			"refreshToken": "rotated-refresh-token",
		})
	}
}

// StaticJSONResponse returns a handler that always answers with the provided
// status and JSON body.
func StaticJSONResponse(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// CountingStore wraps a tokenstore.Store and counts writes, so tests can
// assert that failed refreshes never touch storage.
type CountingStore struct {
	tokenstore.Store

	sets    atomic.Int32
	removes atomic.Int32
}

// NewCountingStore wraps inner.
func NewCountingStore(inner tokenstore.Store) *CountingStore {
	return &CountingStore{Store: inner}
}

// Set implements tokenstore.Store.
func (s *CountingStore) Set(ctx context.Context, key, value string) error {
	s.sets.Add(1)
	return s.Store.Set(ctx, key, value)
}

// Remove implements tokenstore.Store.
func (s *CountingStore) Remove(ctx context.Context, key string) error {
	s.removes.Add(1)
	return s.Store.Remove(ctx, key)
}

// Sets reports how many Set calls the store has seen.
func (s *CountingStore) Sets() int {
	return int(s.sets.Load())
}

// Removes reports how many Remove calls the store has seen.
func (s *CountingStore) Removes() int {
	return int(s.removes.Load())
}
