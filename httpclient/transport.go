package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/sashithacj/axios-spring/authtoken"
)

// retriedKey marks a request context once the request has been retried after
// a 401, so no request is ever retried twice.
type retriedKey struct{}

// Transport is an http.RoundTripper that makes a plain HTTP client
// session-aware: it attaches a fresh access token to every outgoing request
// and, when the server answers 401 anyway, refreshes the session once and
// retries the request with the new token.
//
// It wraps an existing transport (typically http.DefaultTransport) and is
// what Builder installs into the clients it produces.
type Transport struct {
	// Base is the underlying HTTP transport. If nil, http.DefaultTransport is used.
	Base http.RoundTripper

	// TokenManager supplies and refreshes access tokens.
	TokenManager *authtoken.Manager

	// DisableRetryOn401 turns off the refresh-and-retry reaction to 401
	// responses, leaving only token attachment.
	DisableRetryOn401 bool

	// Logger receives attachment and retry decisions. If nil, logging is
	// disabled.
	Logger *zerolog.Logger
}

// NewTransport creates a Transport with the given token manager.
// The base transport defaults to http.DefaultTransport if not specified.
func NewTransport(m *authtoken.Manager, base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}

	return &Transport{
		Base:         base,
		TokenManager: m,
	}
}

// RoundTrip implements http.RoundTripper.
//
// When no valid token can be produced the request goes out unauthenticated;
// what an unauthenticated call means is the server's decision, and a token
// problem must never block the request pipeline. Transport-level errors
// propagate unchanged.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.TokenManager == nil {
		return nil, fmt.Errorf("httpclient: TokenManager is nil")
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	ctx := req.Context()

	out := req
	if token, err := t.TokenManager.AccessToken(ctx); err == nil {
		// Clone before attaching so the caller's request stays untouched.
		out = req.Clone(ctx)
		t.TokenManager.ApplyAccessToken(out, token)
	} else {
		t.logger().Debug().Err(err).Msg("proceeding without access token")
	}

	resp, err := base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized || t.DisableRetryOn401 || ctx.Value(retriedKey{}) != nil {
		return resp, nil
	}

	return t.retryOnceWithFreshToken(req, resp, base)
}

// retryOnceWithFreshToken handles a 401: force the freshness gate with a
// zero buffer (the server just rejected the token, its claimed expiry no
// longer counts), re-attach and resend the original request exactly once.
// Whenever no retry is possible the original 401 response is returned
// untouched, so a refresh failure never masks the triggering failure.
func (t *Transport) retryOnceWithFreshToken(req *http.Request, unauthorized *http.Response, base http.RoundTripper) (*http.Response, error) {
	ctx := req.Context()

	token, err := t.TokenManager.FreshAccessToken(ctx, 0)
	if err != nil {
		t.logger().Debug().Err(err).Msg("no fresh token after 401, surfacing original response")
		return unauthorized, nil
	}

	retry, ok := replayableClone(context.WithValue(ctx, retriedKey{}, true), req)
	if !ok {
		t.logger().Debug().Msg("request body cannot be replayed, surfacing original response")
		return unauthorized, nil
	}
	t.TokenManager.ApplyAccessToken(retry, token)

	// The retry replaces the 401 response; release its connection.
	drainAndClose(unauthorized.Body)

	t.logger().Debug().Str("url", req.URL.String()).Msg("retrying request with refreshed token")

	return base.RoundTrip(retry)
}

// replayableClone clones req with ctx and rewinds its body. A request whose
// body was already consumed and cannot be reproduced through GetBody is not
// replayable.
func replayableClone(ctx context.Context, req *http.Request) (*http.Request, bool) {
	clone := req.Clone(ctx)

	if req.Body == nil || req.Body == http.NoBody {
		return clone, true
	}
	if req.GetBody == nil {
		return nil, false
	}

	body, err := req.GetBody()
	if err != nil {
		return nil, false
	}
	clone.Body = body

	return clone, true
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}

var nopLogger = zerolog.Nop()

func (t *Transport) logger() *zerolog.Logger {
	if t.Logger != nil {
		return t.Logger
	}

	return &nopLogger
}
