package authtoken

import (
	"context"

	"golang.org/x/oauth2"
)

// TokenSource adapts the manager to the golang.org/x/oauth2 ecosystem, so
// the managed session can feed oauth2.NewClient, gRPC per-RPC credentials,
// and other TokenSource consumers.
//
// Unlike the HTTP transport, a TokenSource has no way to proceed
// unauthenticated: Token returns an error when no valid access token can be
// produced. The provided context applies to every Token call.
func (m *Manager) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &tokenSource{ctx: ctx, manager: m}
}

type tokenSource struct {
	ctx     context.Context
	manager *Manager
}

// Token implements oauth2.TokenSource.
func (ts *tokenSource) Token() (*oauth2.Token, error) {
	access, claims, err := ts.manager.freshToken(ts.ctx, ts.manager.cfg.ExpiryBuffer)
	if err != nil {
		return nil, err
	}

	token := &oauth2.Token{AccessToken: access, TokenType: "Bearer"}
	if claims != nil {
		token.Expiry = claims.ExpiresAt.Time
	}

	return token, nil
}
