// Package authtoken manages a JWT session: it persists an access/refresh
// token pair, hands out access tokens that are still valid, and transparently
// redeems the refresh token when the access token nears expiry.
//
// Tokens live in a pluggable store (see the tokenstore package) and nowhere
// else, so every decision reads the current state and several clients can
// share one session. Concurrent refresh demands are coalesced into a single
// network call whose outcome every waiting caller receives.
//
// # Features
//
//   - Proactive refresh inside a configurable expiry buffer (default 30s
//     before expiry), reading the exp claim without signature verification
//   - Single-flight refresh: one network call per expiry, no thundering herd
//   - Session operations: SetAuthTokens, DeleteAuthTokens, IsAuthenticated
//   - Pluggable request shaping, token extraction, and token attachment
//   - One failure callback per failed refresh, for centralized logout
//   - oauth2.TokenSource adapter and gRPC client interceptors
//   - Optional zerolog logging of refresh lifecycle events
//
// # Quick Start
//
//	manager, err := authtoken.New(tokenstore.NewMemoryStore(), authtoken.Config{
//	    BaseURL:         "https://api.example.com",
//	    RefreshEndpoint: "/auth/refresh",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// After login, hand the issued pair to the manager.
//	if err := manager.SetAuthTokens(ctx, accessToken, refreshToken); err != nil {
//	    log.Fatal(err)
//	}
//
//	// From here on, AccessToken always returns a usable token,
//	// refreshing behind the scenes when needed.
//	token, err := manager.AccessToken(ctx)
//
// Most programs never call AccessToken themselves and instead wrap an
// *http.Client with the httpclient package, which attaches tokens and
// retries 401 responses automatically.
//
// # Notes
//
//   - The refresh call runs detached from the triggering caller's context,
//     bounded by Config.RefreshTimeout, so one cancelled caller cannot
//     abort a refresh other callers are waiting on.
//   - IsAuthenticated never returns an error; use AccessToken when the
//     failure cause matters.
package authtoken
