// Package httpclient offers HTTP client construction helpers with transparent
// session handling.
//
// It provides a fluent Builder that can create an http.Client whose transport
// attaches a valid access token to every request (refreshing proactively when
// the token is close to expiry), retries a request once with a freshly
// refreshed token when the server answers 401, and stamps requests with an ID
// for log correlation. Transport and RequestIDTransport can also wrap any
// RoundTripper directly.
//
// # Features
//
//   - Fluent builder for http.Client with automatic Bearer token attachment
//   - Single refresh-and-retry on 401, off by WithoutRetryOn401
//   - Request IDs on outgoing requests, shared between an attempt and its retry
//   - Custom timeouts, base transport override, and redirect disabling
//   - Reusable Transport for manual composition
//
// # Quick Start
//
//	store := tokenstore.NewMemoryStore()
//	m, err := authtoken.New(store, authtoken.Config{
//	    BaseURL:         "https://api.example.com",
//	    RefreshEndpoint: "/auth/refresh",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client, err := httpclient.NewBuilder().
//	    WithTokenManager(m).
//	    WithTimeout(60 * time.Second).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := client.Get("https://api.example.com/profile")
//
// # Manual Transport Wrapping
//
//	transport := httpclient.NewTransport(m, nil)
//	client := &http.Client{Transport: transport}
//
// A request that cannot be authenticated (no session, undecodable token,
// failed refresh) is sent without an Authorization header rather than being
// blocked; the server's 401 then drives the retry path. Requests whose bodies
// cannot be replayed through GetBody are never retried.
//
// All components are safe for concurrent use.
package httpclient
