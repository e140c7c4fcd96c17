package httpclient

import (
	"crypto/tls"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/sashithacj/axios-spring/authtoken"
)

// Builder provides a fluent interface for constructing HTTP clients whose
// requests carry a managed session: token attachment, proactive refresh and
// the 401 retry all happen inside the client's transport.
type Builder struct {
	// Session configuration
	tokenManager *authtoken.Manager
	retryOn401   bool
	logger       *zerolog.Logger

	// HTTP client configuration
	timeout         time.Duration
	baseTransport   http.RoundTripper
	requestIDs      bool
	requestIDHeader string
	followRedirects bool
}

// NewBuilder creates a new HTTP client builder.
func NewBuilder() *Builder {
	return &Builder{
		timeout:         30 * time.Second, // Default 30s timeout
		retryOn401:      true,
		requestIDs:      true,
		followRedirects: true,
	}
}

// WithTokenManager sets the token manager whose session authenticates the
// client's requests. A token manager is required to build a client.
func (b *Builder) WithTokenManager(m *authtoken.Manager) *Builder {
	b.tokenManager = m
	return b
}

// WithTimeout sets the request timeout for the HTTP client.
// Default is 30 seconds if not specified.
func (b *Builder) WithTimeout(timeout time.Duration) *Builder {
	b.timeout = timeout
	return b
}

// WithBaseTransport sets a custom base transport.
// This is useful for adding custom middleware, TLS settings or a custom
// connection pool.
func (b *Builder) WithBaseTransport(transport http.RoundTripper) *Builder {
	b.baseTransport = transport
	return b
}

// WithoutRetryOn401 disables the refresh-and-retry reaction to 401
// responses. Tokens are still attached to outgoing requests.
func (b *Builder) WithoutRetryOn401() *Builder {
	b.retryOn401 = false
	return b
}

// WithoutRequestIDs disables stamping outgoing requests with a generated
// request ID.
func (b *Builder) WithoutRequestIDs() *Builder {
	b.requestIDs = false
	return b
}

// WithRequestIDHeader sets the header used for generated request IDs.
// Default is DefaultRequestIDHeader.
func (b *Builder) WithRequestIDHeader(header string) *Builder {
	b.requestIDHeader = header
	return b
}

// WithLogger sets the logger used by the client's transport.
// By default, logging is disabled.
func (b *Builder) WithLogger(logger *zerolog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithoutRedirects disables automatic redirect following.
// By default, the client follows up to 10 redirects.
func (b *Builder) WithoutRedirects() *Builder {
	b.followRedirects = false
	return b
}

// Build constructs the HTTP client with the configured options.
//
// Returns:
//   - *http.Client: Configured HTTP client
//   - error: Error if configuration is invalid
func (b *Builder) Build() (*http.Client, error) {
	if b.tokenManager == nil {
		return nil, errors.New("httpclient: a token manager is required, set one with WithTokenManager")
	}

	// Build base transport
	transport := b.baseTransport
	if transport == nil {
		if httpTransport, ok := http.DefaultTransport.(*http.Transport); ok {
			httpTransport = httpTransport.Clone()

			// Set secure TLS defaults even when TLS is not explicitly configured
			httpTransport.TLSClientConfig = &tls.Config{
				MinVersion: tls.VersionTLS12,
			}

			transport = httpTransport
		} else {
			// Fallback to whatever default transport is configured (e.g., a test stub)
			transport = http.DefaultTransport
		}
	}

	// Wrap with the session-aware transport
	auth := NewTransport(b.tokenManager, transport)
	auth.DisableRetryOn401 = !b.retryOn401
	auth.Logger = b.logger
	transport = auth

	// Request IDs go outermost so a retry reuses the original request's ID
	if b.requestIDs {
		transport = &RequestIDTransport{
			Base:   transport,
			Header: b.requestIDHeader,
		}
	}

	// Build HTTP client
	client := &http.Client{
		Transport: transport,
		Timeout:   b.timeout,
	}

	// Configure redirect policy
	if !b.followRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return client, nil
}

// NewHTTPClient is a convenience function that creates an HTTP client bound
// to the given token manager's session.
// For more configuration options, use Builder instead.
//
// Example:
//
//	m, err := authtoken.New(store, authtoken.Config{
//		BaseURL:         "https://api.example.com",
//		RefreshEndpoint: "/auth/refresh",
//	})
//	if err != nil {
//		return err
//	}
//	client := httpclient.NewHTTPClient(m)
//	resp, err := client.Get("https://api.example.com/profile")
func NewHTTPClient(m *authtoken.Manager) *http.Client {
	return &http.Client{
		Transport: &RequestIDTransport{Base: NewTransport(m, nil)},
		Timeout:   30 * time.Second,
	}
}
