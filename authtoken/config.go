package authtoken

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// Default configuration values applied by New.
const (
	// DefaultAccessTokenKey is the storage key for the access token.
	DefaultAccessTokenKey = "@axios-spring-access-token"

	// DefaultRefreshTokenKey is the storage key for the refresh token.
	DefaultRefreshTokenKey = "@axios-spring-refresh-token"

	// DefaultExpiryBuffer is how long before actual expiry a token is
	// already treated as stale.
	DefaultExpiryBuffer = 30 * time.Second

	// DefaultRefreshTimeout bounds one refresh call end to end.
	DefaultRefreshTimeout = 30 * time.Second
)

// TokenPair is one access/refresh token couple as exchanged with the refresh
// endpoint and persisted in the store.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AttachTokenFunc applies an access token to an outgoing request.
// The default sets "Authorization: Bearer <token>".
type AttachTokenFunc func(req *http.Request, accessToken string)

// BuildRefreshRequestFunc builds the HTTP request that redeems a refresh
// token. The default issues a POST to refreshURL with the JSON body
// {"refreshToken": "<token>"}.
type BuildRefreshRequestFunc func(ctx context.Context, refreshURL, refreshToken string) (*http.Request, error)

// ExtractTokensFunc pulls the new token pair out of a successful refresh
// response. body is the already read response body; resp is provided for
// implementations that read tokens from headers instead. The default decodes
// the JSON body {"accessToken": ..., "refreshToken": ...}.
type ExtractTokensFunc func(resp *http.Response, body []byte) (TokenPair, error)

// Config controls a Manager. BaseURL and RefreshEndpoint are required;
// everything else has working defaults.
type Config struct {
	// BaseURL is the API origin the refresh endpoint is resolved against,
	// e.g. "https://api.example.com".
	BaseURL string

	// RefreshEndpoint is the refresh path joined onto BaseURL, e.g.
	// "/auth/refresh". An absolute URL overrides BaseURL entirely.
	RefreshEndpoint string

	// ExpiryBuffer is how long before expiry a token is proactively
	// refreshed. Zero applies DefaultExpiryBuffer; a negative value disables
	// the buffer, refreshing only once the token has actually expired.
	ExpiryBuffer time.Duration

	// AccessTokenKey and RefreshTokenKey override the storage keys.
	AccessTokenKey  string
	RefreshTokenKey string

	// OnRefreshFailure is invoked with the raw refresh error exactly once
	// per failed refresh, no matter how many callers were waiting on it.
	// Typical use is forcing a logout when the refresh token is rejected.
	OnRefreshFailure func(error)

	// AttachAccessToken overrides how tokens are applied to requests.
	AttachAccessToken AttachTokenFunc

	// BuildRefreshRequest overrides how the refresh request is shaped.
	BuildRefreshRequest BuildRefreshRequestFunc

	// ExtractTokens overrides how the new pair is read off the refresh
	// response.
	ExtractTokens ExtractTokensFunc

	// HTTPClient issues refresh calls. If nil, a dedicated client is used.
	// Never pass a client built around this manager's transport; the
	// refresh call must not be intercepted itself.
	HTTPClient *http.Client

	// RefreshTimeout bounds one refresh call end to end, waiters included.
	// Zero applies DefaultRefreshTimeout.
	RefreshTimeout time.Duration

	// Logger receives refresh lifecycle events. If nil, logging is disabled.
	Logger *zerolog.Logger
}

// withDefaults returns a copy of the config with all optional fields filled.
func (c Config) withDefaults() Config {
	if c.AccessTokenKey == "" {
		c.AccessTokenKey = DefaultAccessTokenKey
	}
	if c.RefreshTokenKey == "" {
		c.RefreshTokenKey = DefaultRefreshTokenKey
	}
	if c.ExpiryBuffer == 0 {
		c.ExpiryBuffer = DefaultExpiryBuffer
	}
	if c.ExpiryBuffer < 0 {
		c.ExpiryBuffer = 0
	}
	if c.RefreshTimeout <= 0 {
		c.RefreshTimeout = DefaultRefreshTimeout
	}
	if c.AttachAccessToken == nil {
		c.AttachAccessToken = defaultAttachAccessToken
	}
	if c.BuildRefreshRequest == nil {
		c.BuildRefreshRequest = defaultBuildRefreshRequest
	}
	if c.ExtractTokens == nil {
		c.ExtractTokens = defaultExtractTokens
	}

	return c
}

// resolveRefreshURL joins BaseURL and RefreshEndpoint. An absolute endpoint
// wins, mirroring how HTTP client libraries treat absolute request URLs.
func resolveRefreshURL(baseURL, endpoint string) (string, error) {
	parsed, err := url.Parse(endpoint)
	if err == nil && parsed.IsAbs() {
		return endpoint, nil
	}

	return url.JoinPath(baseURL, endpoint)
}
