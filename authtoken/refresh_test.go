package authtoken

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sashithacj/axios-spring/testutil"
	"github.com/sashithacj/axios-spring/tokenstore"
)

func TestRefreshRequestContract(t *testing.T) {
	ctx := context.Background()

	rs := testutil.NewRefreshServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/refresh", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "refresh-1", body["refreshToken"])

		testutil.ServeTokenPair(t, 10*time.Minute)(w, r)
	})

	m := newManager(t, tokenstore.NewMemoryStore(), Config{BaseURL: rs.URL, RefreshEndpoint: "/auth/refresh"})
	seedSession(t, m, -time.Minute)

	_, err := m.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, rs.Calls())
}

func TestRefreshEndpointJoinedOntoBasePath(t *testing.T) {
	ctx := context.Background()

	rs := testutil.NewRefreshServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/auth/refresh", r.URL.Path)
		testutil.ServeTokenPair(t, 10*time.Minute)(w, r)
	})

	m := newManager(t, tokenstore.NewMemoryStore(), Config{
		BaseURL:         rs.URL + "/api/v2/",
		RefreshEndpoint: "auth/refresh",
	})
	seedSession(t, m, -time.Minute)

	_, err := m.AccessToken(ctx)
	require.NoError(t, err)
}

func TestAbsoluteRefreshEndpointOverridesBaseURL(t *testing.T) {
	ctx := context.Background()

	rs := testutil.NewRefreshServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/alt/refresh", r.URL.Path)
		testutil.ServeTokenPair(t, 10*time.Minute)(w, r)
	})

	m := newManager(t, tokenstore.NewMemoryStore(), Config{
		BaseURL:         "https://unreachable.example.com",
		RefreshEndpoint: rs.URL + "/alt/refresh",
	})
	seedSession(t, m, -time.Minute)

	_, err := m.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, rs.Calls())
}

func TestRefreshRejectedByEndpoint(t *testing.T) {
	ctx := context.Background()
	rs := testutil.NewRefreshServer(t, testutil.StaticJSONResponse(http.StatusForbidden, `{"error":"refresh token revoked"}`))
	m := newManager(t, tokenstore.NewMemoryStore(), Config{BaseURL: rs.URL, RefreshEndpoint: "/refresh"})

	seedSession(t, m, -time.Minute)

	_, err := m.AccessToken(ctx)
	require.Error(t, err)

	var rte *RefreshTransportError
	require.ErrorAs(t, err, &rte)
	assert.Equal(t, http.StatusForbidden, rte.StatusCode)
	assert.Contains(t, string(rte.Body), "revoked")
}

func TestRefreshConnectionFailure(t *testing.T) {
	ctx := context.Background()

	// Port 1 on loopback refuses connections immediately.
	m := newManager(t, tokenstore.NewMemoryStore(), Config{
		BaseURL:         "http://127.0.0.1:1",
		RefreshEndpoint: "/refresh",
	})
	seedSession(t, m, -time.Minute)

	_, err := m.AccessToken(ctx)
	require.Error(t, err)

	var rte *RefreshTransportError
	require.ErrorAs(t, err, &rte)
	assert.Zero(t, rte.StatusCode)
	assert.Error(t, rte.Unwrap())
}

func TestRefreshTimeoutBoundsStuckEndpoint(t *testing.T) {
	ctx := context.Background()
	rs := testutil.NewRefreshServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		testutil.ServeTokenPair(t, 10*time.Minute)(w, r)
	})

	m := newManager(t, tokenstore.NewMemoryStore(), Config{
		BaseURL:         rs.URL,
		RefreshEndpoint: "/refresh",
		RefreshTimeout:  50 * time.Millisecond,
	})
	seedSession(t, m, -time.Minute)

	start := time.Now()
	_, err := m.AccessToken(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 250*time.Millisecond, "the timeout must fire before the endpoint answers")
}

func TestCustomRefreshStrategies(t *testing.T) {
	ctx := context.Background()
	newAccess := testutil.MintAccessToken(t, 10*time.Minute)

	// The endpoint speaks a form-encoded dialect and answers with tokens in
	// response headers instead of a JSON body.
	rs := testutil.NewRefreshServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "refresh-1", r.PostForm.Get("refresh_token"))

		w.Header().Set("X-Access-Token", newAccess)
		w.Header().Set("X-Refresh-Token", "header-refresh")
		w.WriteHeader(http.StatusOK)
	})

	m := newManager(t, tokenstore.NewMemoryStore(), Config{
		BaseURL:         rs.URL,
		RefreshEndpoint: "/refresh",
		BuildRefreshRequest: func(ctx context.Context, refreshURL, refreshToken string) (*http.Request, error) {
			form := url.Values{
				"grant_type":    {"refresh_token"},
				"refresh_token": {refreshToken},
			}
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, refreshURL, strings.NewReader(form.Encode()))
			if err != nil {
				return nil, err
			}
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			return req, nil
		},
		ExtractTokens: func(resp *http.Response, _ []byte) (TokenPair, error) {
			return TokenPair{
				AccessToken:  resp.Header.Get("X-Access-Token"),
				RefreshToken: resp.Header.Get("X-Refresh-Token"),
			}, nil
		},
	})
	seedSession(t, m, -time.Minute)

	token, err := m.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, newAccess, token)
	assert.Equal(t, 1, rs.Calls())
}

func TestCustomExtractorFailureIsInvalidResponse(t *testing.T) {
	ctx := context.Background()
	rs := testutil.NewRefreshServer(t, testutil.StaticJSONResponse(http.StatusOK, `[]`))

	m := newManager(t, tokenstore.NewMemoryStore(), Config{BaseURL: rs.URL, RefreshEndpoint: "/refresh"})
	seedSession(t, m, -time.Minute)

	_, err := m.AccessToken(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRefreshResponse)
}
