package authtoken

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sashithacj/axios-spring/testutil"
	"github.com/sashithacj/axios-spring/tokenstore"
)

func TestTokenSourceReturnsValidToken(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, tokenstore.NewMemoryStore(), Config{BaseURL: "https://api.example.com", RefreshEndpoint: "/refresh"})

	seeded := seedSession(t, m, 10*time.Minute)

	token, err := m.TokenSource(ctx).Token()
	require.NoError(t, err)

	assert.Equal(t, seeded, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.True(t, token.Valid(), "the adapted token must satisfy the oauth2 validity check")
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), token.Expiry, 5*time.Second)
}

func TestTokenSourceRefreshesStaleToken(t *testing.T) {
	ctx := context.Background()
	rs := testutil.NewRefreshServer(t, testutil.ServeTokenPair(t, 10*time.Minute))
	m := newManager(t, tokenstore.NewMemoryStore(), Config{BaseURL: rs.URL, RefreshEndpoint: "/refresh"})

	seeded := seedSession(t, m, -time.Minute)

	token, err := m.TokenSource(ctx).Token()
	require.NoError(t, err)
	assert.NotEqual(t, seeded, token.AccessToken)
	assert.Equal(t, 1, rs.Calls())
}

func TestTokenSourceErrorsWithoutSession(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, tokenstore.NewMemoryStore(), Config{BaseURL: "https://api.example.com", RefreshEndpoint: "/refresh"})

	_, err := m.TokenSource(ctx).Token()
	assert.ErrorIs(t, err, ErrNoAccessToken)
}
