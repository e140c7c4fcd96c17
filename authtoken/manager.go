package authtoken

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/sashithacj/axios-spring/tokenstore"
)

// refreshFlight is the singleflight key coalescing refreshes. A Manager owns
// exactly one session, so a single fixed key is enough.
const refreshFlight = "refresh"

// Manager owns one JWT session: the stored access/refresh token pair, the
// decision when the access token needs refreshing, and the refresh call
// itself. The store is the single source of truth; the manager keeps no
// token copy of its own, so several processes sharing one store (for
// example through Redis) see each other's refreshes.
//
// A Manager is safe for concurrent use. Concurrent refresh demands are
// coalesced into one network call and every waiting caller receives the
// same outcome.
type Manager struct {
	store      tokenstore.Store
	cfg        Config
	refreshURL string
	client     *http.Client
	log        zerolog.Logger

	sf singleflight.Group
}

// New creates a Manager persisting through store. BaseURL and
// RefreshEndpoint must be set; see Config for the defaults applied to
// everything else.
func New(store tokenstore.Store, cfg Config) (*Manager, error) {
	if store == nil {
		return nil, errors.New("authtoken: store is required")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("authtoken: BaseURL is required")
	}
	if cfg.RefreshEndpoint == "" {
		return nil, errors.New("authtoken: RefreshEndpoint is required")
	}

	cfg = cfg.withDefaults()

	refreshURL, err := resolveRefreshURL(cfg.BaseURL, cfg.RefreshEndpoint)
	if err != nil {
		return nil, fmt.Errorf("authtoken: resolve refresh URL: %w", err)
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}

	return &Manager{
		store:      store,
		cfg:        cfg,
		refreshURL: refreshURL,
		client:     client,
		log:        log,
	}, nil
}

// SetAuthTokens unconditionally overwrites both stored tokens, establishing
// a new session. Call it after login with the pair the server issued.
func (m *Manager) SetAuthTokens(ctx context.Context, accessToken, refreshToken string) error {
	if err := m.store.Set(ctx, m.cfg.AccessTokenKey, accessToken); err != nil {
		return err
	}

	return m.store.Set(ctx, m.cfg.RefreshTokenKey, refreshToken)
}

// DeleteAuthTokens removes both stored tokens. Deleting an already empty
// session is not an error, so every logout path can call it unconditionally.
func (m *Manager) DeleteAuthTokens(ctx context.Context) error {
	return errors.Join(
		m.store.Remove(ctx, m.cfg.AccessTokenKey),
		m.store.Remove(ctx, m.cfg.RefreshTokenKey),
	)
}

// IsAuthenticated reports whether a usable session exists, refreshing the
// access token first when it is stale. It returns the decoded claims of the
// valid access token, or nil when no valid session could be produced:
// nothing stored, an undecodable token, or a failed refresh. It never
// returns an error; callers that need the cause should use AccessToken.
func (m *Manager) IsAuthenticated(ctx context.Context) *Claims {
	_, claims, err := m.freshToken(ctx, m.cfg.ExpiryBuffer)
	if err != nil {
		return nil
	}

	return claims
}

// AccessToken returns an access token still valid beyond the configured
// expiry buffer, refreshing it first when needed.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	token, _, err := m.freshToken(ctx, m.cfg.ExpiryBuffer)
	return token, err
}

// FreshAccessToken is AccessToken with an explicit buffer. A zero buffer
// refreshes only tokens already expired or expiring this instant, which is
// what 401 recovery wants after the server has rejected a token. A negative
// buffer is treated as zero.
func (m *Manager) FreshAccessToken(ctx context.Context, buffer time.Duration) (string, error) {
	if buffer < 0 {
		buffer = 0
	}

	token, _, err := m.freshToken(ctx, buffer)
	return token, err
}

// ApplyAccessToken applies the configured attachment strategy to req,
// by default the standard bearer Authorization header.
func (m *Manager) ApplyAccessToken(req *http.Request, accessToken string) {
	m.cfg.AttachAccessToken(req, accessToken)
}

// freshToken is the freshness gate. It reads the stored access token and
// returns it with its claims when more than buffer remains before expiry;
// otherwise it triggers a refresh, or joins the one already in flight, and
// returns the refreshed token.
//
// Claims are nil in one case: the refresh endpoint returned a token whose
// expiry cannot be decoded. The token is still handed over as received,
// while claim consumers like IsAuthenticated treat the session as invalid.
func (m *Manager) freshToken(ctx context.Context, buffer time.Duration) (string, *Claims, error) {
	access, err := m.store.Get(ctx, m.cfg.AccessTokenKey)
	if err != nil {
		return "", nil, err
	}
	if access == "" {
		return "", nil, ErrNoAccessToken
	}

	claims, err := decodeClaims(access)
	if err != nil {
		// An undecodable stored token means no valid session, not a
		// reason to spend a refresh call.
		return "", nil, err
	}

	if claims.TimeLeft(time.Now()) > buffer {
		return access, claims, nil
	}

	pair, err := m.sharedRefresh(ctx)
	if err != nil {
		return "", nil, err
	}

	newClaims, err := decodeClaims(pair.AccessToken)
	if err != nil {
		return pair.AccessToken, nil, nil
	}

	return pair.AccessToken, newClaims, nil
}

// sharedRefresh coalesces concurrent refresh demands into one network call.
// Every caller waiting on the same flight observes the same pair or the
// same error, and OnRefreshFailure fires once per flight, not once per
// waiter.
func (m *Manager) sharedRefresh(ctx context.Context) (TokenPair, error) {
	ch := m.sf.DoChan(refreshFlight, func() (any, error) {
		// The outcome is shared, so one caller's cancellation must not
		// abort the refresh for everyone else. RefreshTimeout still bounds
		// the detached call.
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.cfg.RefreshTimeout)
		defer cancel()

		pair, err := m.refreshAuthTokens(rctx)
		if err != nil {
			m.log.Warn().Err(err).Msg("token refresh failed")
			if m.cfg.OnRefreshFailure != nil {
				m.cfg.OnRefreshFailure(err)
			}
			return TokenPair{}, err
		}

		m.log.Debug().Msg("auth tokens refreshed")
		return pair, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return TokenPair{}, res.Err
		}
		return res.Val.(TokenPair), nil
	case <-ctx.Done():
		// This caller stops waiting. The flight carries on and still
		// persists its outcome for later calls.
		return TokenPair{}, ctx.Err()
	}
}
