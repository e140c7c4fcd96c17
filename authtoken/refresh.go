package authtoken

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	// maxRefreshBodyBytes caps how much of a refresh response is read.
	maxRefreshBodyBytes = 1 << 20

	// errorBodySnippet caps how much body a RefreshTransportError carries.
	errorBodySnippet = 512
)

// refreshAuthTokens redeems the stored refresh token for a new pair and
// persists it. It executes once per invocation and does not deduplicate;
// coalescing concurrent demands is sharedRefresh's job.
//
// On success the store receives exactly one write per token. On any failure
// nothing is written, so a bad refresh never clobbers the stored session.
func (m *Manager) refreshAuthTokens(ctx context.Context) (TokenPair, error) {
	refreshToken, err := m.store.Get(ctx, m.cfg.RefreshTokenKey)
	if err != nil {
		return TokenPair{}, err
	}
	if refreshToken == "" {
		return TokenPair{}, ErrNoRefreshToken
	}

	req, err := m.cfg.BuildRefreshRequest(ctx, m.refreshURL, refreshToken)
	if err != nil {
		return TokenPair{}, fmt.Errorf("authtoken: build refresh request: %w", err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return TokenPair{}, &RefreshTransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRefreshBodyBytes))
	if err != nil {
		return TokenPair{}, &RefreshTransportError{Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet := body
		if len(snippet) > errorBodySnippet {
			snippet = snippet[:errorBodySnippet]
		}
		return TokenPair{}, &RefreshTransportError{StatusCode: resp.StatusCode, Body: snippet}
	}

	pair, err := m.cfg.ExtractTokens(resp, body)
	if err != nil {
		return TokenPair{}, fmt.Errorf("%w: %v", ErrInvalidRefreshResponse, err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		return TokenPair{}, ErrInvalidRefreshResponse
	}

	if err := m.store.Set(ctx, m.cfg.AccessTokenKey, pair.AccessToken); err != nil {
		return TokenPair{}, err
	}
	if err := m.store.Set(ctx, m.cfg.RefreshTokenKey, pair.RefreshToken); err != nil {
		return TokenPair{}, err
	}

	return pair, nil
}

// defaultAttachAccessToken sets the standard bearer Authorization header.
func defaultAttachAccessToken(req *http.Request, accessToken string) {
	req.Header.Set("Authorization", "Bearer "+accessToken)
}

// defaultBuildRefreshRequest posts the refresh token as a JSON body.
func defaultBuildRefreshRequest(ctx context.Context, refreshURL, refreshToken string) (*http.Request, error) {
	payload, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, refreshURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// defaultExtractTokens reads the new pair off the JSON response body.
func defaultExtractTokens(_ *http.Response, body []byte) (TokenPair, error) {
	var payload struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: payload.AccessToken, RefreshToken: payload.RefreshToken}, nil
}
