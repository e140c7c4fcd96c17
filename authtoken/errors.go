package authtoken

import (
	"errors"
	"fmt"
)

var (
	// ErrNoAccessToken is returned by the freshness gate when the store holds
	// no access token at all. Nothing is refreshed in that case; a session
	// must first be established with SetAuthTokens.
	ErrNoAccessToken = errors.New("authtoken: no access token in store")

	// ErrNoRefreshToken is returned when a refresh is needed but the store
	// holds no refresh token to redeem.
	ErrNoRefreshToken = errors.New("authtoken: no refresh token in store")

	// ErrInvalidRefreshResponse is returned when the refresh endpoint
	// answered successfully but the response did not yield both tokens.
	// Nothing is persisted in that case.
	ErrInvalidRefreshResponse = errors.New("authtoken: refresh response is missing tokens")
)

// RefreshTransportError reports a refresh call that never produced a usable
// response: the request failed in transport, or the endpoint answered with a
// non-2xx status.
//
// Use errors.As to get at the status code and response body:
//
//	var rte *authtoken.RefreshTransportError
//	if errors.As(err, &rte) && rte.StatusCode == http.StatusForbidden {
//	    // refresh token revoked, force a new login
//	}
type RefreshTransportError struct {
	// StatusCode is the HTTP status of the refresh response, or 0 when the
	// request failed before a response arrived.
	StatusCode int

	// Body holds a bounded snippet of the response body for non-2xx
	// responses, for diagnostics.
	Body []byte

	// Err is the underlying transport error, if any.
	Err error
}

// Error implements the error interface.
func (e *RefreshTransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authtoken: refresh request failed: %v", e.Err)
	}

	return fmt.Sprintf("authtoken: refresh endpoint returned status %d", e.StatusCode)
}

// Unwrap exposes the transport cause for errors.Is and errors.As.
func (e *RefreshTransportError) Unwrap() error {
	return e.Err
}
