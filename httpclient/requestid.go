package httpclient

import (
	"net/http"

	"github.com/google/uuid"
)

// DefaultRequestIDHeader is the header RequestIDTransport stamps generated
// IDs into.
const DefaultRequestIDHeader = "X-Request-ID"

// RequestIDTransport assigns each outgoing request a unique ID so that a
// request and its post-401 retry can be correlated in server logs. An ID
// already set by the caller is preserved.
//
// Builder places this transport outside Transport, which means the retry of
// a request carries the same ID as the original attempt.
type RequestIDTransport struct {
	// Base is the underlying HTTP transport. If nil, http.DefaultTransport is used.
	Base http.RoundTripper

	// Header is the header carrying the ID. If empty, DefaultRequestIDHeader
	// is used.
	Header string
}

// RoundTrip implements http.RoundTripper.
func (t *RequestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	header := t.Header
	if header == "" {
		header = DefaultRequestIDHeader
	}

	if req.Header.Get(header) != "" {
		return base.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	clone.Header.Set(header, uuid.NewString())

	return base.RoundTrip(clone)
}
