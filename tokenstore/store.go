package tokenstore

import "context"

// Store is the key-value contract the token manager persists tokens through.
//
// Implementations must be safe for concurrent use. Absence is part of the
// contract, not a failure: Get returns ("", nil) for keys that were never set
// or were removed, and Remove succeeds when there is nothing to remove.
type Store interface {
	// Get returns the value stored under key, or an empty string with a nil
	// error when the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes the value stored under key. Removing an absent key is
	// not an error.
	Remove(ctx context.Context, key string) error
}
