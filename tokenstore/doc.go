// Package tokenstore defines the persistence contract for JWT token pairs and
// ships three interchangeable backends.
//
// The auth token manager reads and writes tokens through the Store interface
// only, so the backend can be swapped per runtime without touching refresh
// logic: MemoryStore for tests and short-lived processes, FileStore for CLI
// tools that must survive restarts, and RedisStore for processes that share a
// session across instances.
//
// A missing key is not an error. Get returns an empty string with a nil error
// when nothing is stored, and Remove is a no-op when the key is already gone.
// Non-nil errors always mean the backend itself failed.
package tokenstore
