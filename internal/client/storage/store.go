// Package storage provides the two interchangeable key-value tiers holding
// session state: a durable tier backed by the local SQLite database and an
// ephemeral process-scoped tier. The session preference ("remember me")
// decides which tier holds the credential.
package storage

import "context"

// Store is a small string key-value tier.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value string) error

	// SetMany stores all pairs atomically.
	SetMany(ctx context.Context, values map[string]string) error

	// Delete removes key. Removing an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes everything held by the tier.
	Clear(ctx context.Context) error
}

// Well-known session keys.
const (
	KeyToken    = "session.token"
	KeyUser     = "session.user"
	KeyRemember = "session.remember"
)
