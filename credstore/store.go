package credstore

import "context"

// Current session record layout.
const (
	// KeyToken stores the opaque bearer credential.
	KeyToken = "token"
	// KeyIdentity stores the JSON-serialized identity blob.
	KeyIdentity = "identity"
	// KeyRole stores the session role wire value.
	KeyRole = "role"
)

// Deprecated admin-only layout, read once at initialization and then deleted.
const (
	// LegacyKeyToken is the pre-migration bearer credential key.
	LegacyKeyToken = "admin_token"
	// LegacyKeyIdentity is the pre-migration identity blob key.
	LegacyKeyIdentity = "admin_info"
	// LegacyKeyRole is the pre-migration role key.
	LegacyKeyRole = "admin_role"
)

// CurrentKeys returns the current record layout in a fixed order.
func CurrentKeys() []string {
	return []string{KeyToken, KeyIdentity, KeyRole}
}

// LegacyKeys returns the deprecated record layout in a fixed order.
func LegacyKeys() []string {
	return []string{LegacyKeyToken, LegacyKeyIdentity, LegacyKeyRole}
}

// AllKeys returns every key either layout may occupy.
func AllKeys() []string {
	return append(CurrentKeys(), LegacyKeys()...)
}

// Store is the durable mirror of the in-memory session. Operations are
// batched so a multi-key commit or migration is a single store call.
type Store interface {
	// Load returns the values present for the requested keys. Keys with no
	// stored value are absent from the result; Load never invents entries.
	Load(ctx context.Context, keys ...string) (map[string]string, error)

	// Save writes every entry of values. Entries overwrite existing values.
	Save(ctx context.Context, values map[string]string) error

	// Delete removes the given keys. Deleting an absent key is not an error.
	Delete(ctx context.Context, keys ...string) error
}
