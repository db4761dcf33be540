package campusfound

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Role identifies which of the three mutually exclusive login procedures
// produced the session. LostItemAdmin and SuperAdmin are sibling members of
// the admin capability set; neither inherits the other's permissions.
type Role string

const (
	// RoleNormalUser is a regular campus user.
	RoleNormalUser Role = "normal_user"
	// RoleLostItemAdmin manages lost-item records.
	RoleLostItemAdmin Role = "lost_item_admin"
	// RoleSuperAdmin manages users and administrators.
	RoleSuperAdmin Role = "super_admin"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleNormalUser, RoleLostItemAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// Admin reports whether r belongs to the admin capability set.
func (r Role) Admin() bool {
	return r == RoleLostItemAdmin || r == RoleSuperAdmin
}

// String returns the role's wire value.
func (r Role) String() string {
	return string(r)
}

// Credentials is the username/password pair accepted by every login endpoint.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Identity is the server-issued profile blob. Its shape varies by role but it
// always carries an id. The blob is kept raw so persisting and restoring a
// session never loses server fields the SDK does not model.
type Identity struct {
	raw json.RawMessage
}

// IdentityFromJSON validates raw as a JSON object and wraps it. The id field
// is not required here — profile endpoints are trusted to include it — but
// the blob must at least parse.
func IdentityFromJSON(raw []byte) (Identity, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Identity{}, errors.New("identity payload is empty")
	}
	if trimmed[0] != '{' {
		return Identity{}, errors.New("identity payload must be a JSON object")
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return Identity{}, err
	}
	return Identity{raw: append(json.RawMessage(nil), trimmed...)}, nil
}

// IsZero reports whether the identity is absent.
func (id Identity) IsZero() bool {
	return len(id.raw) == 0
}

// Raw returns the untouched identity blob.
func (id Identity) Raw() json.RawMessage {
	return id.raw
}

// ID extracts the numeric id the identity blob always carries. It returns
// zero and false when the identity is absent or the field is missing.
func (id Identity) ID() (int64, bool) {
	if id.IsZero() {
		return 0, false
	}
	var probe struct {
		ID *json.Number `json:"id"`
	}
	if err := json.Unmarshal(id.raw, &probe); err != nil || probe.ID == nil {
		return 0, false
	}
	n, err := probe.ID.Int64()
	if err != nil {
		return 0, false
	}
	return n, true
}

// DisplayName returns the identity's name, falling back to its username, or
// an empty string when neither is present.
func (id Identity) DisplayName() string {
	if id.IsZero() {
		return ""
	}
	var probe struct {
		Name     string `json:"name"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(id.raw, &probe); err != nil {
		return ""
	}
	if probe.Name != "" {
		return probe.Name
	}
	return probe.Username
}

// MarshalJSON implements json.Marshaler.
func (id Identity) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	return id.raw, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *Identity) UnmarshalJSON(data []byte) error {
	parsed, err := IdentityFromJSON(data)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// SessionState is a point-in-time copy of the authoritative session record.
// Authenticated is true iff Token, Identity, and Role are all present; no
// reachable state has one or two of the three set while Authenticated is true.
type SessionState struct {
	Token         string
	Identity      Identity
	Role          Role
	Authenticated bool
}
