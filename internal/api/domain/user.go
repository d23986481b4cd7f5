package domain

import "time"

// Role is the coarse authorization level carried in tokens and stored on
// the user row.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is a registered account. A user always has at least one way to
// authenticate: a password hash, a federated provider linkage, or both.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt encoded; empty for federated-only accounts
	Name         string
	Picture      string
	Role         Role
	Provider     string // federated provider name ("google", "github", ...)
	ProviderID   string // subject id asserted by the provider
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword reports whether the account can authenticate with a password.
func (u User) HasPassword() bool { return u.PasswordHash != "" }

// HasProvider reports whether the account is linked to a federated provider.
func (u User) HasProvider() bool { return u.Provider != "" && u.ProviderID != "" }

// Identity is the verified caller attached to a request after token
// verification. It is ephemeral and never persisted.
type Identity struct {
	ID    string
	Email string
	Name  string
	Role  Role
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// Owns reports whether the identity may act on a resource owned by ownerID:
// the owner always may, and admins override.
func (i Identity) Owns(ownerID string) bool {
	return i.IsAdmin() || i.ID == ownerID
}
