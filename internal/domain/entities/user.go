package entities

import (
	"time"
)

// User represents an anonymous identity in the system, keyed by the opaque
// cookie token. The name is optional and supplied by the user.
type User struct {
	ID        string    `json:"id" db:"id"`
	Name      *string   `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Profile is the API shape of an identity. Name and CreatedAt are nil when
// the identity has no stored row or the datastore is unreachable.
type Profile struct {
	ID        string     `json:"id"`
	Name      *string    `json:"name"`
	CreatedAt *time.Time `json:"created_at"`
}

// ProfileResult makes the degraded read/write path an explicit branch rather
// than a swallowed error: Degraded is true when the datastore was unreachable
// and the profile was synthesized from the cookie identity alone.
type ProfileResult struct {
	Profile
	Degraded bool `json:"degraded,omitempty"`
}
