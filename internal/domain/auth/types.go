// Package auth contains domain-level types for request identity.
// It is pure and free of framework/adapter concerns.
package auth

import (
	"errors"
	"time"
)

// ErrInvalidToken is returned when a presented token cannot be trusted.
var ErrInvalidToken = errors.New("invalid identity token")

// Identity is the authenticated principal extracted from a verified token.
// Adapters map provider-specific claims into this shape.
type Identity struct {
	UserID    string
	ExpiresAt time.Time // zero when the token carries no expiry
}

// Expired reports whether the identity is past its expiry at now.
func (i Identity) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}
