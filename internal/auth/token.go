package auth

import "github.com/google/uuid"

// NewToken generates an opaque session token. Tokens carry no claims; they
// are only meaningful as an equality match against the stored user row.
func NewToken() string {
	return uuid.NewString()
}
