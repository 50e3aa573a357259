package models

import "github.com/golang-jwt/jwt/v5"

// AccessClaims represents the JWT claims the auth provider issues for
// authenticated users. The subject claim carries the user id.
type AccessClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string `json:"email"`
	Role                 string `json:"role"` // "authenticated" or "anon"
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *AccessClaims) GetUserID() string {
	return c.Subject
}

// Identity is the acting identity resolved for a request. The zero value
// is the anonymous viewer.
type Identity struct {
	UserID string
}

// Authenticated reports whether the identity belongs to a signed-in user.
func (id Identity) Authenticated() bool {
	return id.UserID != ""
}
