package accounts

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the decoded payload of an identity token. Subject carries the
// username, so a verified token resolves to an account without a store
// lookup at verification time.
type Claims struct {
	jwt.RegisteredClaims
	UserRole UserRole `json:"role,omitempty"`
}

// Subject returns the subject claim, the account username.
func (c *Claims) Subject() string {
	return c.RegisteredClaims.Subject
}

// Role returns the role claim.
func (c *Claims) Role() UserRole {
	return c.UserRole
}

// HasRole checks the role claim by value.
func (c *Claims) HasRole(role UserRole) bool {
	return c.UserRole == role
}

// Expires returns the expiration time
func (c *Claims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *Claims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
