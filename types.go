package accounts

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of an identity
type Identity interface {
	ID() string
	Username() string
	Email() string
	Role() string
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Login(ctx context.Context, username, password, role string) (string, error)
	Resolve(ctx context.Context, token string) (*User, error)
}

// TokenService issues and verifies signed identity tokens. Verify is a pure
// function of token, key, and clock; it never touches storage.
type TokenService interface {
	Issue(identity Identity) (string, error)
	Verify(token string) (*Claims, error)
}

// UserStore is the persistence contract the core depends on. Uniqueness of
// username and email is enforced by the store; Save surfaces violations as
// ErrDuplicateUsername, ErrDuplicateEmail, or ErrConflict.
type UserStore interface {
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindAll(ctx context.Context) ([]*User, error)
	Save(ctx context.Context, user *User) (*User, error)
}

// FileStore persists opaque blobs (avatars) and hands back a reference the
// core threads through without interpreting.
type FileStore interface {
	Store(data []byte, suggestedName string) (string, error)
	Delete(ref string) error
	Exists(ref string) bool
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetTokenTTL() time.Duration
	GetPasswordHashCost() int
	GetDefaultRole() string
	GetIssuer() string
	GetAudience() []string
}

// StaticConfig is an immutable Config meant to be built once at startup and
// injected by constructor.
type StaticConfig struct {
	SigningKey       string
	TokenTTL         time.Duration
	PasswordHashCost int
	DefaultRole      string
	Issuer           string
	Audience         []string
}

func (c StaticConfig) GetSigningKey() string      { return c.SigningKey }
func (c StaticConfig) GetTokenTTL() time.Duration { return c.TokenTTL }
func (c StaticConfig) GetPasswordHashCost() int   { return c.PasswordHashCost }
func (c StaticConfig) GetDefaultRole() string     { return c.DefaultRole }
func (c StaticConfig) GetIssuer() string          { return c.Issuer }
func (c StaticConfig) GetAudience() []string      { return c.Audience }

var _ Config = StaticConfig{}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] ACCOUNTS "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] ACCOUNTS "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] ACCOUNTS "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] ACCOUNTS "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
