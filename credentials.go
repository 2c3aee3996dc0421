package accounts

import (
	"context"

	"github.com/goliatone/go-errors"
)

// CredentialValidator verifies a username/password/role combination against
// the user store. It returns distinct error kinds so callers can log what
// actually failed; Auther is responsible for collapsing them before anything
// reaches an external caller.
type CredentialValidator struct {
	store       UserStore
	hasher      *Hasher
	defaultRole UserRole
	logger      Logger
}

// NewCredentialValidator will create a new CredentialValidator
func NewCredentialValidator(store UserStore, hasher *Hasher, cfg Config) *CredentialValidator {
	defaultRole := cfg.GetDefaultRole()
	if defaultRole == "" {
		defaultRole = DefaultRole
	}

	return &CredentialValidator{
		store:       store,
		hasher:      hasher,
		defaultRole: defaultRole,
		logger:      defLogger{},
	}
}

func (v *CredentialValidator) WithLogger(logger Logger) *CredentialValidator {
	if logger != nil {
		v.logger = logger
	}
	return v
}

// Validate runs the four checks in fixed order: lookup, password, role,
// active status. It short-circuits at the first failure. An empty
// requestedRole falls back to the configured default.
func (v *CredentialValidator) Validate(ctx context.Context, username, password, requestedRole string) (*User, error) {
	if requestedRole == "" {
		requestedRole = v.defaultRole
	}

	user, err := v.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.IsNotFound(err) {
			v.logger.Debug("credential check failed: unknown username", "username", username)
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if err := v.hasher.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		v.logger.Debug("credential check failed: password mismatch", "username", username)
		return nil, ErrInvalidCredentials
	}

	if requestedRole != user.Role {
		v.logger.Debug("credential check failed: role mismatch",
			"username", username, "requested", requestedRole, "actual", user.Role)
		return nil, ErrRoleMismatch
	}

	if !user.Active {
		v.logger.Debug("credential check failed: account locked", "username", username)
		return nil, ErrAccountLocked
	}

	return user, nil
}
