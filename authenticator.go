package accounts

import (
	"context"
	stderrors "errors"

	"github.com/goliatone/go-errors"
)

// Auther orchestrates login and token-based identity resolution. It holds no
// mutable state beyond configuration, so a single instance is safe for
// unbounded concurrent use.
type Auther struct {
	store     UserStore
	validator *CredentialValidator
	tokens    TokenService
	logger    Logger
}

// NewAuthenticator returns a new Authenticator wired with a credential
// validator, bcrypt hasher, and token service built from the given config.
func NewAuthenticator(store UserStore, cfg Config) *Auther {
	logger := defLogger{}
	hasher := NewHasher(cfg.GetPasswordHashCost())

	return &Auther{
		store:     store,
		validator: NewCredentialValidator(store, hasher, cfg),
		tokens:    NewTokenService(cfg, logger),
		logger:    logger,
	}
}

var _ Authenticator = (*Auther)(nil)

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger == nil {
		return s
	}
	s.logger = logger
	s.validator.WithLogger(logger)
	if ts, ok := s.tokens.(*TokenServiceImpl); ok {
		ts.logger = logger
	}
	return s
}

// WithTokenService sets a custom token service for externally issued tokens.
func (s *Auther) WithTokenService(tokens TokenService) *Auther {
	if tokens != nil {
		s.tokens = tokens
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokens
}

// Login validates the credentials and issues a token on success. Lookup,
// password, and role failures all surface as ErrInvalidCredentials so a
// caller cannot distinguish unknown usernames from wrong passwords; only
// ErrAccountLocked passes through, since the lock reveals nothing the lookup
// did not already require. No state changes on failure.
func (s *Auther) Login(ctx context.Context, username, password, role string) (string, error) {
	user, err := s.validator.Validate(ctx, username, password, role)
	if err != nil {
		s.logger.Error("Login validate credentials error", "username", username, "error", err)

		if stderrors.Is(err, ErrAccountLocked) {
			return "", ErrAccountLocked
		}
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(NewIdentityFromUser(user))
	if err != nil {
		s.logger.Error("Login token issuance error", "username", username, "error", err)
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to issue token")
	}

	return token, nil
}

// Resolve verifies the token and loads the user record its subject names.
// Token errors pass through unchanged; they reveal nothing about account
// existence. A verified token whose subject no longer exists yields
// ErrUserNotFound, an expected condition when an account is removed between
// issuance and use.
func (s *Auther) Resolve(ctx context.Context, token string) (*User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		s.logger.Debug("Resolve token verification failed", "error", err)
		return nil, err
	}

	user, err := s.store.FindByUsername(ctx, claims.Subject())
	if err != nil {
		if errors.IsNotFound(err) {
			s.logger.Debug("Resolve token subject no longer exists", "subject", claims.Subject())
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user for token subject")
	}

	return user, nil
}
