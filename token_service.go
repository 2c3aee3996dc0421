package accounts

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// DefaultTokenTTL applies when configuration leaves the TTL unset.
const DefaultTokenTTL = 24 * time.Hour

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	signingKey []byte
	ttl        time.Duration
	issuer     string
	audience   jwt.ClaimStrings
	logger     Logger
}

// NewTokenService creates a new TokenService instance. The signing key and
// TTL are fixed for the life of the service; key rotation is out of scope.
func NewTokenService(cfg Config, logger Logger) *TokenServiceImpl {
	if logger == nil {
		logger = defLogger{}
	}

	ttl := cfg.GetTokenTTL()
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}

	return &TokenServiceImpl{
		signingKey: []byte(cfg.GetSigningKey()),
		ttl:        ttl,
		issuer:     cfg.GetIssuer(),
		audience:   cfg.GetAudience(),
		logger:     logger,
	}
}

var _ TokenService = (*TokenServiceImpl)(nil)

// Issue creates a signed token asserting the identity's username as subject,
// with issued-at now and expiry now+TTL.
func (ts *TokenServiceImpl) Issue(identity Identity) (string, error) {
	if identity == nil {
		return "", errors.New("identity must not be nil", errors.CategoryInternal)
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    ts.issuer,
			Subject:   identity.Username(),
			Audience:  ts.audience,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
		},
		UserRole: identity.Role(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign token")
	}

	return signedString, nil
}

// Verify parses and validates a token string, returning structured claims.
// A token is valid iff the signature verifies and it has not expired; the
// subject claim must be present.
func (ts *TokenServiceImpl) Verify(tokenString string) (*Claims, error) {
	parserOptions := make([]jwt.ParserOption, 0, 2)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}
	if len(ts.audience) > 0 {
		parserOptions = append(parserOptions, jwt.WithAudience(ts.audience...))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService verify encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		ts.logger.Error("TokenService verify could not decode or validate claims")
		return nil, ErrTokenMalformed
	}

	if claims.Subject() == "" {
		return nil, ErrTokenMissingClaim
	}

	return claims, nil
}
