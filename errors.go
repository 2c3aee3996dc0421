package accounts

import (
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	TextCodeInvalidCreds      = "INVALID_CREDENTIALS"
	TextCodeAccountLocked     = "ACCOUNT_LOCKED"
	TextCodeRoleMismatch      = "ROLE_MISMATCH"
	TextCodeTokenExpired      = "TOKEN_EXPIRED"
	TextCodeTokenMalformed    = "TOKEN_MALFORMED"
	TextCodeTokenMissingClaim = "TOKEN_MISSING_CLAIM"
	TextCodeUserNotFound      = "USER_NOT_FOUND"
	TextCodeDuplicateUsername = "DUPLICATE_USERNAME"
	TextCodeDuplicateEmail    = "DUPLICATE_EMAIL"
	TextCodeStorageConflict   = "STORAGE_CONFLICT"
	TextCodeEmptyPassword     = "EMPTY_PASSWORD"
)

// ErrInvalidCredentials is the single credentials error surfaced to callers.
// Unknown usernames and wrong passwords both map here so responses never
// reveal whether an account exists.
var ErrInvalidCredentials = errors.New("the credentials provided are invalid", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(errors.CodeUnauthorized)

// ErrAccountLocked is returned when the account exists but is deactivated.
var ErrAccountLocked = errors.New("account is locked", errors.CategoryAuth).
	WithTextCode(TextCodeAccountLocked).
	WithCode(errors.CodeForbidden)

// ErrRoleMismatch is returned by the credential validator when the requested
// role differs from the stored role. Auther collapses it into
// ErrInvalidCredentials before it reaches a caller.
var ErrRoleMismatch = errors.New("requested role does not match account role", errors.CategoryAuth).
	WithTextCode(TextCodeRoleMismatch).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned when a token signature verifies but the token
// is past its expiry.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned for tokens that fail to parse or whose
// signature does not verify.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMissingClaim is returned when a structurally valid token lacks the
// subject claim.
var ErrTokenMissingClaim = errors.New("token is missing subject claim", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMissingClaim).
	WithCode(errors.CodeUnauthorized)

// ErrUserNotFound is returned by stores and lifecycle operations when no
// record matches the given id or username.
var ErrUserNotFound = errors.New("user not found", errors.CategoryNotFound).
	WithTextCode(TextCodeUserNotFound).
	WithCode(errors.CodeNotFound)

// ErrDuplicateUsername maps a storage uniqueness violation on the username
// column.
var ErrDuplicateUsername = errors.New("username already exists", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateUsername).
	WithCode(errors.CodeConflict)

// ErrDuplicateEmail maps a storage uniqueness violation on the email column.
var ErrDuplicateEmail = errors.New("email already exists", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateEmail).
	WithCode(errors.CodeConflict)

// ErrConflict is the fallback for storage conflicts we cannot attribute to a
// specific column.
var ErrConflict = errors.New("storage conflict", errors.CategoryConflict).
	WithTextCode(TextCodeStorageConflict).
	WithCode(errors.CodeConflict)

// ErrEmptyPassword is returned when a plaintext password is empty.
var ErrEmptyPassword = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(errors.CodeBadRequest)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
