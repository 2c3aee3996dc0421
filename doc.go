// Package accounts provides user-account primitives: credential
// verification, bcrypt password hashing, JWT issuance and resolution, and
// account lifecycle rules built over pluggable user and file stores.
//
// Authentication:
//   - Auther orchestrates Login (credential validation then token issuance)
//     and Resolve (token verification then user lookup). Lookup, password,
//     and role failures all surface as ErrInvalidCredentials so responses
//     never reveal whether a username exists.
//   - TokenService signs HS256 tokens whose subject is the username; a token
//     verifies without any store access.
//
// Lifecycle:
//   - Accounts owns create, update, and deactivate. Deactivation is the only
//     delete: rows are flagged inactive and stay queryable. Updates preserve
//     the stored avatar reference unless replacement bytes are supplied, and
//     re-hash the password only when a new plaintext is given.
//
// Persistence:
//   - UserStore is the storage contract; BunUserStore implements it over Bun
//     with the embedded SQL schema in data/sql/migrations. Uniqueness
//     violations map to field-tagged conflict errors.
package accounts
