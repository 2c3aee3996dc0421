package accounts

import (
	"context"

	"github.com/goliatone/go-errors"
)

// Accounts applies account mutation rules on top of the user and file
// stores. Deletion is always a soft-delete: rows are deactivated, never
// removed, so they stay visible to lookups.
type Accounts struct {
	store       UserStore
	files       FileStore
	hasher      *Hasher
	defaultRole UserRole
	logger      Logger
}

// NewAccounts returns an account lifecycle service using the given stores
// and the hashing cost and default role from config.
func NewAccounts(store UserStore, files FileStore, cfg Config) *Accounts {
	defaultRole := cfg.GetDefaultRole()
	if defaultRole == "" {
		defaultRole = DefaultRole
	}

	return &Accounts{
		store:       store,
		files:       files,
		hasher:      NewHasher(cfg.GetPasswordHashCost()),
		defaultRole: defaultRole,
		logger:      defLogger{},
	}
}

func (a *Accounts) WithLogger(logger Logger) *Accounts {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// Create validates the draft, stores the avatar bytes if any, hashes the
// password, and persists the record. The avatar file is written before the
// record: if persistence then fails, the orphaned file is acceptable cleanup
// debt, while the reverse order could commit a record pointing at nothing.
func (a *Accounts) Create(ctx context.Context, draft UserDraft) (*User, error) {
	if err := draft.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "invalid user draft")
	}

	hash, err := a.hasher.HashPassword(draft.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Username:     draft.Username,
		Email:        draft.Email,
		Phone:        draft.Phone,
		DateOfBirth:  draft.DateOfBirth,
		Role:         draft.Role,
		Active:       true,
		PasswordHash: hash,
	}

	if user.Role == "" {
		user.Role = a.defaultRole
	}
	if draft.Active != nil {
		user.Active = *draft.Active
	}

	if len(draft.Avatar) > 0 {
		ref, err := a.files.Store(draft.Avatar, draft.AvatarName)
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryInternal, "failed to store avatar")
		}
		user.Avatar = ref
	}

	saved, err := a.store.Save(ctx, user)
	if err != nil {
		return nil, err
	}

	return saved, nil
}

// Update merges the draft onto the stored record. The existing avatar
// reference is preserved unless the draft carries replacement bytes, in
// which case the new file is stored, the record persisted, and only then the
// old file deleted. The password is re-hashed only when the draft supplies a
// non-empty plaintext; an empty password keeps the stored hash.
func (a *Accounts) Update(ctx context.Context, id int64, draft UserDraft) (*User, error) {
	existing, err := a.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := draft.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "invalid user draft")
	}

	existing.Username = draft.Username
	existing.Email = draft.Email
	existing.Phone = draft.Phone
	existing.DateOfBirth = draft.DateOfBirth

	if draft.Role != "" {
		existing.Role = draft.Role
	}
	if draft.Active != nil {
		existing.Active = *draft.Active
	}

	if draft.Password != "" {
		hash, err := a.hasher.HashPassword(draft.Password)
		if err != nil {
			return nil, err
		}
		existing.PasswordHash = hash
	}

	oldAvatar := ""
	if len(draft.Avatar) > 0 {
		ref, err := a.files.Store(draft.Avatar, draft.AvatarName)
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryInternal, "failed to store avatar")
		}
		oldAvatar = existing.Avatar
		existing.Avatar = ref
	}

	saved, err := a.store.Save(ctx, existing)
	if err != nil {
		return nil, err
	}

	if oldAvatar != "" {
		if err := a.files.Delete(oldAvatar); err != nil {
			a.logger.Warn("failed to delete replaced avatar", "ref", oldAvatar, "error", err)
		}
	}

	return saved, nil
}

// Deactivate marks the account inactive and persists it. This is the only
// delete in the system; the row remains queryable by id and username.
func (a *Accounts) Deactivate(ctx context.Context, id int64) error {
	existing, err := a.store.FindByID(ctx, id)
	if err != nil {
		return err
	}

	existing.Active = false
	if _, err := a.store.Save(ctx, existing); err != nil {
		return err
	}

	return nil
}

// Get returns the record for the given id, active or not.
func (a *Accounts) Get(ctx context.Context, id int64) (*User, error) {
	return a.store.FindByID(ctx, id)
}

// List returns all records, including deactivated ones.
func (a *Accounts) List(ctx context.Context) ([]*User, error) {
	return a.store.FindAll(ctx)
}
