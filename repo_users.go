package accounts

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// BunUserStore implements UserStore over a bun database. Unique-constraint
// enforcement and read-your-writes are delegated to the database; a conflict
// is terminal for the call, never retried here.
type BunUserStore struct {
	db *bun.DB
}

// NewBunUserStore creates a UserStore backed by the given bun database.
func NewBunUserStore(db *bun.DB) *BunUserStore {
	return &BunUserStore{db: db}
}

var _ UserStore = (*BunUserStore)(nil)

func (s *BunUserStore) FindByID(ctx context.Context, id int64) (*User, error) {
	record := &User{}
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to select user by id")
	}

	return record, nil
}

func (s *BunUserStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	record := &User{}
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.username = ?", username).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to select user by username")
	}

	return record, nil
}

func (s *BunUserStore) FindAll(ctx context.Context) ([]*User, error) {
	var records []*User
	err := s.db.NewSelect().
		Model(&records).
		Order("id ASC").
		Scan(ctx)

	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to select users")
	}

	return records, nil
}

// Save inserts the record when it has no id yet, otherwise updates the
// existing row. Uniqueness violations come back as ErrDuplicateUsername,
// ErrDuplicateEmail, or ErrConflict.
func (s *BunUserStore) Save(ctx context.Context, user *User) (*User, error) {
	prepareUserDefaults(user)

	if user.ID == 0 {
		if _, err := s.db.NewInsert().Model(user).Exec(ctx); err != nil {
			return nil, mapConflictError(err)
		}
		return user, nil
	}

	now := time.Now()
	user.UpdatedAt = &now

	res, err := s.db.NewUpdate().Model(user).WherePK().Exec(ctx)
	if err != nil {
		return nil, mapConflictError(err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, ErrUserNotFound
	}

	return user, nil
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	if record.Role == "" {
		record.Role = DefaultRole
	}

	if record.CreatedAt == nil {
		now := time.Now()
		record.CreatedAt = &now
	}
}

// mapConflictError folds driver-specific uniqueness violations into the
// field-tagged conflict taxonomy. Recognizes sqlite
// ("UNIQUE constraint failed: users.username") and MySQL
// ("Duplicate entry 'x' for key 'users.username'") message shapes.
func mapConflictError(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") &&
		!strings.Contains(msg, "Duplicate entry") {
		return errors.Wrap(err, errors.CategoryInternal, "failed to persist user")
	}

	switch {
	case strings.Contains(msg, "username"):
		return ErrDuplicateUsername
	case strings.Contains(msg, "email"):
		return ErrDuplicateEmail
	default:
		return ErrConflict
	}
}
