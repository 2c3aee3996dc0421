package accounts_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/goliatone/go-accounts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// newTestDB opens an in-memory sqlite database with the schema applied. The
// connection pool is capped at one so every query sees the same database.
func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	require.NoError(t, accounts.RunMigrations(context.Background(), db))

	return db
}

func seedUser(username, email string) *accounts.User {
	return &accounts.User{
		Username:     username,
		Email:        email,
		Role:         accounts.RoleUser,
		Active:       true,
		PasswordHash: "$2a$04$notarealhashbutlongenoughtostore",
	}
}

func TestBunUserStore_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	store := accounts.NewBunUserStore(newTestDB(t))

	created, err := store.Save(ctx, seedUser("pepe.rone", "pepe@example.com"))
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.NotNil(t, created.CreatedAt)

	t.Run("find by id", func(t *testing.T) {
		got, err := store.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "pepe.rone", got.Username)
		assert.Equal(t, "pepe@example.com", got.Email)
		assert.True(t, got.Active)
	})

	t.Run("find by username", func(t *testing.T) {
		got, err := store.FindByUsername(ctx, "pepe.rone")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("find by unknown id", func(t *testing.T) {
		_, err := store.FindByID(ctx, 9999)
		assert.ErrorIs(t, err, accounts.ErrUserNotFound)
	})

	t.Run("find by unknown username", func(t *testing.T) {
		_, err := store.FindByUsername(ctx, "ghost")
		assert.ErrorIs(t, err, accounts.ErrUserNotFound)
	})
}

func TestBunUserStore_SaveDefaults(t *testing.T) {
	ctx := context.Background()
	store := accounts.NewBunUserStore(newTestDB(t))

	record := seedUser("pepe.rone", "pepe@example.com")
	record.Role = ""

	created, err := store.Save(ctx, record)
	require.NoError(t, err)
	assert.Equal(t, accounts.DefaultRole, created.Role)
}

func TestBunUserStore_Update(t *testing.T) {
	ctx := context.Background()
	store := accounts.NewBunUserStore(newTestDB(t))

	created, err := store.Save(ctx, seedUser("pepe.rone", "pepe@example.com"))
	require.NoError(t, err)

	created.Email = "new@example.com"
	created.Active = false

	updated, err := store.Save(ctx, created)
	require.NoError(t, err)
	require.NotNil(t, updated.UpdatedAt)

	got, err := store.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", got.Email)
	assert.False(t, got.Active)
}

func TestBunUserStore_UpdateMissingRow(t *testing.T) {
	ctx := context.Background()
	store := accounts.NewBunUserStore(newTestDB(t))

	ghost := seedUser("ghost", "ghost@example.com")
	ghost.ID = 424242
	now := time.Now()
	ghost.CreatedAt = &now

	_, err := store.Save(ctx, ghost)
	assert.ErrorIs(t, err, accounts.ErrUserNotFound)
}

func TestBunUserStore_DuplicateMapping(t *testing.T) {
	ctx := context.Background()
	store := accounts.NewBunUserStore(newTestDB(t))

	_, err := store.Save(ctx, seedUser("pepe.rone", "pepe@example.com"))
	require.NoError(t, err)

	t.Run("duplicate username", func(t *testing.T) {
		_, err := store.Save(ctx, seedUser("pepe.rone", "other@example.com"))
		assert.ErrorIs(t, err, accounts.ErrDuplicateUsername)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := store.Save(ctx, seedUser("other", "pepe@example.com"))
		assert.ErrorIs(t, err, accounts.ErrDuplicateEmail)
	})

	t.Run("original row untouched", func(t *testing.T) {
		got, err := store.FindByUsername(ctx, "pepe.rone")
		require.NoError(t, err)
		assert.Equal(t, "pepe@example.com", got.Email)
	})
}

func TestBunUserStore_FindAll(t *testing.T) {
	ctx := context.Background()
	store := accounts.NewBunUserStore(newTestDB(t))

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	for _, name := range []string{"alfa", "bravo", "charlie"} {
		_, err := store.Save(ctx, seedUser(name, name+"@example.com"))
		require.NoError(t, err)
	}

	all, err = store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	// Ordered by id, which follows insertion order here.
	assert.Equal(t, "alfa", all[0].Username)
	assert.Equal(t, "charlie", all[2].Username)
}
