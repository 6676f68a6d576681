package db

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/shandysiswandi/otpgate/internal/identity/entity"
	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("otpgate_test"),
		postgres.WithUsername("otpgate"),
		postgres.WithPassword("otpgate"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = testcontainers.TerminateContainer(container)
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	m, err := NewMigrator(dsn)
	require.NoError(t, err)
	require.NoError(t, m.Up())
	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
	require.NoError(t, m.Close())

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return NewDB(pool, instrument.NewNoop())
}

func TestDBUsers(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	newUser := entity.NewUser{ID: 42, Name: "Ada Lovelace", Email: "ada@example.com", Password: "$2a$hash"}

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, db.Ping(ctx))
	})

	t.Run("MissingUser", func(t *testing.T) {
		_, err := db.GetUserByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, goerror.ErrNotFound)

		_, err = db.GetUserByID(ctx, 404)
		assert.ErrorIs(t, err, goerror.ErrNotFound)
	})

	t.Run("CreateAndGet", func(t *testing.T) {
		// Arrange & Act
		require.NoError(t, db.CreateUser(ctx, newUser))

		// Assert
		byEmail, err := db.GetUserByEmail(ctx, newUser.Email)
		require.NoError(t, err)
		assert.Equal(t, newUser.ID, byEmail.ID)
		assert.Equal(t, newUser.Name, byEmail.Name)
		assert.Equal(t, newUser.Password, byEmail.Password)
		assert.False(t, byEmail.CreatedAt.IsZero())

		byID, err := db.GetUserByID(ctx, newUser.ID)
		require.NoError(t, err)
		assert.Equal(t, newUser.Email, byID.Email)
	})

	t.Run("DuplicateEmailConflicts", func(t *testing.T) {
		dup := newUser
		dup.ID = 43

		err := db.CreateUser(ctx, dup)

		assert.ErrorIs(t, err, goerror.ErrConflict)
	})

	t.Run("UpdatePassword", func(t *testing.T) {
		require.NoError(t, db.UpdateUserPassword(ctx, newUser.ID, "$2a$other"))

		got, err := db.GetUserByID(ctx, newUser.ID)
		require.NoError(t, err)
		assert.Equal(t, "$2a$other", got.Password)

		assert.ErrorIs(t, db.UpdateUserPassword(ctx, 404, "x"), goerror.ErrNotFound)
	})
}
