package db

import (
	"errors"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct {
	upErr      error
	downErr    error
	version    uint
	dirty      bool
	versionErr error
	srcErr     error
	dbErr      error
}

func (f *fakeMigrator) Up() error                    { return f.upErr }
func (f *fakeMigrator) Down() error                  { return f.downErr }
func (f *fakeMigrator) Version() (uint, bool, error) { return f.version, f.dirty, f.versionErr }
func (f *fakeMigrator) Close() (error, error)        { return f.srcErr, f.dbErr }

func TestMigrateURL(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@host:5432/db":   "pgx5://u:p@host:5432/db",
		"postgresql://u:p@host:5432/db": "pgx5://u:p@host:5432/db",
		"pgx5://u:p@host:5432/db":       "pgx5://u:p@host:5432/db",
	}
	for in, want := range tests {
		assert.Equal(t, want, migrateURL(in), in)
	}
}

func TestMigrator(t *testing.T) {
	errBoom := errors.New("boom")

	t.Run("NoChangeIsNotAnError", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrator{upErr: migrate.ErrNoChange, downErr: migrate.ErrNoChange}}

		assert.NoError(t, m.Up())
		assert.NoError(t, m.Down())
	})

	t.Run("UpFailure", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrator{upErr: errBoom}}

		assert.ErrorIs(t, m.Up(), errBoom)
	})

	t.Run("NilVersionIsZero", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrator{versionErr: migrate.ErrNilVersion}}

		version, dirty, err := m.Version()

		require.NoError(t, err)
		assert.Zero(t, version)
		assert.False(t, dirty)
	})

	t.Run("DirtyVersion", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrator{version: 1, dirty: true}}

		version, dirty, err := m.Version()

		require.NoError(t, err)
		assert.Equal(t, uint(1), version)
		assert.True(t, dirty)
	})

	t.Run("CloseJoinsErrors", func(t *testing.T) {
		srcErr, dbErr := errors.New("source"), errors.New("database")
		m := &Migrator{m: &fakeMigrator{srcErr: srcErr, dbErr: dbErr}}

		err := m.Close()

		assert.ErrorIs(t, err, srcErr)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)

	var up, down int
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			up++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			down++
		}
	}
	assert.Positive(t, up)
	assert.Equal(t, up, down)
}
