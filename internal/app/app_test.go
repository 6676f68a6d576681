package app

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigPath(t *testing.T) {
	t.Run("FlagWins", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", "/env/config.yaml")

		assert.Equal(t, "/flag/config.yaml", configPath("/flag/config.yaml"))
	})

	t.Run("EnvOverDefault", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", "/env/config.yaml")

		assert.Equal(t, "/env/config.yaml", configPath(""))
	})

	t.Run("Local", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", "")
		t.Setenv("LOCAL", "true")

		assert.Equal(t, localConfigPath, configPath(""))
	})

	t.Run("Container", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", "")
		t.Setenv("LOCAL", "")

		assert.Equal(t, defaultConfigPath, configPath(""))
	})
}

type fakeMigrator struct {
	ups, downs int
	version    uint
	err        error
}

func (f *fakeMigrator) Up() error {
	f.ups++
	f.version = 1
	return f.err
}

func (f *fakeMigrator) Down() error {
	f.downs++
	f.version = 0
	return f.err
}

func (f *fakeMigrator) Version() (uint, bool, error) { return f.version, false, nil }
func (f *fakeMigrator) Close() error                 { return nil }

func TestRunMigration(t *testing.T) {
	t.Run("Up", func(t *testing.T) {
		// Arrange
		m := &fakeMigrator{}
		var out bytes.Buffer

		// Act
		err := runMigration(m, MigrateUp, &out)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, m.ups)
		assert.Equal(t, "version=1 dirty=false\n", out.String())
	})

	t.Run("Down", func(t *testing.T) {
		m := &fakeMigrator{version: 1}
		var out bytes.Buffer

		require.NoError(t, runMigration(m, MigrateDown, &out))
		assert.Equal(t, 1, m.downs)
		assert.Equal(t, "version=0 dirty=false\n", out.String())
	})

	t.Run("Version", func(t *testing.T) {
		m := &fakeMigrator{version: 1}
		var out bytes.Buffer

		require.NoError(t, runMigration(m, MigrateVersion, &out))
		assert.Zero(t, m.ups+m.downs)
		assert.Equal(t, "version=1 dirty=false\n", out.String())
	})

	t.Run("Failure", func(t *testing.T) {
		errBoom := errors.New("boom")

		err := runMigration(&fakeMigrator{err: errBoom}, MigrateUp, &bytes.Buffer{})

		assert.ErrorIs(t, err, errBoom)
	})

	t.Run("UnknownCommand", func(t *testing.T) {
		assert.Error(t, runMigration(&fakeMigrator{}, "sideways", &bytes.Buffer{}))
	})
}
