package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/shandysiswandi/otpgate/internal/identity/outbound/db"
)

const (
	MigrateUp      = "up"
	MigrateDown    = "down"
	MigrateVersion = "version"
)

type schemaMigrator interface {
	Up() error
	Down() error
	Version() (uint, bool, error)
	Close() error
}

// Migrate runs one schema command against database.url and writes the
// resulting version to out.
func Migrate(opts Options, command string, out io.Writer) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	defer cfg.Close()

	m, err := db.NewMigrator(cfg.GetString("database.url"))
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			slog.Error("failed to close migrator", "error", err)
		}
	}()

	return runMigration(m, command, out)
}

func runMigration(m schemaMigrator, command string, out io.Writer) error {
	switch command {
	case MigrateUp:
		if err := m.Up(); err != nil {
			return err
		}
	case MigrateDown:
		if err := m.Down(); err != nil {
			return err
		}
	case MigrateVersion:
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "version=%d dirty=%t\n", version, dirty)
	return err
}
