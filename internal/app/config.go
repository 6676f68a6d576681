package app

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shandysiswandi/otpgate/internal/pkg/config"
)

const (
	defaultConfigPath = "/config/config.yaml"
	localConfigPath   = "./config/config.yaml"
)

func isLocal() bool {
	return os.Getenv("LOCAL") == "true"
}

// configPath picks the flag value, then CONFIG_PATH, then the local or
// container default.
func configPath(flagPath string) string {
	if p := strings.TrimSpace(flagPath); p != "" {
		return p
	}
	if p := strings.TrimSpace(os.Getenv("CONFIG_PATH")); p != "" {
		return p
	}
	if isLocal() {
		return localConfigPath
	}
	return defaultConfigPath
}

func loadConfig(flagPath string) (config.Config, error) {
	if isLocal() {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("failed to load .env file", "error", err)
		}
	}

	return config.NewViper(configPath(flagPath))
}
