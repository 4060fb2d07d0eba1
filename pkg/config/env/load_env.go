package env

import (
	"errors"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// ErrNoDotEnv is returned in local mode when none of the candidate files exist.
var ErrNoDotEnv = errors.New("no .env file found")

// LoadDotEnv loads environment variables from a .env file. ENV_PATH, when set,
// is the only file tried; otherwise the first existing candidate is loaded.
// Variables already present in the environment are never overwritten.
// A missing file is an error only when env is "local" or empty.
func LoadDotEnv(env string, candidates ...string) error {
	if p := os.Getenv("ENV_PATH"); p != "" {
		candidates = []string{p}
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			slog.Error("Failed to parse .env file", "path", path, "error", err)
			return err
		}
		slog.Debug("Loaded .env file", "path", path)
		return nil
	}

	if env == "local" || env == "" {
		return ErrNoDotEnv
	}
	slog.Debug("Skipping .env ...", "candidates", candidates)
	return nil
}
