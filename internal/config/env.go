package config

import (
	"os"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/glossarybuilder/internal/foundation/errors"
)

// envFiles are loaded in order when present. Variables already set in the
// process environment are never overridden.
var envFiles = []string{".env", ".env.local"}

func loadEnvFile() error {
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return errors.WrapError(err, errors.CategoryConfig, "failed to load env file").
				Fatal().
				WithContext("path", path).
				Build()
		}
	}
	return nil
}
