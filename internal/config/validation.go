package config

import (
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/glossarybuilder/internal/foundation/errors"
)

// Validate checks a defaulted configuration. Enum fields are normalized in place.
func Validate(cfg *Config) error {
	level, err := logLevelNormalizer.NormalizeWithError(string(cfg.Logging.Level))
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid logging.level").Fatal().Build()
	}
	cfg.Logging.Level = level

	format, err := logFormatNormalizer.NormalizeWithError(string(cfg.Logging.Format))
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid logging.format").Fatal().Build()
	}
	cfg.Logging.Format = format

	if strings.TrimSpace(cfg.Output.Directory) == "" {
		return errors.ValidationError("output.directory must not be empty").Build()
	}
	if textfile := cfg.Metrics.Textfile; textfile != "" {
		if cfg.Input != "" && filepath.Clean(textfile) == filepath.Clean(cfg.Input) {
			return errors.ValidationError("metrics.textfile must not overwrite the glossary input").
				WithContext("path", textfile).
				Build()
		}
		// The output directory holds only generated pages.
		if filepath.Clean(filepath.Dir(textfile)) == filepath.Clean(cfg.Output.Directory) {
			return errors.ValidationError("metrics.textfile must live outside output.directory").
				WithContext("path", textfile).
				Build()
		}
	}
	return nil
}
