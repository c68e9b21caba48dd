// Package errors provides the classified error primitives used across glossarybuilder.
//
// Errors carry a category (config, input, filesystem, build, ...), a severity
// and structured context. The CLI adapter maps categories to process exit codes.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryFileSystem, "failed to open glossary input").
//		Fatal().
//		WithContext("path", inputPath).
//		Build()
package errors
