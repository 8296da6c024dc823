package main

import (
	"errors"
	"os"

	"github.com/alnah/go-lightbox/internal/assets"
	"github.com/alnah/go-lightbox/internal/config"
	"github.com/alnah/go-lightbox/internal/logging"
	"github.com/alnah/go-lightbox/internal/site"
)

// Exit codes for the lightbox CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Successful build
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or validation
	ExitIO       = 3 // File not found, permission denied
	ExitWarnings = 5 // Warnings promoted to errors by --fail-on-warning
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Warnings as errors (exit 5)
	if errors.Is(err, ErrWarningsAsErrors) {
		return ExitWarnings
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, logging.ErrInvalidLevel) ||
		errors.Is(err, logging.ErrInvalidFormat) ||
		errors.Is(err, site.ErrUnknownFormat) ||
		errors.Is(err, site.ErrDuplicateDocument) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrPathTraversal) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, site.ErrReadSource) ||
		errors.Is(err, site.ErrWriteOutput) ||
		errors.Is(err, site.ErrNoDocuments) {
		return ExitIO
	}

	return ExitGeneral
}
