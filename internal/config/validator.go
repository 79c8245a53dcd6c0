package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "source.kind")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateSource()...)
	errors = append(errors, c.validateImages()...)
	errors = append(errors, c.validateExport()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validateSource() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidSourceKinds(), c.Source.Kind) {
		errors = append(errors, ValidationError{
			Field:   "source.kind",
			Value:   c.Source.Kind,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidSourceKinds(), ", ")),
		})
	}

	if c.Source.Kind == "file" && c.Source.DataDir == "" {
		errors = append(errors, ValidationError{
			Field:   "source.data_dir",
			Value:   c.Source.DataDir,
			Message: "must not be empty for the file source",
		})
	}

	if c.Source.Kind == "http" && c.Source.BaseURL == "" {
		errors = append(errors, ValidationError{
			Field:   "source.base_url",
			Value:   c.Source.BaseURL,
			Message: "must not be empty for the http source",
		})
	}

	if c.Source.TimeoutSeconds <= 0 {
		errors = append(errors, ValidationError{
			Field:   "source.timeout_seconds",
			Value:   c.Source.TimeoutSeconds,
			Message: "must be positive",
		})
	}

	return errors
}

func (c *Config) validateImages() []ValidationError {
	var errors []ValidationError

	if c.Images.PrimaryVariant == "" {
		errors = append(errors, ValidationError{
			Field:   "images.primary_variant",
			Value:   c.Images.PrimaryVariant,
			Message: "must not be empty",
		})
	}
	if c.Images.PreviewVariant == "" {
		errors = append(errors, ValidationError{
			Field:   "images.preview_variant",
			Value:   c.Images.PreviewVariant,
			Message: "must not be empty",
		})
	}

	return errors
}

func (c *Config) validateExport() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidExportFormats(), c.Export.Format) {
		errors = append(errors, ValidationError{
			Field:   "export.format",
			Value:   c.Export.Format,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidExportFormats(), ", ")),
		})
	}

	if c.Export.Indent < 0 || c.Export.Indent > 8 {
		errors = append(errors, ValidationError{
			Field:   "export.indent",
			Value:   c.Export.Indent,
			Message: "must be between 0 and 8",
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
