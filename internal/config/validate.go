package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
)

var (
	envKeyRe        = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	sessionPrefixRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// ValidationError describes a single validation problem.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a Config for errors and returns all problems found.
func Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	if !sessionPrefixRe.MatchString(cfg.SessionPrefix) {
		errs = append(errs, ValidationError{
			Field:   "session_prefix",
			Message: fmt.Sprintf("invalid prefix %q (use only letters, digits, '_' and '-')", cfg.SessionPrefix),
		})
	}

	switch cfg.Ports.Mode {
	case PortModeSingle, PortModePair:
		// valid
	default:
		errs = append(errs, ValidationError{
			Field:   "ports.mode",
			Message: fmt.Sprintf("unknown mode %q (must be single or pair)", cfg.Ports.Mode),
		})
	}
	if cfg.Ports.From <= 0 {
		errs = append(errs, ValidationError{
			Field:   "ports.from",
			Message: "must be a positive port number",
		})
	}
	if cfg.Ports.To > 65536 {
		errs = append(errs, ValidationError{
			Field:   "ports.to",
			Message: "must not exceed 65536",
		})
	}
	if cfg.Ports.From > 0 && cfg.Ports.From >= cfg.Ports.To {
		errs = append(errs, ValidationError{
			Field:   "ports",
			Message: fmt.Sprintf("from (%d) must be below to (%d)", cfg.Ports.From, cfg.Ports.To),
		})
	}

	for key, value := range cfg.Env {
		if !envKeyRe.MatchString(key) {
			errs = append(errs, ValidationError{
				Field:   "env." + key,
				Message: "invalid environment variable name",
			})
		}
		if _, err := template.New(key).Parse(value); err != nil {
			errs = append(errs, ValidationError{
				Field:   "env." + key,
				Message: fmt.Sprintf("invalid template: %v", err),
			})
		}
	}

	for i, entry := range cfg.Setup.Copy {
		errs = append(errs, validateCopyPath(fmt.Sprintf("setup.copy[%d]", i), entry)...)
	}
	for i, command := range cfg.Setup.Run {
		if strings.TrimSpace(command) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("setup.run[%d]", i),
				Message: "command must not be empty",
			})
		}
	}

	return errs
}

// validateCopyPath checks that a copy entry stays inside the repo root.
func validateCopyPath(field, value string) []ValidationError {
	if value == "" {
		return []ValidationError{{
			Field:   field,
			Message: "path must not be empty",
		}}
	}

	cleaned := filepath.Clean(value)

	if filepath.IsAbs(cleaned) {
		return []ValidationError{{
			Field:   field,
			Message: "path must be relative (not absolute)",
		}}
	}

	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return []ValidationError{{
			Field:   field,
			Message: "path must not escape the repository root",
		}}
	}

	return nil
}
