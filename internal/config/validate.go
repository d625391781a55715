package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the configuration for common errors and returns a detailed error if validation fails.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}

	if err := c.validateArtifacts(); err != nil {
		return fmt.Errorf("artifact validation failed: %w", err)
	}

	if err := validateUnique("transport", c.Transports); err != nil {
		return err
	}

	names := make([]string, 0, len(c.Dependencies))
	for _, d := range c.Dependencies {
		names = append(names, d.Name)
	}
	return validateUnique("dependency", names)
}

// validateArtifacts rejects artifacts that would overwrite each other.
func (c *Config) validateArtifacts() error {
	seenDest := make(map[string]string)
	seenName := make(map[string]bool)
	seenEnv := make(map[string]string)

	for _, a := range c.Artifacts {
		if seenName[a.Name] {
			return fmt.Errorf("duplicate artifact name %q", a.Name)
		}
		seenName[a.Name] = true

		dest := filepath.Clean(a.Destination)
		if other, ok := seenDest[dest]; ok {
			return fmt.Errorf("artifacts %q and %q share destination %s", other, a.Name, dest)
		}
		seenDest[dest] = a.Name

		if a.EnvKey == "" {
			continue
		}
		if other, ok := seenEnv[a.EnvKey]; ok {
			return fmt.Errorf("artifacts %q and %q share env key %s", other, a.Name, a.EnvKey)
		}
		seenEnv[a.EnvKey] = a.Name
	}

	return nil
}

func validateUnique(kind string, values []string) error {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v] {
			return fmt.Errorf("duplicate %s %q", kind, v)
		}
		seen[v] = true
	}
	return nil
}

// formatValidationError flattens validator errors into a single readable error.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s", field, fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
