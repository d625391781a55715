package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// WriteModelPaths merges entries into the env file at path, keeping any
// unrelated keys already present. Relative values are made absolute so the
// pipeline can be started from another directory. Model paths are written
// unquoted as KEY=value, which is what the pipeline's reader expects; other
// keys are quoted only when their value would not read back unchanged.
func WriteModelPaths(path string, entries map[string]string) error {
	existing := map[string]string{}
	_, err := os.Stat(path)
	if err == nil {
		if existing, err = godotenv.Read(path); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	for key, value := range entries {
		abs, err := filepath.Abs(value)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", value, err)
		}
		existing[key] = abs
	}

	keys := make([]string, 0, len(existing))
	for key := range existing {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		line := key + "=" + existing[key]
		if _, model := entries[key]; !model {
			if line, err = envLine(key, existing[key]); err != nil {
				return err
			}
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if err = os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// envLine renders one KEY=value line. The value is double-quoted and escaped
// when godotenv would not read it back unchanged.
func envLine(key, value string) (string, error) {
	if !strings.ContainsAny(value, "\n\r#\"'\\$`") && strings.TrimSpace(value) == value {
		return key + "=" + value, nil
	}
	line, err := godotenv.Marshal(map[string]string{key: value})
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return line, nil
}

// LoadModelPaths reads the env file at path and returns the values for keys.
// It fails if any key is missing.
func LoadModelPaths(path string, keys ...string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	paths := make(map[string]string, len(keys))
	var missing []string
	for _, key := range keys {
		value, ok := env[key]
		if !ok || value == "" {
			missing = append(missing, key)
			continue
		}
		paths[key] = value
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("incomplete env file %s: missing %s", path, strings.Join(missing, ", "))
	}
	return paths, nil
}
