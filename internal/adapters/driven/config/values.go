// Package config holds the value rules shared by every ConfigStore adapter.
//
// Stores keep a flat map of dot-separated keys ("llm.model"). Values come
// back as whatever the backend decoded, so TOML integers arrive as int64
// while values set in-process stay int. The helpers here coerce both.
package config

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
)

// CheckKey rejects keys that cannot be written as a TOML table path.
func CheckKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty config key", domain.ErrInvalidInput)
	}
	for _, part := range strings.Split(key, ".") {
		if part == "" {
			return fmt.Errorf("%w: config key %q has an empty segment", domain.ErrInvalidInput, key)
		}
	}
	return nil
}

// Conflict returns the existing key that key would shadow, or "".
// "llm" and "llm.model" cannot both hold values: one would have to be
// a table and a scalar at once.
func Conflict(values map[string]any, key string) string {
	for existing := range values {
		if existing == key {
			continue
		}
		if strings.HasPrefix(existing, key+".") || strings.HasPrefix(key, existing+".") {
			return existing
		}
	}
	return ""
}

// AsString returns v if it is a string.
func AsString(v any) string {
	s, _ := v.(string)
	return s
}

// AsInt accepts any integer type and whole floats.
func AsInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case int32:
		return int(n)
	case float64:
		if n == float64(int(n)) {
			return int(n)
		}
	}
	return 0
}

// AsFloat accepts floats and widens integers.
func AsFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	}
	return 0
}

// AsBool returns v if it is a bool.
func AsBool(v any) bool {
	b, _ := v.(bool)
	return b
}
