package driven

// ConfigStore is a flat key/value settings store with dotted keys
// ("llm.api_key", "google.expiry"). Writes persist immediately.
//
// Typed getters never fail: a missing key or a value of another type
// yields the zero value. Integers read through GetFloat are widened.
// Callers that must tell "unset" from zero use Get.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetFloat(key string) float64
	GetBool(key string) bool

	// Set rejects empty keys and keys that would clash with an existing
	// table, such as "llm" when "llm.model" is set.
	Set(key string, value any) error

	// Delete is a no-op for unknown keys.
	Delete(key string) error

	Save() error
	Load() error

	// Path locates the backing file for display.
	Path() string
}
