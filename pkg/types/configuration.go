package types

import (
	"fmt"
	"strconv"
)

// Configuration maps parameter names to resolved values: string, float64,
// bool or []string depending on the parameter type. Test cases may also
// supply ints.
type Configuration map[string]any

// Get returns the raw value for name
func (c Configuration) Get(name string) (any, bool) {
	v, ok := c[name]
	return v, ok
}

// Has reports whether name has been resolved
func (c Configuration) Has(name string) bool {
	_, ok := c[name]
	return ok
}

// String returns the value for name formatted as a string, or "" when unset
func (c Configuration) String(name string) string {
	switch v := c[name].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Bool returns the value for name as a bool; only true and "true" are true
func (c Configuration) Bool(name string) bool {
	switch v := c[name].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}

// Int returns the value for name as an int, or def when unset or not numeric
func (c Configuration) Int(name string, def int) int {
	switch v := c[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Strings returns the value for name as a string slice
func (c Configuration) Strings(name string) []string {
	switch v := c[name].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	}
	return nil
}

// Contains reports whether the checkbox value for name includes value
func (c Configuration) Contains(name, value string) bool {
	for _, s := range c.Strings(name) {
		if s == value {
			return true
		}
	}
	return false
}

// Merge copies every key of partial into c
func (c Configuration) Merge(partial Configuration) {
	for k, v := range partial {
		c[k] = v
	}
}

// Clone returns a shallow copy
func (c Configuration) Clone() Configuration {
	out := make(Configuration, len(c))
	out.Merge(c)
	return out
}

// ConfigStore keeps a reducer's accumulated configuration. Embed it in a
// Reducer implementation to get Config and SetConfig.
type ConfigStore struct {
	cfg Configuration
}

// NewConfigStore returns a store seeded with defaults
func NewConfigStore(defaults Configuration) ConfigStore {
	cfg := Configuration{}
	cfg.Merge(defaults)
	return ConfigStore{cfg: cfg}
}

// Config returns the live configuration
func (s *ConfigStore) Config() Configuration {
	if s.cfg == nil {
		s.cfg = Configuration{}
	}
	return s.cfg
}

// SetConfig merges partial into the configuration
func (s *ConfigStore) SetConfig(partial Configuration) {
	s.Config().Merge(partial)
}
