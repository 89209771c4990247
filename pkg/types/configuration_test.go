package types_test

import (
	"testing"

	"github.com/arthur-debert/morph/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestConfigurationAccessors(t *testing.T) {
	cfg := types.Configuration{
		"type":     "select",
		"tabSize":  float64(2),
		"port":     "8080",
		"semi":     false,
		"quote":    "true",
		"features": []any{"db", "logger"},
		"plugins":  []string{"a"},
	}

	assert.Equal(t, "select", cfg.String("type"))
	assert.Equal(t, "2", cfg.String("tabSize"))
	assert.Equal(t, "", cfg.String("missing"))

	assert.Equal(t, 2, cfg.Int("tabSize", 4))
	assert.Equal(t, 8080, cfg.Int("port", 0))
	assert.Equal(t, 4, cfg.Int("missing", 4))
	assert.Equal(t, 4, cfg.Int("type", 4))

	assert.False(t, cfg.Bool("semi"))
	assert.True(t, cfg.Bool("quote"))
	assert.False(t, cfg.Bool("missing"))

	assert.Equal(t, []string{"db", "logger"}, cfg.Strings("features"))
	assert.Equal(t, []string{"a"}, cfg.Strings("plugins"))
	assert.True(t, cfg.Contains("features", "logger"))
	assert.False(t, cfg.Contains("features", "twing"))

	assert.True(t, cfg.Has("semi"))
	assert.False(t, cfg.Has("missing"))
}

func TestConfigurationMergeAndClone(t *testing.T) {
	cfg := types.Configuration{"a": 1}
	clone := cfg.Clone()
	cfg.Merge(types.Configuration{"a": 2, "b": 3})

	assert.Equal(t, types.Configuration{"a": 2, "b": 3}, cfg)
	assert.Equal(t, types.Configuration{"a": 1}, clone)
}

func TestConfigStore(t *testing.T) {
	store := types.NewConfigStore(types.Configuration{"tabSize": 4})
	store.SetConfig(types.Configuration{"semicolon": true})

	assert.Equal(t, types.Configuration{"tabSize": 4, "semicolon": true}, store.Config())

	var zero types.ConfigStore
	zero.SetConfig(types.Configuration{"x": "y"})
	assert.Equal(t, "y", zero.Config().String("x"))
}
