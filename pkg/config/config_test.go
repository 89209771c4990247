package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/morph/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "https://github.com/karcass-ts/template", cfg.Template.DefaultSource)
	assert.Equal(t, "archive", cfg.Template.RemoteMethod)
	assert.Equal(t, []string{"node_modules", ".git", "package-lock.json"}, cfg.Template.Skip)
	assert.Equal(t, []string{"TemplateReducer.go"}, cfg.Reducer.Files)
	assert.Equal(t, "@karcass/template-reducer", cfg.Reducer.SelfDependency)
	assert.Contains(t, cfg.Reducer.AllowedImports, "strings")
	assert.NotContains(t, cfg.Reducer.AllowedImports, "os")
	assert.Equal(t, "package.json", cfg.Manifest.File)
	assert.Equal(t, 4, cfg.Manifest.Indent)
	assert.Equal(t, "npm", cfg.Install.Command)
	assert.Equal(t, []string{"install"}, cfg.Install.Args)
	assert.Equal(t, "fakeInput.txt", cfg.Test.TranscriptFile)
}

func TestLoadUserFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[install]
command = "pnpm"
args = ["install", "--frozen-lockfile"]

[manifest]
indent = 2
`), 0644))

	t.Setenv("MORPH_TEMPLATE_DEFAULT_SOURCE", "/srv/templates/base")

	cfg, err := Load(LoadOptions{DefaultFile: path})
	require.NoError(t, err)

	assert.Equal(t, "pnpm", cfg.Install.Command)
	assert.Equal(t, []string{"install", "--frozen-lockfile"}, cfg.Install.Args)
	assert.Equal(t, 2, cfg.Manifest.Indent)
	assert.Equal(t, "/srv/templates/base", cfg.Template.DefaultSource)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "missing.toml")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoadMissingDefaultFileIsFine(t *testing.T) {
	_, err := Load(LoadOptions{DefaultFile: filepath.Join(t.TempDir(), "missing.toml")})
	require.NoError(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad remote method", func(c *Config) { c.Template.RemoteMethod = "ftp" }},
		{"no reducer files", func(c *Config) { c.Reducer.Files = nil }},
		{"no constructor", func(c *Config) { c.Reducer.Constructor = "" }},
		{"negative indent", func(c *Config) { c.Manifest.Indent = -1 }},
		{"no install command", func(c *Config) { c.Install.Command = "" }},
		{"no transcript file", func(c *Config) { c.Test.TranscriptFile = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "install.command", envKey("MORPH_INSTALL_COMMAND"))
	assert.Equal(t, "template.default_source", envKey("MORPH_TEMPLATE_DEFAULT_SOURCE"))
}

func TestTemplateOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".morph.toml"), []byte(`
[manifest]
indent = 2

[install]
command = "yarn"

[test]
transcript_file = "../answers.txt"
`), 0644))

	o, err := LoadTemplateOverrides(dir, ".morph.toml")
	require.NoError(t, err)
	require.NotNil(t, o)

	base := Default()
	cfg := base.ApplyTemplateOverrides(o)

	assert.Equal(t, 2, cfg.Manifest.Indent)
	assert.Equal(t, "yarn", cfg.Install.Command)
	assert.Empty(t, cfg.Install.Args)
	assert.Equal(t, "answers.txt", cfg.Test.TranscriptFile)

	// the base configuration is untouched
	assert.Equal(t, 4, base.Manifest.Indent)
	assert.Equal(t, "npm", base.Install.Command)
}

func TestTemplateOverridesMissingFile(t *testing.T) {
	o, err := LoadTemplateOverrides(t.TempDir(), ".morph.toml")
	require.NoError(t, err)
	assert.Nil(t, o)
	assert.Equal(t, Default(), Default().ApplyTemplateOverrides(nil))
}

func TestTemplateOverridesMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".morph.toml"), []byte("[manifest\n"), 0644))
	_, err := LoadTemplateOverrides(dir, ".morph.toml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}
