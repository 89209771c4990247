package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/morph/pkg/errors"
	"github.com/arthur-debert/morph/pkg/logging"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var log = logging.GetLogger("config")

// EnvPrefix is the prefix of environment variables read as configuration
const EnvPrefix = "MORPH_"

// Config is the fully resolved configuration for one morph invocation
type Config struct {
	Template TemplateConfig `koanf:"template"`
	Reducer  ReducerConfig  `koanf:"reducer"`
	Manifest ManifestConfig `koanf:"manifest"`
	Install  InstallConfig  `koanf:"install"`
	Test     TestConfig     `koanf:"test"`
}

// TemplateConfig controls how templates are located and acquired
type TemplateConfig struct {
	DefaultSource string   `koanf:"default_source"`
	RemotePattern string   `koanf:"remote_pattern"`
	RemoteMethod  string   `koanf:"remote_method"`
	ArchiveURL    string   `koanf:"archive_url"`
	Skip          []string `koanf:"skip"`
	OverrideFile  string   `koanf:"override_file"`
}

// ReducerConfig controls how a template's reducer module is found and sandboxed
type ReducerConfig struct {
	Files          []string `koanf:"files"`
	Constructor    string   `koanf:"constructor"`
	SelfDependency string   `koanf:"self_dependency"`
	AllowedImports []string `koanf:"allowed_imports"`
}

// ManifestConfig controls dependency manifest rewriting
type ManifestConfig struct {
	File   string `koanf:"file"`
	Indent int    `koanf:"indent"`
}

// InstallConfig is the package manager invocation
type InstallConfig struct {
	Command string   `koanf:"command"`
	Args    []string `koanf:"args"`
}

// TestConfig controls the test harness
type TestConfig struct {
	TranscriptFile string `koanf:"transcript_file"`
	WorkdirPrefix  string `koanf:"workdir_prefix"`
}

// LoadOptions selects the user config file
type LoadOptions struct {
	// ConfigFile is an explicit config file; it must exist when set
	ConfigFile string
	// DefaultFile is read only if it exists
	DefaultFile string
}

// Load builds the configuration from defaults, the user config file and the environment
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config
	path := opts.ConfigFile
	if path == "" && opts.DefaultFile != "" {
		if _, err := os.Stat(opts.DefaultFile); err == nil {
			path = opts.DefaultFile
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
		}
		log.Debug().Str("path", path).Msg("Loaded user config")
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the embedded defaults without reading files or the environment
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic(err)
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		panic(err)
	}
	return &cfg
}

// envKey maps MORPH_TEMPLATE_DEFAULT_SOURCE to template.default_source
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// Validate checks the values the pipeline cannot run without
func (c *Config) Validate() error {
	switch {
	case c.Template.RemoteMethod != "archive" && c.Template.RemoteMethod != "git":
		return errors.Newf(errors.ErrConfigParse, "template.remote_method must be archive or git, got %q", c.Template.RemoteMethod)
	case len(c.Reducer.Files) == 0:
		return errors.New(errors.ErrConfigParse, "reducer.files must name at least one file")
	case c.Reducer.Constructor == "":
		return errors.New(errors.ErrConfigParse, "reducer.constructor must be set")
	case c.Manifest.Indent < 0:
		return errors.New(errors.ErrConfigParse, "manifest.indent must not be negative")
	case c.Install.Command == "":
		return errors.New(errors.ErrConfigParse, "install.command must be set")
	case c.Test.TranscriptFile == "":
		return errors.New(errors.ErrConfigParse, "test.transcript_file must be set")
	}
	return nil
}

// Clone returns a deep copy so per-run overrides never leak between runs
func (c *Config) Clone() *Config {
	out := *c
	out.Template.Skip = append([]string(nil), c.Template.Skip...)
	out.Reducer.Files = append([]string(nil), c.Reducer.Files...)
	out.Reducer.AllowedImports = append([]string(nil), c.Reducer.AllowedImports...)
	out.Install.Args = append([]string(nil), c.Install.Args...)
	return &out
}
