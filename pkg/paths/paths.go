package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/morph/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for morph
	EnvConfigDir = "MORPH_CONFIG_DIR"

	// EnvCacheDir overrides the XDG cache directory for morph
	EnvCacheDir = "MORPH_CACHE_DIR"

	// EnvStateDir overrides the XDG state directory for morph
	EnvStateDir = "MORPH_STATE_DIR"
)

// Fixed names inside the XDG directories
const (
	// AppDirName is the directory name used under every XDG base dir
	AppDirName = "morph"

	// ConfigFileName is the user configuration file
	ConfigFileName = "config.toml"

	// StagingDirName holds remote templates fetched once per harness run
	StagingDirName = "staging"

	// LogFileName is the name of the log file
	LogFileName = "morph.log"
)

// Paths resolves every on-disk location morph uses outside the project itself
type Paths struct {
	configDir string
	cacheDir  string
	stateDir  string
}

// New resolves the XDG locations, honouring the MORPH_* overrides
func New() *Paths {
	return &Paths{
		configDir: resolve(EnvConfigDir, xdg.ConfigHome),
		cacheDir:  resolve(EnvCacheDir, xdg.CacheHome),
		stateDir:  resolve(EnvStateDir, xdg.StateHome),
	}
}

func resolve(envName, base string) string {
	if dir := os.Getenv(envName); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(base, AppDirName)
}

// ConfigDir returns the morph config directory
func (p *Paths) ConfigDir() string { return p.configDir }

// ConfigFile returns the user configuration file path
func (p *Paths) ConfigFile() string { return filepath.Join(p.configDir, ConfigFileName) }

// CacheDir returns the morph cache directory
func (p *Paths) CacheDir() string { return p.cacheDir }

// StateDir returns the morph state directory
func (p *Paths) StateDir() string { return p.stateDir }

// LogFilePath returns the log file path
func (p *Paths) LogFilePath() string { return filepath.Join(p.stateDir, LogFileName) }

// StagingDir returns a fresh, not yet existing directory for a staged template
func (p *Paths) StagingDir() (string, error) {
	root := filepath.Join(p.cacheDir, StagingDirName)
	if err := os.MkdirAll(root, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrDirCreate, "failed to create staging root %s", root)
	}
	dir, err := os.MkdirTemp(root, "template-")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrDirCreate, "failed to create staging directory")
	}
	// Acquirers expect an absent destination, the same contract as create.
	if err := os.Remove(dir); err != nil {
		return "", errors.Wrap(err, errors.ErrDirCreate, "failed to reserve staging directory")
	}
	return dir, nil
}

// Absolute returns path made absolute against base when it is relative
func Absolute(base, path string) string {
	path = expandHome(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

// IsWithin reports whether target is root or lies below it
func IsWithin(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
