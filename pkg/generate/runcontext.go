package generate

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/morph/pkg/errors"
	"github.com/arthur-debert/morph/pkg/paths"
	"github.com/google/uuid"
)

// RunContext carries what a run needs to know about where it happens
type RunContext struct {
	RunID       string
	WorkDir     string
	Destination string
	ProjectName string
}

// NormalizeName lowercases s and keeps only a-z, '-' and '_'
func NormalizeName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate checks destination and builds the run context. The destination
// must not exist and its base name must normalize to a non-empty project name.
func Validate(destination, workDir string) (*RunContext, error) {
	if strings.TrimSpace(destination) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "missing required argument <destination>")
	}
	abs := paths.Absolute(workDir, destination)

	if _, err := os.Lstat(abs); err == nil {
		return nil, errors.Newf(errors.ErrAlreadyExists, "directory %s already exists", destination).
			WithDetail("path", abs)
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to check %s", destination)
	}

	name := NormalizeName(filepath.Base(abs))
	if name == "" {
		return nil, errors.Newf(errors.ErrInvalidInput, "incorrect project name %q", filepath.Base(abs))
	}

	return &RunContext{
		RunID:       uuid.NewString(),
		WorkDir:     workDir,
		Destination: abs,
		ProjectName: name,
	}, nil
}
