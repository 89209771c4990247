package types

import "context"

// TestCase is one entry of a reducer's test matrix: fixed answers keyed by
// parameter name, used in place of interactive input.
type TestCase map[string]any

// Lookup returns the answer for name; a missing name answers nil
func (tc TestCase) Lookup(name string) (any, bool) {
	v, ok := tc[name]
	return v, ok
}

// Context is handed to a reducer constructor
type Context struct {
	// ProjectName is the normalized name derived from the destination
	ProjectName string
	// Directory is the absolute destination directory
	Directory string
	// Logf writes a progress line to the user
	Logf func(format string, args ...any)
}

// Printf writes through Logf when set
func (c Context) Printf(format string, args ...any) {
	if c.Logf != nil {
		c.Logf(format, args...)
	}
}

// Reducer is the capability set a template implements
type Reducer interface {
	// ConfigParameters returns the root of the parameter tree
	ConfigParameters() ([]Node, error)
	// DirectoriesForRemove lists relative directories to delete
	DirectoriesForRemove() ([]string, error)
	// FilesForRemove lists relative files to delete
	FilesForRemove() ([]string, error)
	// DependenciesForRemove lists manifest dependency keys to strip
	DependenciesForRemove() ([]string, error)
	// FilesContentReplacers lists the content rewrite rules
	FilesContentReplacers() ([]ContentReplacer, error)
	// Config returns the accumulated configuration
	Config() Configuration
	// SetConfig merges partial into the accumulated configuration
	SetConfig(partial Configuration)
	// TestConfigSet returns the test matrix
	TestConfigSet() ([]TestCase, error)
	// Finish runs after install, in the generated project
	Finish(ctx context.Context) error
}

// Constructor builds a reducer for one run
type Constructor func(ctx Context) (Reducer, error)
