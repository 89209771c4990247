// Package paths provides centralized path handling for morph.
//
// It follows the XDG Base Directory specification for the user config file,
// the cache holding staged remote templates, and the state dir holding the
// log file. Every location can be overridden with a MORPH_* environment
// variable, which is how the tests keep their writes inside t.TempDir().
package paths
