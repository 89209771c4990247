package sandbox

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arthur-debert/morph/pkg/config"
	"github.com/arthur-debert/morph/pkg/errors"
	"github.com/arthur-debert/morph/pkg/logging"
	"github.com/arthur-debert/morph/pkg/types"
	"github.com/rs/zerolog"
	"github.com/traefik/yaegi/interp"
)

// Loader evaluates reducer modules
type Loader struct {
	files       []string
	constructor string
	allowed     map[string]bool
	logger      zerolog.Logger
}

// NewLoader creates a loader from the reducer configuration
func NewLoader(cfg config.ReducerConfig) *Loader {
	return &Loader{
		files:       append([]string(nil), cfg.Files...),
		constructor: cfg.Constructor,
		allowed:     allowSet(cfg.AllowedImports),
		logger:      logging.GetLogger("sandbox"),
	}
}

// Files returns the candidate reducer file names, relative to a template root
func (l *Loader) Files() []string {
	return append([]string(nil), l.files...)
}

// Find returns the path of the first reducer file present in dir
func (l *Loader) Find(dir string) (string, error) {
	for _, name := range l.files {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && info.Mode().IsRegular() {
			return path, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", path)
		}
	}
	return "", errors.Newf(errors.ErrReducerLoad, "no reducer module in %s", dir).
		WithDetail("candidates", l.files)
}

// Load finds, checks and evaluates the reducer module in dir, then builds a
// reducer with tctx
func (l *Loader) Load(ctx context.Context, dir string, tctx types.Context) (types.Reducer, error) {
	path, err := l.Find(dir)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}
	return l.LoadSource(ctx, filepath.Base(path), string(src), tctx)
}

// LoadSource evaluates src as a reducer module
func (l *Loader) LoadSource(ctx context.Context, filename, src string, tctx types.Context) (r types.Reducer, err error) {
	done := logging.LogOperationStart(l.logger, "load reducer")
	defer done()

	if err := CheckImports(filename, src, l.allowed); err != nil {
		return nil, err
	}

	// Interpreted code can panic through reflection; surface it as a load error.
	defer func() {
		if p := recover(); p != nil {
			r = nil
			err = errors.Newf(errors.ErrReducerLoad, "reducer module %s panicked: %v", filename, p)
		}
	}()

	i := interp.New(interp.Options{})
	if err := i.Use(allowedSymbols(l.allowed)); err != nil {
		return nil, errors.Wrap(err, errors.ErrReducerLoad, "failed to load standard library symbols")
	}
	if err := i.Use(Symbols); err != nil {
		return nil, errors.Wrap(err, errors.ErrReducerLoad, "failed to load reducer contract symbols")
	}

	if _, err := i.EvalWithContext(ctx, src); err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(err, errors.ErrCanceled, "reducer load canceled")
		}
		return nil, errors.Wrapf(err, errors.ErrReducerLoad, "failed to evaluate %s", filename)
	}

	v, err := i.Eval("main." + l.constructor)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrReducerLoad, "%s does not define %s", filename, l.constructor)
	}
	newReducer, ok := v.Interface().(func(types.Context) *types.Module)
	if !ok {
		return nil, errors.Newf(errors.ErrReducerLoad,
			"%s has the wrong signature %s, expected func(types.Context) *types.Module",
			l.constructor, v.Type())
	}

	module := newReducer(tctx)
	if module == nil {
		return nil, errors.Newf(errors.ErrReducerLoad, "%s returned no module", l.constructor)
	}
	l.logger.Debug().Str("file", filename).Str("project", tctx.ProjectName).Msg("Reducer module loaded")
	return module.Reducer(), nil
}
