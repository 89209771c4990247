package reducer

import (
	"context"
	"fmt"
	"strings"

	"github.com/arthur-debert/morph/pkg/errors"
	"github.com/arthur-debert/morph/pkg/logging"
	"github.com/arthur-debert/morph/pkg/manifest"
	"github.com/arthur-debert/morph/pkg/types"
	"github.com/rs/zerolog"
)

// AnswerSource supplies a value for one concrete parameter
type AnswerSource interface {
	Answer(ctx context.Context, param types.ConfigParameter) (any, error)
}

// Options configures an Engine
type Options struct {
	// ProjectName is written into the manifest name field
	ProjectName string
	// ManifestFile is the slash-separated path of the dependency manifest
	ManifestFile string
	// Indent is the manifest indentation width
	Indent int
	// SelfDependency is the reducer SDK package, always pruned from the manifest
	SelfDependency string
	// SelfFiles are generation-time files always scheduled for removal
	SelfFiles []string
}

// Engine wraps one reducer instance for one run
type Engine struct {
	reducer   types.Reducer
	opts      Options
	replacers []types.ContentReplacer
	loaded    bool
	logger    zerolog.Logger
}

// New creates an engine for r
func New(r types.Reducer, opts Options) *Engine {
	return &Engine{
		reducer: r,
		opts:    opts,
		logger:  logging.GetLogger("reducer.engine"),
	}
}

// Reducer returns the wrapped reducer
func (e *Engine) Reducer() types.Reducer {
	return e.reducer
}

// ConfigParameters returns the root node sequence
func (e *Engine) ConfigParameters() ([]types.Node, error) {
	nodes, err := e.reducer.ConfigParameters()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrResolve, "failed to read config parameters")
	}
	return nodes, nil
}

// ResolveParameters walks the parameter tree depth first, asking src for
// every concrete parameter and merging each answer before the next node is
// visited. Dynamic nodes see the configuration accumulated so far.
func (e *Engine) ResolveParameters(ctx context.Context, src AnswerSource) (err error) {
	defer recoverPanic("resolution", errors.ErrResolve, &err)
	nodes, err := e.ConfigParameters()
	if err != nil {
		return err
	}
	asked, err := e.walk(ctx, src, nodes, "")
	if err != nil {
		return err
	}
	e.logger.Debug().Int("parameters", asked).Msg("Configuration resolved")
	return nil
}

func (e *Engine) walk(ctx context.Context, src AnswerSource, nodes []types.Node, prefix string) (int, error) {
	asked := 0
	for i, node := range nodes {
		pos := position(prefix, i)

		if p, ok := node.Parameter(); ok {
			if err := e.ask(ctx, src, p, pos); err != nil {
				return asked, err
			}
			asked++
			continue
		}

		resolve, ok := node.Resolver()
		if !ok {
			return asked, errors.Newf(errors.ErrResolve, "node %s is empty", pos)
		}
		expansion, err := resolve(e.reducer.Config())
		if err != nil {
			return asked, errors.Wrapf(err, errors.ErrResolve, "dynamic node %s failed", pos).
				WithDetail("node", pos)
		}

		if expansion.IsNone() {
			e.logger.Trace().Str("node", pos).Msg("Dynamic node expanded to nothing")
			continue
		}
		if p, ok := expansion.Parameter(); ok {
			if err := e.ask(ctx, src, p, pos); err != nil {
				return asked, err
			}
			asked++
			continue
		}
		children, _ := expansion.Nodes()
		n, err := e.walk(ctx, src, children, pos)
		asked += n
		if err != nil {
			return asked, err
		}
	}
	return asked, nil
}

func (e *Engine) ask(ctx context.Context, src AnswerSource, p types.ConfigParameter, pos string) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, errors.ErrCanceled, "configuration canceled")
	}
	if err := p.Validate(); err != nil {
		return errors.Wrapf(err, errors.ErrParameterInvalid, "parameter at %s is invalid", pos)
	}
	value, err := src.Answer(ctx, p)
	if err != nil {
		if ctx.Err() != nil {
			return errors.Wrap(err, errors.ErrCanceled, "configuration canceled")
		}
		return errors.Wrapf(err, errors.ErrResolve, "no answer for %q", p.Name).WithDetail("node", pos)
	}
	e.UpdateConfig(p, value)
	return nil
}

func position(prefix string, i int) string {
	if prefix == "" {
		return fmt.Sprintf("%d", i+1)
	}
	return fmt.Sprintf("%s.%d", prefix, i+1)
}

// UpdateConfig merges a single answer into the reducer configuration
func (e *Engine) UpdateConfig(param types.ConfigParameter, value any) {
	e.logger.Debug().Str("param", param.Name).Interface("value", value).Msg("Config updated")
	e.reducer.SetConfig(types.Configuration{param.Name: value})
}

// Config returns the reducer's accumulated configuration
func (e *Engine) Config() types.Configuration {
	return e.reducer.Config()
}

// DirectoriesForRemove returns the reducer's directory removal list
func (e *Engine) DirectoriesForRemove() ([]string, error) {
	dirs, err := e.reducer.DirectoriesForRemove()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrReduce, "failed to list directories for removal")
	}
	return dirs, nil
}

// FilesForRemove returns the reducer's file removal list followed by the
// engine's generation-time files
func (e *Engine) FilesForRemove() ([]string, error) {
	files, err := e.reducer.FilesForRemove()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrReduce, "failed to list files for removal")
	}
	seen := make(map[string]bool, len(files))
	out := make([]string, 0, len(files)+len(e.opts.SelfFiles))
	for _, list := range [][]string{files, e.opts.SelfFiles} {
		for _, f := range list {
			if f == "" || seen[f] {
				continue
			}
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// DependenciesForRemove returns the reducer's list plus the SDK self dependency
func (e *Engine) DependenciesForRemove() ([]string, error) {
	deps, err := e.reducer.DependenciesForRemove()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrReduce, "failed to list dependencies for removal")
	}
	out := append([]string(nil), deps...)
	if e.opts.SelfDependency != "" {
		out = append(out, e.opts.SelfDependency)
	}
	return out, nil
}

func (e *Engine) contentReplacers() ([]types.ContentReplacer, error) {
	if e.loaded {
		return e.replacers, nil
	}
	replacers, err := e.reducer.FilesContentReplacers()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrReduce, "failed to list content replacers")
	}
	for i, r := range replacers {
		if r.Replace == nil {
			return nil, errors.Newf(errors.ErrReduce, "replacer %d for %s has no function", i+1, r.Match)
		}
		if err := r.Match.Err(); err != nil {
			return nil, errors.Wrapf(err, errors.ErrReduce, "replacer %d has an invalid matcher", i+1)
		}
	}
	e.replacers = replacers
	e.loaded = true
	e.logger.Debug().Int("replacers", len(replacers)).Msg("Content replacers loaded")
	return replacers, nil
}

// ReduceFile returns the new content of the file at relPath. The manifest is
// rewritten first, then every matching replacer runs in declaration order.
// Content no rule touches is returned as the same slice.
func (e *Engine) ReduceFile(content []byte, relPath string) ([]byte, error) {
	relPath = strings.TrimPrefix(relPath, "./")
	out := content

	if e.opts.ManifestFile != "" && relPath == e.opts.ManifestFile {
		deps, err := e.DependenciesForRemove()
		if err != nil {
			return nil, err
		}
		rewritten, err := manifest.Rewrite(content, manifest.Options{
			Name:   e.opts.ProjectName,
			Remove: deps,
			Indent: e.opts.Indent,
		})
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrReduce, "failed to rewrite %s", relPath)
		}
		out = rewritten
	}

	replacers, err := e.contentReplacers()
	if err != nil {
		return nil, err
	}

	matched := false
	text := string(out)
	for _, r := range replacers {
		if !r.Match.Matches(relPath) {
			continue
		}
		matched = true
		text, err = r.Replace(text, relPath)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrReduce, "replacer %s failed on %s", r.Match, relPath).
				WithDetail("path", relPath)
		}
	}
	if matched {
		out = []byte(text)
	}
	return out, nil
}

// TestConfigSet returns the reducer's test matrix
func (e *Engine) TestConfigSet() (cases []types.TestCase, err error) {
	defer recoverPanic("test matrix", errors.ErrTestMatrix, &err)
	cases, err = e.reducer.TestConfigSet()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTestMatrix, "failed to read test matrix")
	}
	return cases, nil
}

// Finish runs the reducer's post-generation hook
func (e *Engine) Finish(ctx context.Context) (err error) {
	defer recoverPanic("finish", errors.ErrFinish, &err)
	if err := e.reducer.Finish(ctx); err != nil {
		if ctx.Err() != nil {
			return errors.Wrap(err, errors.ErrCanceled, "finish canceled")
		}
		return errors.Wrap(err, errors.ErrFinish, "finish hook failed")
	}
	return nil
}

// recoverPanic turns a panic escaping the reducer during stage into an
// error with code, so callers keep control of cleanup and evidence
func recoverPanic(stage string, code errors.ErrorCode, err *error) {
	if r := recover(); r != nil {
		*err = errors.Newf(code, "reducer panicked during %s: %v", stage, r).WithDetail("stage", stage)
	}
}
