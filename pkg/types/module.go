package types

import (
	"context"

	"github.com/arthur-debert/morph/pkg/errors"
)

// Module is the shape a template's interpreted reducer returns from its
// constructor. Every hook is optional: a nil hook yields an empty result.
// When Config and SetConfig are both nil the adapter keeps the configuration.
type Module struct {
	ConfigParameters      func() ([]Node, error)
	DirectoriesForRemove  func() ([]string, error)
	FilesForRemove        func() ([]string, error)
	DependenciesForRemove func() ([]string, error)
	FilesContentReplacers func() ([]ContentReplacer, error)
	Config                func() Configuration
	SetConfig             func(partial Configuration)
	TestConfigSet         func() ([]TestCase, error)
	Finish                func() error
	// Defaults seeds the adapter-kept configuration
	Defaults Configuration
}

// Reducer adapts the module to the Reducer interface. A panic inside any
// error-returning hook, or inside a resolver or replace function the module
// hands out, comes back as an error.
func (m *Module) Reducer() Reducer {
	r := &moduleReducer{m: m}
	if m.Config == nil || m.SetConfig == nil {
		r.store = NewConfigStore(m.Defaults)
		r.ownStore = true
	}
	return r
}

type moduleReducer struct {
	m        *Module
	store    ConfigStore
	ownStore bool
}

// catch turns a panic in the named hook into an error with code
func catch(hook string, code errors.ErrorCode, err *error) {
	if r := recover(); r != nil {
		*err = errors.Newf(code, "reducer hook %s panicked: %v", hook, r).WithDetail("hook", hook)
	}
}

func (r *moduleReducer) ConfigParameters() (nodes []Node, err error) {
	if r.m.ConfigParameters == nil {
		return nil, nil
	}
	defer catch("ConfigParameters", errors.ErrResolve, &err)
	nodes, err = r.m.ConfigParameters()
	return guardNodes(nodes), err
}

func (r *moduleReducer) DirectoriesForRemove() (dirs []string, err error) {
	defer catch("DirectoriesForRemove", errors.ErrReduce, &err)
	return callList(r.m.DirectoriesForRemove)
}

func (r *moduleReducer) FilesForRemove() (files []string, err error) {
	defer catch("FilesForRemove", errors.ErrReduce, &err)
	return callList(r.m.FilesForRemove)
}

func (r *moduleReducer) DependenciesForRemove() (deps []string, err error) {
	defer catch("DependenciesForRemove", errors.ErrReduce, &err)
	return callList(r.m.DependenciesForRemove)
}

func (r *moduleReducer) FilesContentReplacers() (replacers []ContentReplacer, err error) {
	if r.m.FilesContentReplacers == nil {
		return nil, nil
	}
	defer catch("FilesContentReplacers", errors.ErrReduce, &err)
	replacers, err = r.m.FilesContentReplacers()
	for i := range replacers {
		replacers[i].Replace = guardReplace(replacers[i].Replace)
	}
	return replacers, err
}

func (r *moduleReducer) Config() Configuration {
	if r.ownStore {
		return r.store.Config()
	}
	return r.m.Config()
}

func (r *moduleReducer) SetConfig(partial Configuration) {
	if r.ownStore {
		r.store.SetConfig(partial)
		return
	}
	r.m.SetConfig(partial)
}

func (r *moduleReducer) TestConfigSet() (cases []TestCase, err error) {
	if r.m.TestConfigSet == nil {
		return nil, nil
	}
	defer catch("TestConfigSet", errors.ErrTestMatrix, &err)
	return r.m.TestConfigSet()
}

// Finish checks ctx once up front; the hook itself cannot observe cancellation
func (r *moduleReducer) Finish(ctx context.Context) (err error) {
	if r.m.Finish == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	defer catch("Finish", errors.ErrFinish, &err)
	return r.m.Finish()
}

func callList(fn func() ([]string, error)) ([]string, error) {
	if fn == nil {
		return nil, nil
	}
	return fn()
}

// guardNodes wraps every resolver in nodes so a panic becomes an error
func guardNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n
		if fn, ok := n.Resolver(); ok {
			out[i] = Dynamic(guardResolver(fn))
		}
	}
	return out
}

func guardResolver(fn Resolver) Resolver {
	return func(cfg Configuration) (exp Expansion, err error) {
		defer catch("dynamic node", errors.ErrResolve, &err)
		exp, err = fn(cfg)
		if children, ok := exp.Nodes(); ok {
			exp = Many(guardNodes(children)...)
		}
		return exp, err
	}
}

func guardReplace(fn ReplaceFunc) ReplaceFunc {
	if fn == nil {
		return nil
	}
	return func(content, path string) (out string, err error) {
		defer catch("replacer", errors.ErrReduce, &err)
		return fn(content, path)
	}
}
