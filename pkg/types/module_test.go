package types_test

import (
	"context"
	"testing"

	"github.com/arthur-debert/morph/pkg/errors"
	"github.com/arthur-debert/morph/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleEmptyHooks(t *testing.T) {
	r := (&types.Module{}).Reducer()

	nodes, err := r.ConfigParameters()
	require.NoError(t, err)
	assert.Empty(t, nodes)

	for _, fn := range []func() ([]string, error){r.DirectoriesForRemove, r.FilesForRemove, r.DependenciesForRemove} {
		list, err := fn()
		require.NoError(t, err)
		assert.Empty(t, list)
	}

	replacers, err := r.FilesContentReplacers()
	require.NoError(t, err)
	assert.Empty(t, replacers)

	cases, err := r.TestConfigSet()
	require.NoError(t, err)
	assert.Empty(t, cases)

	assert.NoError(t, r.Finish(context.Background()))
}

func TestModuleKeepsConfigWhenUnmanaged(t *testing.T) {
	r := (&types.Module{Defaults: types.Configuration{"tabSize": 4}}).Reducer()
	r.SetConfig(types.Configuration{"type": "default"})

	assert.Equal(t, types.Configuration{"tabSize": 4, "type": "default"}, r.Config())
}

func TestModuleDelegatesManagedConfig(t *testing.T) {
	own := types.Configuration{}
	m := &types.Module{
		Config:    func() types.Configuration { return own },
		SetConfig: func(p types.Configuration) { own.Merge(p) },
	}
	r := m.Reducer()
	r.SetConfig(types.Configuration{"port": 8080})

	assert.Equal(t, 8080, own["port"])
	assert.Equal(t, own, r.Config())
}

func TestModuleDelegatesHooks(t *testing.T) {
	finished := 0
	m := &types.Module{
		FilesForRemove: func() ([]string, error) { return []string{"TemplateReducer.go"}, nil },
		TestConfigSet: func() ([]types.TestCase, error) {
			return []types.TestCase{{"type": "default"}}, nil
		},
		Finish: func() error {
			finished++
			return nil
		},
	}
	r := m.Reducer()

	files, err := r.FilesForRemove()
	require.NoError(t, err)
	assert.Equal(t, []string{"TemplateReducer.go"}, files)

	cases, err := r.TestConfigSet()
	require.NoError(t, err)
	require.Len(t, cases, 1)
	v, ok := cases[0].Lookup("type")
	assert.True(t, ok)
	assert.Equal(t, "default", v)

	require.NoError(t, r.Finish(context.Background()))
	assert.Equal(t, 1, finished)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, r.Finish(ctx), context.Canceled)
	assert.Equal(t, 1, finished)
}

func TestContextPrintf(t *testing.T) {
	var got string
	c := types.Context{Logf: func(format string, args ...any) { got = format }}
	c.Printf("hello")
	assert.Equal(t, "hello", got)

	types.Context{}.Printf("no logger is fine")
}

func TestModuleHookPanicsBecomeErrors(t *testing.T) {
	var none []string
	m := &types.Module{
		DirectoriesForRemove: func() ([]string, error) { return []string{none[2]}, nil },
		TestConfigSet:        func() ([]types.TestCase, error) { panic("no matrix") },
		Finish:               func() error { panic("finish exploded") },
	}
	r := m.Reducer()

	_, err := r.DirectoriesForRemove()
	assert.True(t, errors.IsErrorCode(err, errors.ErrReduce))
	assert.Equal(t, "DirectoriesForRemove", errors.GetErrorDetails(err)["hook"])

	_, err = r.TestConfigSet()
	assert.True(t, errors.IsErrorCode(err, errors.ErrTestMatrix))

	err = r.Finish(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrFinish))
	assert.Contains(t, err.Error(), "finish exploded")
}

func TestModuleGuardsResolversAndReplacers(t *testing.T) {
	m := &types.Module{
		ConfigParameters: func() ([]types.Node, error) {
			return []types.Node{
				types.Param(types.ConfigParameter{Name: "name", Description: "Name", Type: types.TypeText}),
				types.Dynamic(func(types.Configuration) (types.Expansion, error) {
					return types.Many(types.Dynamic(func(types.Configuration) (types.Expansion, error) {
						panic("nested resolver")
					})), nil
				}),
			}, nil
		},
		FilesContentReplacers: func() ([]types.ContentReplacer, error) {
			return []types.ContentReplacer{
				types.Replace(types.Exact("README.md"), func(content, path string) (string, error) {
					var parts []string
					return parts[3], nil
				}),
			}, nil
		},
	}
	r := m.Reducer()

	nodes, err := r.ConfigParameters()
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	_, ok := nodes[0].Parameter()
	assert.True(t, ok)

	resolve, ok := nodes[1].Resolver()
	require.True(t, ok)
	exp, err := resolve(types.Configuration{})
	require.NoError(t, err)
	children, ok := exp.Nodes()
	require.True(t, ok)
	nested, ok := children[0].Resolver()
	require.True(t, ok)
	_, err = nested(types.Configuration{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrResolve))

	replacers, err := r.FilesContentReplacers()
	require.NoError(t, err)
	require.Len(t, replacers, 1)
	_, err = replacers[0].Replace("content", "README.md")
	assert.True(t, errors.IsErrorCode(err, errors.ErrReduce))
	assert.Equal(t, "replacer", errors.GetErrorDetails(err)["hook"])
}
