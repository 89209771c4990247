package main

import (
	"strings"

	"github.com/arthur-debert/morph/pkg/types"
)

func NewReducer(ctx types.Context) *types.Module {
	m := &types.Module{}
	store := types.NewConfigStore(types.Configuration{"type": "default"})
	m.Config = func() types.Configuration { return store.Config() }
	m.SetConfig = func(partial types.Configuration) { store.SetConfig(partial) }

	useDB := func() bool {
		c := store.Config()
		return c.String("type") == "default" || c.Contains("features", "database")
	}

	m.ConfigParameters = func() ([]types.Node, error) {
		return []types.Node{
			types.Param(types.ConfigParameter{
				Name:        "type",
				Description: "Select installation type",
				Type:        types.TypeRadio,
				Choices: []types.Choice{
					{Value: "default", Description: "Default + all features", Checked: true},
					{Value: "select", Description: "Select features"},
				},
			}),
			types.Dynamic(func(c types.Configuration) (types.Expansion, error) {
				if c.String("type") != "select" {
					return types.None(), nil
				}
				return types.One(types.ConfigParameter{
					Name:        "features",
					Description: "Select features",
					Type:        types.TypeCheckbox,
					Choices: []types.Choice{
						{Value: "database", Description: "Database", Checked: true},
					},
				}), nil
			}),
		}, nil
	}
	m.DirectoriesForRemove = func() ([]string, error) {
		if useDB() {
			return nil, nil
		}
		return []string{"src/database"}, nil
	}
	m.DependenciesForRemove = func() ([]string, error) {
		if useDB() {
			return nil, nil
		}
		return []string{"pg"}, nil
	}
	m.FilesContentReplacers = func() ([]types.ContentReplacer, error) {
		return []types.ContentReplacer{
			types.Replace(types.Exact("src/index.ts"), func(content, path string) (string, error) {
				if useDB() {
					return strings.ReplaceAll(content, "// DATABASE\n", "import './database/db'\n"), nil
				}
				return strings.ReplaceAll(content, "// DATABASE\n", ""), nil
			}),
			types.Replace(types.Exact("README.md"), func(content, path string) (string, error) {
				return strings.ReplaceAll(content, "{{name}}", ctx.ProjectName), nil
			}),
		}, nil
	}
	m.TestConfigSet = func() ([]types.TestCase, error) {
		return []types.TestCase{
			{"type": "default"},
			{"type": "select", "features": []string{}},
		}, nil
	}
	m.Finish = func() error {
		ctx.Printf("finished %s", ctx.ProjectName)
		return nil
	}
	return m
}
