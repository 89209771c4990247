package generate

import (
	"context"

	"github.com/arthur-debert/morph/pkg/acquire"
	"github.com/arthur-debert/morph/pkg/config"
	"github.com/arthur-debert/morph/pkg/errors"
	"github.com/arthur-debert/morph/pkg/installer"
	"github.com/arthur-debert/morph/pkg/reducer"
	"github.com/arthur-debert/morph/pkg/sandbox"
	"github.com/arthur-debert/morph/pkg/types"
)

// ReducerLoader builds the reducer shipped in a template directory
type ReducerLoader interface {
	Load(ctx context.Context, dir string, tctx types.Context) (types.Reducer, error)
}

// LoaderFunc adapts a function to ReducerLoader
type LoaderFunc func(ctx context.Context, dir string, tctx types.Context) (types.Reducer, error)

// Load calls f
func (f LoaderFunc) Load(ctx context.Context, dir string, tctx types.Context) (types.Reducer, error) {
	return f(ctx, dir, tctx)
}

// Installer installs dependencies in a project directory
type Installer interface {
	Install(ctx context.Context, dir string) error
}

// InstallerFactory builds an installer for a run's install configuration
type InstallerFactory func(cfg config.InstallConfig) Installer

// Pipeline holds the collaborators shared by generation and the test harness
type Pipeline struct {
	Config       *config.Config
	Acquirer     *acquire.Acquirer
	Loader       ReducerLoader
	NewInstaller InstallerFactory
	// Logf receives progress lines meant for the user
	Logf func(format string, args ...any)
}

// NewPipeline wires the default collaborators for cfg
func NewPipeline(cfg *config.Config) *Pipeline {
	return &Pipeline{
		Config:   cfg,
		Acquirer: acquire.New(cfg.Template),
		Loader:   sandbox.NewLoader(cfg.Reducer),
		NewInstaller: func(ic config.InstallConfig) Installer {
			return installer.New(ic, nil)
		},
	}
}

func (p *Pipeline) printf(format string, args ...any) {
	if p.Logf != nil {
		p.Logf(format, args...)
		return
	}
	log.Info().Msgf(format, args...)
}

// Prepared is a template copy ready for resolution
type Prepared struct {
	Config *config.Config
	Engine *reducer.Engine
}

// Prepare applies the template's overrides and loads its reducer from dir
func (p *Pipeline) Prepare(ctx context.Context, dir, projectName string) (*Prepared, error) {
	overrides, err := config.LoadTemplateOverrides(dir, p.Config.Template.OverrideFile)
	if err != nil {
		return nil, err
	}
	cfg := p.Config.ApplyTemplateOverrides(overrides)

	tctx := types.Context{ProjectName: projectName, Directory: dir, Logf: p.printf}
	r, err := p.Loader.Load(ctx, dir, tctx)
	if err != nil {
		return nil, err
	}

	selfFiles := append([]string(nil), cfg.Reducer.Files...)
	if cfg.Template.OverrideFile != "" {
		selfFiles = append(selfFiles, cfg.Template.OverrideFile)
	}
	engine := reducer.New(r, reducer.Options{
		ProjectName:    projectName,
		ManifestFile:   cfg.Manifest.File,
		Indent:         cfg.Manifest.Indent,
		SelfDependency: cfg.Reducer.SelfDependency,
		SelfFiles:      selfFiles,
	})
	return &Prepared{Config: cfg, Engine: engine}, nil
}

// Reduce resolves the configuration with answers and applies the reduction to dir
func (p *Pipeline) Reduce(ctx context.Context, prep *Prepared, answers reducer.AnswerSource, dir string) (*reducer.Report, error) {
	if err := prep.Engine.ResolveParameters(ctx, answers); err != nil {
		return nil, err
	}
	return reducer.Apply(ctx, prep.Engine, dir)
}

// Complete installs dependencies (unless skipInstall) and runs the finish hook
func (p *Pipeline) Complete(ctx context.Context, prep *Prepared, dir string, skipInstall bool) error {
	if !skipInstall {
		p.printf("Installing packages...")
		if err := p.NewInstaller(prep.Config.Install).Install(ctx, dir); err != nil {
			return err
		}
	}
	if err := prep.Engine.Finish(ctx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, errors.ErrCanceled, "run canceled")
	}
	return nil
}
