package generate

import (
	"context"

	"github.com/arthur-debert/morph/pkg/acquire"
	"github.com/arthur-debert/morph/pkg/logging"
	"github.com/arthur-debert/morph/pkg/reducer"
	"github.com/go-git/go-billy/v5/osfs"
)

var log = logging.GetLogger("generate")

// Options are the inputs of one create run
type Options struct {
	Destination string
	Source      string
	WorkDir     string
	SkipInstall bool
}

// Result describes a finished run
type Result struct {
	RunContext
	Source acquire.Source
	Report *reducer.Report
}

// Generator runs the create pipeline
type Generator struct {
	pipeline *Pipeline
	answers  reducer.AnswerSource
}

// New creates a generator resolving configuration with answers
func New(p *Pipeline, answers reducer.AnswerSource) *Generator {
	return &Generator{pipeline: p, answers: answers}
}

// Run generates a project. On any failure after the destination was
// created the destination is removed before Run returns.
func (g *Generator) Run(ctx context.Context, opts Options) (res *Result, err error) {
	rc, err := Validate(opts.Destination, opts.WorkDir)
	if err != nil {
		return nil, err
	}
	logger := logging.WithRun("generate", rc.RunID)
	logger.Info().Str("destination", rc.Destination).Str("project", rc.ProjectName).Msg("Generation started")

	guard := NewGuard(rc.Destination)
	defer func() {
		if cerr := guard.Close(); cerr != nil {
			logger.Error().Err(cerr).Msg("Cleanup failed")
		}
		if err != nil {
			logger.Error().Err(err).Str("state", guard.State().String()).Msg("Generation failed")
		}
	}()

	src, err := g.pipeline.Acquirer.Classify(opts.Source, opts.WorkDir)
	if err != nil {
		return nil, err
	}
	logger = logging.WithTemplate(logger, src.String())

	// Remote trees are fetched in checking; the copy itself moves the run on.
	from, err := g.pipeline.Acquirer.Open(ctx, src)
	if err != nil {
		return nil, err
	}
	if src.Kind == acquire.Local {
		guard.Advance(Copying)
	} else {
		guard.Advance(Copied)
	}
	g.pipeline.printf("Copying template %s", src)
	if _, err := acquire.CopyTree(ctx, from, osfs.New(rc.Destination), g.pipeline.Config.Template.Skip,
		src.Excludes(rc.Destination)...); err != nil {
		return nil, err
	}
	guard.Advance(Copied)

	prep, err := g.pipeline.Prepare(ctx, rc.Destination, rc.ProjectName)
	if err != nil {
		return nil, err
	}
	report, err := g.pipeline.Reduce(ctx, prep, g.answers, rc.Destination)
	if err != nil {
		return nil, err
	}
	if err := g.pipeline.Complete(ctx, prep, rc.Destination, opts.SkipInstall); err != nil {
		return nil, err
	}

	guard.Release()
	logger.Info().Int("rewritten", len(report.Rewritten)).Msg("Generation finished")
	return &Result{RunContext: *rc, Source: src, Report: report}, nil
}
