package harness

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/morph/pkg/acquire"
	"github.com/arthur-debert/morph/pkg/errors"
	"github.com/arthur-debert/morph/pkg/generate"
	"github.com/arthur-debert/morph/pkg/logging"
	"github.com/arthur-debert/morph/pkg/paths"
	"github.com/arthur-debert/morph/pkg/prompt"
	"github.com/arthur-debert/morph/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Options are the inputs of one test run
type Options struct {
	// Source is the template location; empty means the configured default
	Source string
	// Case selects a single 1-based case; 0 runs the whole matrix
	Case int
	// Full also runs install and the finish hook for every case
	Full bool
	// Keep leaves passing case directories in place
	Keep bool
	// BaseDir is where case directories are created
	BaseDir string
}

// Summary describes a completed run
type Summary struct {
	RunID  string
	Total  int
	Run    int
	Passed int
	// Kept lists case directories left on disk
	Kept []string
}

// CaseError is returned when a case fails. Its directory is left as it was
// at the moment of failure, with the transcript written inside.
type CaseError struct {
	Case       int
	Total      int
	Dir        string
	Transcript string
	Lines      []string
	Err        error
}

func (e *CaseError) Error() string {
	return fmt.Sprintf("case %d of %d failed: %v", e.Case, e.Total, e.Err)
}

func (e *CaseError) Unwrap() error {
	return e.Err
}

// Harness runs template test matrices
type Harness struct {
	pipeline *generate.Pipeline
	paths    *paths.Paths
	now      func() time.Time
}

// New creates a harness over p; staging directories live under pp's cache
func New(p *generate.Pipeline, pp *paths.Paths) *Harness {
	return &Harness{pipeline: p, paths: pp, now: time.Now}
}

func (h *Harness) printf(format string, args ...any) {
	if h.pipeline.Logf != nil {
		h.pipeline.Logf(format, args...)
	}
}

// Run replays the matrix
func (h *Harness) Run(ctx context.Context, opts Options) (*Summary, error) {
	summary := &Summary{RunID: uuid.NewString()}
	logger := logging.WithRun("harness", summary.RunID)

	if opts.Case < 0 {
		return nil, errors.Newf(errors.ErrInvalidInput, "case number must be positive, got %d", opts.Case)
	}
	base := opts.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to read working directory")
		}
		base = wd
	}

	src, err := h.pipeline.Acquirer.Classify(opts.Source, base)
	if err != nil {
		return nil, err
	}
	if src.Kind == acquire.Remote {
		staged, cleanup, err := h.stage(ctx, src)
		if err != nil {
			return nil, err
		}
		defer cleanup()
		src = staged
	}
	logger = logging.WithTemplate(logger, src.String())
	logger.Info().Msg("Test run started")

	var matrix []types.TestCase
	index := 0
	if opts.Case > 0 {
		index = opts.Case - 1
	}

	for matrix == nil || index < len(matrix) {
		c := &caseRun{harness: h, opts: opts, number: index + 1, kept: summary.Kept, logger: logger}
		cases, err := c.run(ctx, src, base, matrix)
		if matrix == nil {
			matrix = cases
			summary.Total = len(matrix)
		}
		if c.ran {
			summary.Run++
		}
		if err != nil {
			logger.Error().Err(err).Int("case", index+1).Msg("Test run stopped")
			return summary, err
		}
		summary.Passed++
		if opts.Keep {
			summary.Kept = append(summary.Kept, c.dir)
		}
		if opts.Case > 0 {
			break
		}
		index++
	}

	logger.Info().Int("passed", summary.Passed).Int("total", summary.Total).Msg("Test run finished")
	return summary, nil
}

// stage downloads a remote template once and returns it as a local source
func (h *Harness) stage(ctx context.Context, src acquire.Source) (acquire.Source, func(), error) {
	dir, err := h.paths.StagingDir()
	if err != nil {
		return acquire.Source{}, nil, err
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	if _, err := h.pipeline.Acquirer.Acquire(ctx, src, dir); err != nil {
		cleanup()
		return acquire.Source{}, nil, err
	}
	h.printf("> Template %s staged", src)
	return acquire.Source{Raw: dir, Kind: acquire.Local, Path: dir}, cleanup, nil
}

// caseDir returns a fresh test<unix-millis> directory path under base
func (h *Harness) caseDir(base string) string {
	prefix := h.pipeline.Config.Test.WorkdirPrefix
	ms := h.now().UnixMilli()
	for {
		dir := filepath.Join(base, fmt.Sprintf("%s%d", prefix, ms))
		if _, err := os.Lstat(dir); os.IsNotExist(err) {
			return dir
		}
		ms++
	}
}

type caseRun struct {
	harness *Harness
	opts    Options
	number  int
	kept    []string
	dir     string
	ran     bool
	logger  zerolog.Logger
}

// run copies the template, reads the matrix when it is not known yet and
// runs case c.number against it. It returns the matrix it used.
func (c *caseRun) run(ctx context.Context, src acquire.Source, base string, matrix []types.TestCase) ([]types.TestCase, error) {
	h := c.harness
	c.dir = h.caseDir(base)
	name := filepath.Base(c.dir)
	c.logger = logging.WithCase(c.logger, c.number, c.dir)

	guard := generate.NewGuard(c.dir)
	defer func() {
		if err := guard.Close(); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to remove case directory")
		}
	}()

	guard.Advance(generate.Copying)
	if _, err := h.pipeline.Acquirer.Acquire(ctx, src, c.dir, c.kept...); err != nil {
		return matrix, err
	}
	guard.Advance(generate.Copied)

	prep, err := h.pipeline.Prepare(ctx, c.dir, name)
	if err != nil {
		if ctx.Err() != nil {
			return matrix, errors.Wrap(ctx.Err(), errors.ErrCanceled, "test run canceled")
		}
		guard.Release()
		return matrix, &CaseError{Case: c.number, Total: len(matrix), Dir: c.dir, Err: err}
	}

	if matrix == nil {
		cases, err := prep.Engine.TestConfigSet()
		if err != nil {
			return matrix, err
		}
		if len(cases) == 0 {
			return []types.TestCase{}, errors.New(errors.ErrTestMatrix, "the reducer's test matrix is empty, nothing to test")
		}
		matrix = cases
	}
	if c.number > len(matrix) {
		return matrix, errors.Newf(errors.ErrTestMatrix, "there is no case %d, the matrix has %d", c.number, len(matrix)).
			WithDetail("cases", len(matrix))
	}

	c.ran = true
	h.printf("")
	h.printf("%s", strings.ToUpper(fmt.Sprintf("=== Testing case %d of %d ===", c.number, len(matrix))))
	h.printf("> Fake user input:")
	answers := prompt.NewFixed(matrix[c.number-1], func(line string) { h.printf("  %s", line) })

	err = c.reduce(ctx, prep, answers)
	if err == nil {
		if c.opts.Keep {
			guard.Release()
		}
		c.logger.Info().Msg("Case passed")
		return matrix, nil
	}
	if ctx.Err() != nil {
		return matrix, errors.Wrap(ctx.Err(), errors.ErrCanceled, "test run canceled")
	}

	// Keep the directory as evidence.
	guard.Release()
	transcript := filepath.Join(c.dir, prep.Config.Test.TranscriptFile)
	if werr := answers.Transcript.WriteFile(transcript); werr != nil {
		c.logger.Warn().Err(werr).Msg("Failed to save transcript")
		transcript = ""
	}
	return matrix, &CaseError{
		Case:       c.number,
		Total:      len(matrix),
		Dir:        c.dir,
		Transcript: transcript,
		Lines:      answers.Transcript.Lines(),
		Err:        err,
	}
}

func (c *caseRun) reduce(ctx context.Context, prep *generate.Prepared, answers *prompt.Fixed) error {
	p := c.harness.pipeline
	if _, err := p.Reduce(ctx, prep, answers, c.dir); err != nil {
		return err
	}
	if !c.opts.Full {
		return nil
	}
	return p.Complete(ctx, prep, c.dir, false)
}

// Describe renders a failure for the terminal
func Describe(err *CaseError) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Template installation which caused the error is saved here: %s\n", err.Dir)
	if err.Transcript != "" && len(err.Lines) > 0 {
		fmt.Fprintf(&b, "Fake user input (also saved at %s):\n", err.Transcript)
		for _, line := range err.Lines {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}
	return b.String()
}
