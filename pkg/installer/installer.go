// Package installer runs the package manager inside a generated project.
package installer

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/arthur-debert/morph/pkg/config"
	"github.com/arthur-debert/morph/pkg/errors"
	"github.com/arthur-debert/morph/pkg/logging"
	"github.com/rs/zerolog"
)

// Command is one process invocation
type Command struct {
	Name   string
	Args   []string
	Dir    string
	Env    []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Runner executes a command and waits for it
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

// Run starts cmd and waits for it to exit
func (ExecRunner) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = c.Env
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	return cmd.Run()
}

// Installer installs a project's dependencies
type Installer struct {
	cfg    config.InstallConfig
	runner Runner
	logger zerolog.Logger
}

// New creates an installer using runner; a nil runner uses ExecRunner
func New(cfg config.InstallConfig, runner Runner) *Installer {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Installer{
		cfg:    cfg,
		runner: runner,
		logger: logging.GetLogger("installer"),
	}
}

// Install runs the configured command in dir with the terminal attached
func (i *Installer) Install(ctx context.Context, dir string) error {
	if i.cfg.Command == "" {
		return errors.New(errors.ErrInvalidInput, "install command is empty")
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return errors.Newf(errors.ErrFileAccess, "working directory does not exist: %s", dir)
	}

	logging.LogCommand(i.cfg.Command, i.cfg.Args)
	i.logger.Info().
		Str("command", i.cfg.Command).
		Strs("args", i.cfg.Args).
		Str("workingDir", dir).
		Msg("Installing dependencies")

	err := i.runner.Run(ctx, Command{
		Name:   i.cfg.Command,
		Args:   i.cfg.Args,
		Dir:    dir,
		Env:    os.Environ(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	if err != nil {
		if ctx.Err() != nil {
			return errors.Wrap(ctx.Err(), errors.ErrCanceled, "install canceled")
		}
		i.logger.Error().Err(err).Str("command", i.cfg.Command).Msg("Install failed")
		return errors.Wrapf(err, errors.ErrInstall, "%s failed", i.cfg.Command).
			WithDetail("dir", dir)
	}

	i.logger.Info().Str("command", i.cfg.Command).Msg("Dependencies installed")
	return nil
}
