package morph

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/morph/pkg/errors"
	"github.com/arthur-debert/morph/pkg/generate"
	"github.com/spf13/cobra"
)

// signalContext cancels the returned context on SIGINT or SIGTERM
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func workDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileAccess, MsgErrWorkDir)
	}
	return wd, nil
}

func newCreateCmd(a *app) *cobra.Command {
	var skipInstall bool

	cmd := &cobra.Command{
		Use:     "create <destination> [template-source]",
		Short:   MsgCreateShort,
		Long:    MsgCreateLong,
		Example: MsgCreateExample,
		GroupID: "core",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext(cmd.Context())
			defer stop()
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			wd, err := workDir()
			if err != nil {
				return err
			}
			opts := generate.Options{
				Destination: args[0],
				WorkDir:     wd,
				SkipInstall: skipInstall,
			}
			if len(args) > 1 {
				opts.Source = args[1]
			}

			gen := generate.New(a.pipeline(), a.newAnswers(cancel))
			res, err := gen.Run(ctx, opts)
			if err != nil {
				if ctx.Err() != nil {
					a.out.Line("Warning", MsgInterrupted)
				}
				return err
			}

			a.out.Success(fmt.Sprintf(MsgCreated, res.ProjectName, res.Destination))
			a.out.Line("Muted", fmt.Sprintf(MsgReport,
				len(res.Report.Removed), len(res.Report.Rewritten), res.Report.Unchanged))
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipInstall, "skip-install", false, MsgFlagSkipInstall)
	return cmd
}
