package morph

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/morph/pkg/errors"
	"github.com/arthur-debert/morph/pkg/harness"
	"github.com/spf13/cobra"
)

func parseCase(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, errors.Newf(errors.ErrInvalidInput, MsgErrCaseNumber, s)
	}
	return n, nil
}

func newTestCmd(a *app) *cobra.Command {
	var full, keep bool

	cmd := &cobra.Command{
		Use:     "test [template-source] [case-number]",
		Short:   MsgTestShort,
		Long:    MsgTestLong,
		Example: MsgTestExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext(cmd.Context())
			defer stop()

			wd, err := workDir()
			if err != nil {
				return err
			}
			opts := harness.Options{Full: full, Keep: keep, BaseDir: wd}
			if len(args) > 0 {
				opts.Source = args[0]
			}
			if len(args) > 1 {
				if opts.Case, err = parseCase(args[1]); err != nil {
					return err
				}
			}

			summary, err := harness.New(a.pipeline(), a.paths).Run(ctx, opts)
			var caseErr *harness.CaseError
			if stderrors.As(err, &caseErr) {
				a.out.Line("Warning", strings.TrimRight(harness.Describe(caseErr), "\n"))
			}
			if err != nil {
				return err
			}

			a.out.Success(fmt.Sprintf(MsgCasesPassed, summary.Passed, summary.Total))
			for _, dir := range summary.Kept {
				a.out.Path(MsgKeptDir, dir)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, MsgFlagFull)
	cmd.Flags().BoolVar(&keep, "keep", false, MsgFlagKeep)
	return cmd
}
