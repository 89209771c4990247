package morph

import (
	"fmt"

	"github.com/arthur-debert/morph/internal/version"
	"github.com/arthur-debert/morph/pkg/errors"
	"github.com/arthur-debert/morph/pkg/guide"
	"github.com/spf13/cobra"
)

func newGuideCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "guide [topic]",
		Short:   MsgGuideShort,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r guide.Renderer = &guide.PlainRenderer{}
			if a.out.Styled() {
				r = guide.NewGlamourRenderer()
			}
			g, err := guide.Default(r)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				g.WriteList(cmd.OutOrStdout(), cmd.Root().Name()+" guide")
				return nil
			}
			t, ok := g.Topic(args[0])
			if !ok {
				return errors.Newf(errors.ErrNotFound, MsgUnknownTopic, args[0])
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), g.Render(t))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
