package morph

import (
	"context"

	"github.com/arthur-debert/morph/internal/version"
	"github.com/arthur-debert/morph/pkg/config"
	"github.com/arthur-debert/morph/pkg/errors"
	"github.com/arthur-debert/morph/pkg/generate"
	"github.com/arthur-debert/morph/pkg/guide"
	"github.com/arthur-debert/morph/pkg/logging"
	"github.com/arthur-debert/morph/pkg/paths"
	"github.com/arthur-debert/morph/pkg/prompt"
	"github.com/arthur-debert/morph/pkg/reducer"
	"github.com/arthur-debert/morph/pkg/ui"
	"github.com/arthur-debert/morph/pkg/ui/output"
	"github.com/spf13/cobra"
)

// app carries what the persistent flags resolve to
type app struct {
	verbosity  int
	configFile string
	format     string

	cfg   *config.Config
	paths *paths.Paths
	out   *output.Printer

	// newAnswers builds the answer source for create; cancel stops the run
	newAnswers func(cancel context.CancelFunc) reducer.AnswerSource
	// newPipeline builds the generation pipeline for cfg
	newPipeline func(cfg *config.Config) *generate.Pipeline
}

func defaultApp() *app {
	return &app{
		newAnswers: func(cancel context.CancelFunc) reducer.AnswerSource {
			return prompt.NewConsole(cancel)
		},
		newPipeline: generate.NewPipeline,
	}
}

// setup configures logging and loads the configuration
func (a *app) setup(cmd *cobra.Command) error {
	logging.SetupLogger(a.verbosity)
	logging.LogCommand(cmd.CommandPath(), cmd.Flags().Args())

	format, err := ui.ParseFormat(a.format)
	if err != nil {
		return err
	}
	a.out = output.New(cmd.OutOrStdout(), format)

	a.paths = paths.New()
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile:  a.configFile,
		DefaultFile: a.paths.ConfigFile(),
	})
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// pipeline returns a pipeline that reports progress through the printer
func (a *app) pipeline() *generate.Pipeline {
	p := a.newPipeline(a.cfg)
	p.Logf = a.out.Printf
	return p
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultApp())
}

func newRootCmd(a *app) *cobra.Command {
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "morph",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.String(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgNoCommandGiven)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&a.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newCreateCmd(a))
	rootCmd.AddCommand(newTestCmd(a))
	rootCmd.AddCommand(newGuideCmd(a))
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newVersionCmd())

	if g, err := guide.Default(guide.NewGlamourRenderer()); err == nil {
		g.Install(rootCmd)
	}
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}
