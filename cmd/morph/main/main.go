package main

import (
	"os"

	"github.com/arthur-debert/morph/cmd/morph"
	"github.com/arthur-debert/morph/pkg/ui"
	"github.com/arthur-debert/morph/pkg/ui/output"
)

func main() {
	rootCmd := morph.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		output.New(os.Stderr, ui.FormatAuto).Error(err)
		os.Exit(1)
	}
}
