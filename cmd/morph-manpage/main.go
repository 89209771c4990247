package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/morph/cmd/morph"
	"github.com/arthur-debert/morph/internal/version"
)

func main() {
	rootCmd := morph.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "MORPH",
		Section: "1",
		Source:  "morph " + version.Version,
		Manual:  "morph manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
