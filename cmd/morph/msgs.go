package morph

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Generate projects from reducible templates"
	MsgCreateShort     = "Create a project from a template"
	MsgTestShort       = "Replay a template's test cases"
	MsgGuideShort      = "Read the template authoring guide"
	MsgCompletionShort = "Generate shell completion script"
	MsgVersionShort    = "Print version information"

	// Status messages
	MsgCreated        = "Project %s created at %s"
	MsgReport         = "Removed %d, rewrote %d, left %d unchanged"
	MsgCasesPassed    = "%d of %d cases passed"
	MsgKeptDir        = "Kept"
	MsgInterrupted    = "Interrupted, cleaning up"
	MsgVersionFormat  = "morph version %s\n  commit: %s\n  built:  %s\n"
	MsgUnknownTopic   = "unknown topic %q"
	MsgNoCommandGiven = "no command specified"

	// Error messages
	MsgErrCaseNumber = "case number must be a positive integer, got %q"
	MsgErrWorkDir    = "failed to read working directory"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig      = "Config file (default is $XDG_CONFIG_HOME/morph/config.toml)"
	MsgFlagFormat      = "Output format: auto, term or text"
	MsgFlagSkipInstall = "Do not install dependencies"
	MsgFlagFull        = "Also install dependencies and run the finish step"
	MsgFlagKeep        = "Keep the directory of every case"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/create-long.txt
	msgCreateLongRaw string
	MsgCreateLong    = strings.TrimSpace(msgCreateLongRaw)

	//go:embed msgs/create-example.txt
	msgCreateExampleRaw string
	MsgCreateExample    = strings.TrimRight(msgCreateExampleRaw, "\n")

	//go:embed msgs/test-long.txt
	msgTestLongRaw string
	MsgTestLong    = strings.TrimSpace(msgTestLongRaw)

	//go:embed msgs/test-example.txt
	msgTestExampleRaw string
	MsgTestExample    = strings.TrimRight(msgTestExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
