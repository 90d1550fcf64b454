package archup

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Provision an Arch Linux machine for a Django project"
	MsgStatusShort     = "Show the summary of the last provisioning run"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Write man pages for archup"
	MsgGenConfigShort  = "Generate the default configuration file"

	// Status messages
	MsgDryRunNotice     = "\nDRY RUN MODE - No changes were made"
	MsgNoLastRun        = "No provisioning run has been recorded yet."
	MsgConfigWritten    = "Wrote default configuration to %s\n"
	MsgManWritten       = "Wrote man pages to %s\n"
	MsgStepsFailed      = "%d step(s) failed: %s"
	MsgUnsupportedShell = "unsupported shell %q"

	// Error messages
	MsgErrInitPaths  = "failed to initialize paths"
	MsgErrLoadConfig = "failed to load configuration"
	MsgErrReadStatus = "failed to read the last run"
	MsgErrConfigSet  = "configuration file %s already exists"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Preview changes without executing them"
	MsgFlagConfig  = "Path to the configuration file"
	MsgFlagWorkdir = "Directory the project is cloned into (default: current directory)"
	MsgFlagYes     = "Never prompt; give up on the first failed GitHub login"
	MsgFlagOnly    = "Run only these steps (" + stepList + ")"
	MsgFlagSkip    = "Skip these steps"
	MsgFlagFormat  = "Summary format: auto, terminal, text or yaml"
	MsgFlagWrite   = "Write the configuration file instead of printing it"
	MsgFlagManDir  = "Directory to write the man pages to"
)

const stepList = "aliases, packages, database, clone, venv, config, deps, migrate, cleanup"

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
