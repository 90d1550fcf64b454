package archup

import (
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/archup/internal/version"
	"github.com/arthur-debert/archup/pkg/config"
	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/arthur-debert/archup/pkg/filesystem"
	"github.com/arthur-debert/archup/pkg/github"
	"github.com/arthur-debert/archup/pkg/logging"
	"github.com/arthur-debert/archup/pkg/paths"
	"github.com/arthur-debert/archup/pkg/provision"
	"github.com/arthur-debert/archup/pkg/runner"
	"github.com/arthur-debert/archup/pkg/status"
	"github.com/arthur-debert/archup/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalFlags are shared by the root command and its subcommands.
type globalFlags struct {
	verbosity  int
	dryRun     bool
	configPath string
	format     string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var (
		flags globalFlags
		yes   bool
		only  []string
		skip  []string
	)

	rootCmd := &cobra.Command{
		Use:     "archup [flags] <os> <distro> [env-file] [build-dir]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.MaximumNArgs(4),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProvision(cmd, &flags, provisionFlags{
				yes:  yes,
				only: only,
				skip: skip,
			}, args)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().String("workdir", "", MsgFlagWorkdir)
	rootCmd.PersistentFlags().StringVar(&flags.format, "format", "auto", MsgFlagFormat)

	// Provisioning flags
	rootCmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.Flags().BoolVarP(&yes, "yes", "y", false, MsgFlagYes)
	rootCmd.Flags().StringSliceVar(&only, "only", nil, MsgFlagOnly)
	rootCmd.Flags().StringSliceVar(&skip, "skip", nil, MsgFlagSkip)
	_ = rootCmd.RegisterFlagCompletionFunc("only", stepNamesCompletion)
	_ = rootCmd.RegisterFlagCompletionFunc("skip", stepNamesCompletion)

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newStatusCmd(&flags))
	rootCmd.AddCommand(newGenConfigCmd(&flags))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

type provisionFlags struct {
	yes  bool
	only []string
	skip []string
}

func runProvision(cmd *cobra.Command, flags *globalFlags, pf provisionFlags, args []string) error {
	format, err := ui.ParseFormat(flags.format)
	if err != nil {
		return err
	}

	cfg, p, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fs := filesystem.NewOS()
	if flags.dryRun {
		fs = filesystem.NewDryRun()
	}

	prov := &provision.Provisioner{
		Config:   cfg,
		Paths:    p,
		FS:       fs,
		Runner:   runner.New(flags.dryRun, runner.WithOutput(out, cmd.ErrOrStderr()), runner.WithInput(cmd.InOrStdin())),
		Reporter: provision.NewReporter(out),
		Prompter: newPrompter(cmd.InOrStdin(), out, pf.yes),
	}

	report, err := prov.Run(cmd.Context(), provision.Options{
		Args:   args,
		DryRun: flags.dryRun,
		Only:   pf.only,
		Skip:   pf.skip,
	})
	if err != nil {
		return err
	}
	if report == nil {
		return nil
	}

	if err := status.Render(out, *report, ui.Resolve(format, out)); err != nil {
		return err
	}
	if flags.dryRun {
		_, _ = io.WriteString(out, MsgDryRunNotice+"\n")
	}

	if report.Failed() {
		var names []string
		for _, e := range report.Steps {
			if e.Outcome == status.Failed {
				names = append(names, string(e.Category))
			}
		}
		return errors.Newf(errors.ErrCommandFailed, MsgStepsFailed, len(names), strings.Join(names, ", "))
	}
	return nil
}

// loadConfig loads the layered configuration, --workdir included, and
// resolves paths against the configured workdir.
func loadConfig(cmd *cobra.Command, flags *globalFlags) (*config.Config, *paths.Paths, error) {
	opts := config.LoadOptions{Path: flags.configPath, Explicit: true, Flags: cmd.Flags()}
	if flags.configPath == "" {
		defaults, err := paths.New("")
		if err != nil {
			return nil, nil, errors.Wrap(err, errors.ErrFileAccess, MsgErrInitPaths)
		}
		opts.Path = defaults.ConfigFile()
		opts.Explicit = false
	}

	cfg, err := config.Load(opts)
	if err != nil {
		return nil, nil, err
	}

	p, err := paths.New(cfg.Workdir)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrFileAccess, MsgErrInitPaths)
	}
	return cfg, p, nil
}

// newPrompter returns a prompter only when a person can answer it.
func newPrompter(in io.Reader, out io.Writer, yes bool) github.Prompter {
	if yes {
		return nil
	}
	f, ok := in.(*os.File)
	if !ok || !ui.IsInteractive(f) {
		return nil
	}
	return github.NewLinePrompter(in, out)
}

// stepNamesCompletion completes step names for --only and --skip
func stepNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return provision.StepNames, cobra.ShellCompDirectiveNoFileComp
}
