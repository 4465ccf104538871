package dotfiles

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dotfiles/internal/version"
	"github.com/arthur-debert/dotfiles/pkg/commands"
	"github.com/arthur-debert/dotfiles/pkg/config"
	"github.com/arthur-debert/dotfiles/pkg/logging"
	"github.com/arthur-debert/dotfiles/pkg/paths"
	"github.com/arthur-debert/dotfiles/pkg/planner"
	"github.com/arthur-debert/dotfiles/pkg/ui"
	"github.com/arthur-debert/dotfiles/pkg/ui/confirmations"
	"github.com/arthur-debert/dotfiles/pkg/ui/output"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	verbosity int
	root      string
	home      string
	format    string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "dotfiles",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&flags.root, "root", "r", "", MsgFlagRoot)
	rootCmd.PersistentFlags().StringVar(&flags.home, "home", "", MsgFlagHome)
	rootCmd.PersistentFlags().StringVar(&flags.format, "format", "", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})
	rootCmd.SetHelpCommandGroupID("misc")

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newStatusCmd(flags))
	rootCmd.AddCommand(newAddCmd(flags))
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// session is what every reconciling command needs before it starts.
type session struct {
	settings *config.Settings
	dirs     *paths.Locations
	renderer *output.Renderer
}

// newSession layers the settings file, environment and flags, then checks
// the repository root and picks a renderer for cmd's output.
func newSession(cmd *cobra.Command, flags *globalFlags) (*session, error) {
	settings, err := config.LoadSettings(paths.SettingsFilePath(), map[string]interface{}{
		"root":          flags.root,
		"home":          flags.home,
		"output.format": flags.format,
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrSettings, err)
	}

	dirs, err := settings.Locations()
	if err != nil {
		return nil, err
	}

	format, err := ui.ParseFormat(settings.Output.Format)
	if err != nil {
		return nil, err
	}
	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("dotfiles_root", dirs.DotfilesRoot).
		Str("home", dirs.HomeDir).
		Str("format", format.String()).
		Msg("Session ready")
	return &session{settings: settings, dirs: dirs, renderer: renderer}, nil
}

// newConfirmer asks on the terminal unless the command's input was replaced.
func newConfirmer(cmd *cobra.Command) confirmations.Confirmer {
	if in := cmd.InOrStdin(); in != os.Stdin {
		return confirmations.NewLineConfirmer(in, cmd.OutOrStdout())
	}
	return confirmations.NewConsoleConfirmer()
}

func newStatusCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		Example: MsgStatusExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags)
			if err != nil {
				return err
			}

			result, err := commands.Status(commands.StatusOptions{
				DotfilesRoot: s.dirs.DotfilesRoot,
				HomeDir:      s.dirs.HomeDir,
				Ignore:       s.settings.Walk.Ignore,
				Confirmer:    newConfirmer(cmd),
			})
			if err != nil {
				return err
			}

			return s.renderer.RenderStatus(result)
		},
	}
}

func newAddCmd(flags *globalFlags) *cobra.Command {
	var (
		assumeYes bool
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:     "add <path>",
		Short:   MsgAddShort,
		Long:    MsgAddLong,
		Example: MsgAddExample,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags)
			if err != nil {
				return err
			}

			var renderErr error
			result, err := commands.Add(cmd.Context(), commands.AddOptions{
				DotfilesRoot: s.dirs.DotfilesRoot,
				HomeDir:      s.dirs.HomeDir,
				Path:         args[0],
				AssumeYes:    assumeYes,
				DryRun:       dryRun,
				Confirmer:    newConfirmer(cmd),
				Show: func(plan *planner.Plan) {
					renderErr = s.renderer.RenderPlan(plan)
				},
			})
			if err != nil {
				return err
			}
			if renderErr != nil {
				return renderErr
			}

			if result.DryRun && !result.Plan.IsEmpty() {
				return s.renderer.RenderDryRun()
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, MsgFlagYes)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)

	return cmd
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
