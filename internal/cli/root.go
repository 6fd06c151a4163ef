package cli

import (
	"fmt"

	"github.com/empiricaly/create-empirica-app/internal/branding"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagVerbose        bool
	flagInfo           bool
	flagUseNpm         bool
	flagUseYarn        bool
	flagPackageManager string
	flagTemplate       string
)

func init() {
	f := rootCmd.Flags()
	f.BoolVar(&flagVerbose, "verbose", false, "Print additional logs")
	f.BoolVar(&flagInfo, "info", false, "Print environment debug info")
	f.BoolVar(&flagUseNpm, "use-npm", false, "Install dependencies with npm instead of meteor npm")
	f.BoolVar(&flagUseYarn, "use-yarn", false, "Install dependencies with yarn instead of meteor npm")
	f.StringVar(&flagPackageManager, "package-manager", "", "Package manager to install with (meteor, npm, yarn)")
	f.StringVar(&flagTemplate, "template", "", "Template name, directory, or git URL")
	_ = f.MarkHidden("template")
	rootCmd.MarkFlagsMutuallyExclusive("use-npm", "use-yarn", "package-manager")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " <project-directory>",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` creates a new Empirica experiment in <project-directory>:
it checks for the meteor toolchain, renders the app template, and installs
its dependencies.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCreate,
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionLine() + "\n")
	return rootCmd.Execute()
}

func versionLine() string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s)", branding.CLIName(), buildVersion, buildCommit, buildDate)
}
