package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sapslaj/awslaunch/internal/config"
	"github.com/sapslaj/awslaunch/internal/logging"
)

var (
	cfgFile string
	verbose bool
	debug   bool
)

// NewRootCmd creates the root command
func NewRootCmd(version, commit, date string) *cobra.Command {
	opts := &launchOptions{}

	rootCmd := &cobra.Command{
		Use:   "awslaunch",
		Short: "Assume AWS IAM roles across the accounts of an organization",
		Long: `awslaunch emits shell commands for assuming IAM roles across the accounts
of an AWS organization. Wrap it in a shell function so the commands take
effect in the calling shell:

  awslaunch() { eval "$(command awslaunch "$@")"; }

Everything written to stdout is meant for eval; progress messages and
prompts go to stderr. Role mappings and account display names come from
~/.awslaunch.yaml.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.InitLogger(verbose, debug)

			if cfgFile == "" {
				if path, err := config.DefaultConfigPath(); err == nil {
					cfgFile = path
				}
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLaunch(cmd.Context(), opts)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/.awslaunch.yaml)")

	// Action flags
	rootCmd.Flags().BoolVarP(&opts.assume, "assume", "a", false, "Assume the role in the current shell")
	rootCmd.Flags().BoolVarP(&opts.browser, "browser", "b", false, "Open browser to the switch role URL")
	rootCmd.Flags().BoolVarP(&opts.save, "save", "s", false, "Save the role to an AWS shared profile")
	rootCmd.Flags().BoolVarP(&opts.url, "url", "u", false, "Print the switch role URL")
	rootCmd.Flags().BoolVarP(&opts.role, "role", "r", false, "Print the role ARN")

	// Selection flags
	rootCmd.Flags().StringVar(&opts.accountID, "account-id", "", "Pass the account ID explicitly")
	rootCmd.Flags().StringVar(&opts.roleName, "role-name", "", "Pass the role name explicitly")
	rootCmd.Flags().IntVar(&opts.durationHours, "duration-hours", 0, "Session duration in hours")
	rootCmd.Flags().StringVar(&opts.sourceProfile, "source-profile", "", "AWS profile to use when assuming a role")
	rootCmd.Flags().StringVar(&opts.organizationsProfile, "organizations-profile", "", "AWS profile to use when gathering AWS Organizations information")
	rootCmd.Flags().StringVar(&opts.externalID, "external-id", "", "Use an external ID when assuming the role (ignored by the browser actions)")
	rootCmd.Flags().StringVar(&opts.saveProfileName, "save-profile-name", "", "Profile name to save when using --save")

	// Add subcommands
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newAccountsCmd())
	rootCmd.AddCommand(newExternalIDCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}
