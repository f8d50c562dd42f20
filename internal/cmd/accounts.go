package cmd

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/organizations"
	"github.com/spf13/cobra"

	"github.com/sapslaj/awslaunch/internal/aws"
	"github.com/sapslaj/awslaunch/internal/config"
)

// newAccountsCmd creates the accounts command
func newAccountsCmd() *cobra.Command {
	var organizationsProfile string

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List the accounts of the organization",
		Long: `Lists every account visible through the AWS Organizations API, with
display names from the config applied. Useful for finding the account ID
to pass to the launcher.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccounts(cmd, organizationsProfile)
		},
	}

	cmd.Flags().StringVar(&organizationsProfile, "organizations-profile", "", "AWS profile to use when gathering AWS Organizations information")

	return cmd
}

func runAccounts(cmd *cobra.Command, organizationsProfile string) error {
	ctx := cmd.Context()

	cfg, err := config.LoadOrCreateConfig(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	opts := &launchOptions{organizationsProfile: organizationsProfile}
	awsCfg, err := aws.LoadProfileConfig(ctx, effectiveOrganizationsProfile(opts, cfg))
	if err != nil {
		return err
	}

	accounts, err := aws.ListAccounts(ctx, organizations.NewFromConfig(awsCfg), cfg.AccountDisplayNames)
	if err != nil {
		return err
	}

	for _, account := range accounts {
		cmd.Printf("%s\t%s\t%s\n", account.ID, account.DisplayName, account.Status)
	}
	return nil
}
