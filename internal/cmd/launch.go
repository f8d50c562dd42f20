package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/organizations"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/pkg/browser"

	"github.com/sapslaj/awslaunch/internal/aws"
	"github.com/sapslaj/awslaunch/internal/config"
	"github.com/sapslaj/awslaunch/internal/keyring"
	"github.com/sapslaj/awslaunch/internal/logging"
	"github.com/sapslaj/awslaunch/internal/prompter"
	"github.com/sapslaj/awslaunch/internal/shell"
)

// defaultRoleName is assumed when the config maps no roles to an account.
// AWS creates this role in every account joined to an organization.
const defaultRoleName = "OrganizationAccountAccessRole"

type launchOptions struct {
	assume  bool
	browser bool
	save    bool
	url     bool
	role    bool

	accountID            string
	roleName             string
	durationHours        int
	sourceProfile        string
	organizationsProfile string
	externalID           string
	saveProfileName      string
}

var errNoAction = errors.New(`at least one action flag is required:
  -a, --assume    assume the role in the current shell
  -b, --browser   open browser to the switch role URL
  -s, --save      save the role to an AWS shared profile
  -u, --url       print the switch role URL
  -r, --role      print the role ARN`)

// runLaunch resolves an account and role from the config plus flags, then
// performs every requested action in a fixed order. Shell commands go to
// stdout for the eval wrapper, everything else to stderr.
func runLaunch(ctx context.Context, opts *launchOptions) error {
	if !opts.assume && !opts.browser && !opts.save && !opts.url && !opts.role {
		return errNoAction
	}

	if opts.accountID != "" && !config.IsAccountID(opts.accountID) {
		return fmt.Errorf("account ID must be digits, got %q", opts.accountID)
	}

	cfg, err := config.LoadOrCreateConfig(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	account, err := chooseAccount(ctx, opts, cfg)
	if err != nil {
		return err
	}

	roleName, err := chooseRoleName(opts, cfg, account.ID)
	if err != nil {
		return err
	}

	sourceProfile := effectiveSourceProfile(opts, cfg)
	roleARN := aws.RoleARN(account.ID, roleName)
	switchURL := aws.SwitchRoleURL(roleName, account.ID, account.DisplayName)

	logging.Debug("launch target resolved",
		"account_id", account.ID,
		"role_arn", roleARN,
		"source_profile", sourceProfile)

	var stsClient *sts.Client
	var sessionName string
	if opts.assume || opts.save {
		awsCfg, err := aws.LoadProfileConfig(ctx, sourceProfile)
		if err != nil {
			return err
		}
		stsClient = sts.NewFromConfig(awsCfg)
		sessionName = aws.SessionName(ctx, stsClient)
	}

	emit := shell.New()

	if opts.assume {
		creds, err := aws.AssumeRole(ctx, stsClient, aws.AssumeRoleInput{
			RoleARN:       roleARN,
			SessionName:   sessionName,
			DurationHours: effectiveDurationHours(opts, cfg),
			ExternalID:    resolveExternalID(opts, account.ID),
		})
		if err != nil {
			return err
		}
		emit.Export("AWS_ACCESS_KEY_ID", creds.AccessKeyID)
		emit.Export("AWS_SECRET_ACCESS_KEY", creds.SecretAccessKey)
		emit.Export("AWS_SESSION_TOKEN", creds.SessionToken)
		emit.Msgf("'%s' from '%s' assumed.", roleARN, account.DisplayName)
	}

	if opts.browser {
		emit.Msgf("opening browser to '%s'", switchURL)
		if err := browser.OpenURL(switchURL); err != nil {
			return fmt.Errorf("failed to open browser: %w\nURL: %s", err, switchURL)
		}
	}

	if opts.save {
		if err := saveRoleAssume(opts, emit, account, roleName, sourceProfile, sessionName); err != nil {
			return err
		}
	}

	if opts.url {
		emit.Echo(switchURL)
	}

	if opts.role {
		emit.Echo(roleARN)
	}

	emit.Finish()
	return nil
}

// chooseAccount picks the launch target. An explicit --account-id short
// circuits the Organizations listing when the config carries a display name
// for it, and degrades to the bare ID when the listing is unavailable.
func chooseAccount(ctx context.Context, opts *launchOptions, cfg *config.Config) (aws.Account, error) {
	if opts.accountID != "" {
		if name, ok := cfg.DisplayName(opts.accountID); ok {
			return aws.Account{ID: opts.accountID, DisplayName: name}, nil
		}
	}

	accounts, err := listOrganizationAccounts(ctx, opts, cfg)
	if err != nil {
		if opts.accountID != "" {
			logging.Warn("could not list organization accounts", "error", err)
			return aws.Account{ID: opts.accountID, DisplayName: opts.accountID}, nil
		}
		return aws.Account{}, err
	}

	if opts.accountID != "" {
		account, err := aws.FindAccount(accounts, opts.accountID)
		if err != nil {
			logging.Warn("account not in the organization listing", "account_id", opts.accountID)
			return aws.Account{ID: opts.accountID, DisplayName: opts.accountID}, nil
		}
		return account, nil
	}

	switch len(accounts) {
	case 0:
		return aws.Account{}, errors.New("no accounts found in the organization")
	case 1:
		return accounts[0], nil
	}

	var b strings.Builder
	b.WriteString("multiple accounts available, pass --account-id:\n")
	for _, account := range accounts {
		fmt.Fprintf(&b, "  %s\n", account.Label())
	}
	return aws.Account{}, errors.New(strings.TrimSuffix(b.String(), "\n"))
}

func listOrganizationAccounts(ctx context.Context, opts *launchOptions, cfg *config.Config) ([]aws.Account, error) {
	awsCfg, err := aws.LoadProfileConfig(ctx, effectiveOrganizationsProfile(opts, cfg))
	if err != nil {
		return nil, err
	}
	return aws.ListAccounts(ctx, organizations.NewFromConfig(awsCfg), cfg.AccountDisplayNames)
}

// chooseRoleName picks the role to assume: the --role-name flag wins, then
// the config mapping for the account, then the organization default role.
func chooseRoleName(opts *launchOptions, cfg *config.Config, accountID string) (string, error) {
	if opts.roleName != "" {
		return opts.roleName, nil
	}

	roles := cfg.RolesForAccount(accountID)
	switch len(roles) {
	case 0:
		return defaultRoleName, nil
	case 1:
		return roles[0], nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "multiple roles configured for account %s, pass --role-name:\n", accountID)
	for _, role := range roles {
		fmt.Fprintf(&b, "  %s\n", role)
	}
	return "", errors.New(strings.TrimSuffix(b.String(), "\n"))
}

// saveRoleAssume writes the resolved role into the AWS shared config file so
// other tools can use it via --profile or AWS_PROFILE.
func saveRoleAssume(opts *launchOptions, emit *shell.Emitter, account aws.Account, roleName, sourceProfile, sessionName string) error {
	roleARN := aws.RoleARN(account.ID, roleName)

	emit.Msgf("saving role assume to an AWS profile")
	emit.Msgf("Source profile: %s", sourceProfile)
	emit.Msgf("Account name: %s", account.DisplayName)
	emit.Msgf("Role ARN: %s", roleARN)
	emit.Msgf("Role Session Name: %s", sessionName)

	configPath, err := aws.DefaultSharedConfigPath()
	if err != nil {
		return err
	}

	profileName := opts.saveProfileName
	if profileName == "" {
		profileName, err = prompter.String("Enter the profile name to save", aws.DefaultProfileName(account.DisplayName, roleName))
		if err != nil {
			return fmt.Errorf("failed to read profile name: %w", err)
		}

		if aws.ProfileExists(configPath, profileName) {
			overwrite, err := prompter.Confirm(fmt.Sprintf("profile '%s' already exists, overwrite?", profileName), true)
			if err != nil {
				return err
			}
			if !overwrite {
				return errors.New("profile save cancelled")
			}
		}
	}

	emit.Msgf("Profile Name: %s", profileName)

	if err := aws.SaveProfile(configPath, aws.Profile{
		Name:          profileName,
		SourceProfile: sourceProfile,
		RoleARN:       roleARN,
		SessionName:   sessionName,
	}); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	emit.Msgf("Profile saved. Use `--profile %s` or `AWS_PROFILE=%s` to use it", profileName, profileName)
	return nil
}

// resolveExternalID prefers the flag, then the external ID stored in the OS
// keyring for the account. Keyring misses are not errors.
func resolveExternalID(opts *launchOptions, accountID string) string {
	if opts.externalID != "" {
		return opts.externalID
	}

	externalID, err := keyring.GetExternalID(accountID)
	if err != nil {
		if !errors.Is(err, keyring.ErrExternalIDNotFound) {
			logging.Debug("keyring lookup failed", "error", err)
		}
		return ""
	}
	return externalID
}

func effectiveSourceProfile(opts *launchOptions, cfg *config.Config) string {
	if opts.sourceProfile != "" {
		return opts.sourceProfile
	}
	if cfg.SourceProfile != "" {
		return cfg.SourceProfile
	}
	return "default"
}

func effectiveOrganizationsProfile(opts *launchOptions, cfg *config.Config) string {
	if opts.organizationsProfile != "" {
		return opts.organizationsProfile
	}
	if cfg.OrganizationsProfile != "" {
		return cfg.OrganizationsProfile
	}
	return effectiveSourceProfile(opts, cfg)
}

func effectiveDurationHours(opts *launchOptions, cfg *config.Config) int {
	if opts.durationHours > 0 {
		return opts.durationHours
	}
	return cfg.DurationHours
}
