package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sapslaj/awslaunch/internal/config"
	"github.com/sapslaj/awslaunch/internal/keyring"
	"github.com/sapslaj/awslaunch/internal/prompter"
)

// newExternalIDCmd creates the external-id command
func newExternalIDCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "external-id",
		Short: "Manage per-account external IDs in the OS keyring",
		Long: `Stores the external ID a role's trust policy requires in the OS keyring,
keyed by account ID. The launcher picks it up automatically when assuming
a role in that account, so it never has to appear on the command line.`,
	}

	cmd.AddCommand(newExternalIDSetCmd())
	cmd.AddCommand(newExternalIDRemoveCmd())

	return cmd
}

func newExternalIDSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <account-id>",
		Short: "Store the external ID for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExternalIDSet(cmd, args[0])
		},
	}
}

func newExternalIDRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <account-id>",
		Short: "Remove the stored external ID for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExternalIDRemove(cmd, args[0])
		},
	}
}

func runExternalIDSet(cmd *cobra.Command, accountID string) error {
	if !config.IsAccountID(accountID) {
		return fmt.Errorf("account ID must be digits, got %q", accountID)
	}
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}

	externalID, err := prompter.Secret(fmt.Sprintf("External ID for account %s", accountID))
	if err != nil {
		return fmt.Errorf("failed to read external ID: %w", err)
	}
	if externalID == "" {
		return errors.New("external ID must not be empty")
	}

	if err := keyring.SaveExternalID(accountID, externalID); err != nil {
		return err
	}

	cmd.Printf("External ID for account %s saved to the keyring\n", accountID)
	return nil
}

func runExternalIDRemove(cmd *cobra.Command, accountID string) error {
	if err := keyring.DeleteExternalID(accountID); err != nil {
		if errors.Is(err, keyring.ErrExternalIDNotFound) {
			return fmt.Errorf("no external ID stored for account %s", accountID)
		}
		return err
	}

	cmd.Printf("External ID for account %s removed from the keyring\n", accountID)
	return nil
}
