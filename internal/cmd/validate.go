package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sapslaj/awslaunch/internal/config"
)

// newValidateCmd creates the validate command
func newValidateCmd() *cobra.Command {
	var schemaVersion string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the config file",
		Long: `Checks the config file against the schema selected by its version field
and reports every problem found, not just the first one.

Pass --schema-version to check the document against a specific schema
revision instead of the one its version field selects.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, GetConfigFile(), schemaVersion)
		},
	}

	cmd.Flags().StringVar(&schemaVersion, "schema-version", "", "Schema revision to validate against (e.g. 0.1)")

	return cmd
}

func runValidate(cmd *cobra.Command, path, schemaVersion string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", config.ErrConfigNotFound, path)
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if schemaVersion == "" {
		if _, err := config.Parse(data); err != nil {
			return err
		}
		cmd.Printf("%s is valid\n", path)
		return nil
	}

	schema, ok := config.SchemaByName(schemaVersion)
	if !ok {
		return fmt.Errorf("unknown schema revision %q (known revisions: %s)", schemaVersion, schemaNames())
	}

	tree, err := config.ParseTree(data)
	if err != nil {
		return err
	}
	if _, err := config.Validate(tree, schema); err != nil {
		return err
	}

	cmd.Printf("%s is valid against schema %s\n", path, schema.Name)
	return nil
}

func schemaNames() string {
	names := []string{}
	for _, schema := range config.Schemas() {
		names = append(names, schema.Name)
	}
	return strings.Join(names, ", ")
}
