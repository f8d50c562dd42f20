package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			if commit != "" && commit != "none" {
				fmt.Printf("awslaunch %s (%s, built %s)\n", version, commit, date)
				return
			}
			fmt.Printf("awslaunch %s\n", version)
		},
	}
}
