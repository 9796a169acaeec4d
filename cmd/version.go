package cmd

import (
	"fmt"

	"github.com/bitrise-io/codeguardian/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the version of CodeGuardian`,
	// Skips settings resolution so a broken settings file doesn't hide the version
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "CodeGuardian v%s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
