package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is stamped at build time via -ldflags.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the jap client version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", app, version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
