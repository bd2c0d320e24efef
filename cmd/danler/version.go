package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the application version.
// Set at build time with -ldflags "-X main.Version=1.0.0".
var Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
