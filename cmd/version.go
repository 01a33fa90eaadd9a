package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd prints the installed emulator version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the emulator version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(currentReleaseVersion)
	},
}
