package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const currentReleaseVersion = "v0.1.0"

// rootCmd is the base for all commands.
var rootCmd = &cobra.Command{
	Use:   "chip8 [command]",
	Short: "chip8 is a CHIP-8 emulator",
	Long:  "chip8 emulates the COSMAC VIP flavor of CHIP-8 and its modern derivative",
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the emulator according to the user's command and flags.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
