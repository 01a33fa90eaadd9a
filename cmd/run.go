package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miklilad/chip8/internal/beep"
	"github.com/miklilad/chip8/internal/chip8"
	"github.com/miklilad/chip8/internal/renderer"
)

var (
	flavorName   string
	cyclesPerSec int
	fgColorHex   string
	bgColorHex   string
)

// runCmd boots the machine with a ROM and opens the window.
var runCmd = &cobra.Command{
	Use:   "run path/to/rom",
	Short: "Run a ROM",
	Args:  cobra.ExactArgs(1),
	RunE:  runEmulator,

	SilenceUsage: true,
}

func init() {
	runCmd.Flags().StringVar(&flavorName, "flavor", "cosmac-vip", "interpreter flavor: cosmac-vip or modern")
	runCmd.Flags().IntVar(&cyclesPerSec, "cps", chip8.DefaultCyclesPerSec, "CPU instructions per second")
	runCmd.Flags().StringVar(&fgColorHex, "fg", "FFFFFFFF", "rgba foreground color in hex. white is default")
	runCmd.Flags().StringVar(&bgColorHex, "bg", "000000FF", "rgba background color in hex. black is default")
}

func runEmulator(cmd *cobra.Command, args []string) error {
	flavor, err := chip8.ParseFlavor(flavorName)
	if err != nil {
		return err
	}

	fgColor, err := renderer.DecodeColorFromHex(fgColorHex)
	if err != nil {
		return fmt.Errorf("couldn't decode fg color from hex %s: %w", fgColorHex, err)
	}
	bgColor, err := renderer.DecodeColorFromHex(bgColorHex)
	if err != nil {
		return fmt.Errorf("couldn't decode bg color from hex %s: %w", bgColorHex, err)
	}

	rom, err := chip8.NewRomFromFile(args[0])
	if err != nil {
		return fmt.Errorf("couldn't create a rom from the file: %w", err)
	}

	vm := chip8.New(rom, chip8.Config{
		Flavor: flavor,
	})

	beeper, err := beep.New()
	if err != nil {
		return fmt.Errorf("couldn't create a beeper: %w", err)
	}

	r := renderer.NewFromConfig(vm, beeper, renderer.Config{
		FgColor:      fgColor,
		BgColor:      bgColor,
		CyclesPerSec: cyclesPerSec,
	})
	if err := r.Run(); err != nil {
		return fmt.Errorf("couldn't run a renderer: %w", err)
	}

	return nil
}
