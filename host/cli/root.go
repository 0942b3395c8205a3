// Package cli implements the avrassist command line tool.
package cli

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"avrassist/core"
	"avrassist/host/serial"
)

var (
	verbose bool
	device  string
	baud    int
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "avrassist",
	Short: "ATmega328P peripheral configuration tool",
	Long: `Composes ADC, comparator, timer and watchdog register values from
named options, and applies them to a board running the avrassist monitor.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(cmd.ErrOrStderr())
		if !verbose {
			log.SetOutput(io.Discard)
		}
		core.SetDebugWriter(func(s string) { log.Println(s) })
		core.SetDebugEnabled(verbose)
	},
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "make verbose (enable debug logging)")
	rootCmd.PersistentFlags().StringVarP(&device, "device", "d", "", "serial device of the board, e.g. /dev/ttyUSB0")
	rootCmd.PersistentFlags().IntVarP(&baud, "baud", "b", serial.DefaultBaud, "baud rate of the monitor firmware")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "time limit for talking to the board")
}
