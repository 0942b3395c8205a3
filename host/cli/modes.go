package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"avrassist/core"
	"avrassist/internal/timer"
	"avrassist/timer1"
)

func printModes(w io.Writer, title string, table core.ModeTable, info func(uint8) timer.ModeInfo) {
	fmt.Fprintln(w, regColor.Sprint(title))
	for i := range table {
		e := table.Lookup(uint8(i))
		m := info(uint8(i))
		line := fmt.Sprintf("  %2d  %-16s %-8s A %08b  B %08b", i, m.Name, m.Kind, e.Primary, e.Secondary)
		if e.Reserved {
			line = dimColor.Sprint(line)
		}
		fmt.Fprintln(w, line)
	}
}

var modesCmd = &cobra.Command{
	Use:       "modes [timer0|timer1|timer2]",
	Short:     "List timer waveform generation modes",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"timer0", "timer1", "timer2"},
	RunE: func(cmd *cobra.Command, args []string) error {
		which := ""
		if len(args) > 0 {
			which = args[0]
		}
		out := cmd.OutOrStdout()
		mode8 := func(n uint8) timer.ModeInfo {
			m, _ := timer.Mode8Of(n)
			return m.Info()
		}
		mode16 := func(n uint8) timer.ModeInfo {
			m, _ := timer1.ModeOf(n)
			return m.Info()
		}

		if which == "" || which == "timer0" {
			printModes(out, "timer0 (TCCR0A, TCCR0B)", timer.Modes8, mode8)
		}
		if which == "" || which == "timer1" {
			printModes(out, "timer1 (TCCR1A, TCCR1B)", timer1.Modes, mode16)
		}
		if which == "" || which == "timer2" {
			printModes(out, "timer2 (TCCR2A, TCCR2B)", timer.Modes8, mode8)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modesCmd)
}
