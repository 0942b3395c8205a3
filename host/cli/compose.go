package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"avrassist/core"
	"avrassist/host/profile"
)

func loadProfile(cmd *cobra.Command) (*profile.Profile, error) {
	arg, _ := cmd.Flags().GetString("config")
	if arg == "" {
		return nil, errors.New("no profile given (use --config)")
	}
	return profile.Load(arg)
}

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Show the register writes a profile makes",
	Long: `Validates a board profile and prints the registers it writes on a
freshly reset ATmega328P. Nothing is sent to a board.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProfile(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		mem := core.NewMemory()
		mem.SetInterrupts(true)
		if err := p.Apply(mem, mem); err != nil {
			return printRejection(out, err)
		}

		if journal, _ := cmd.Flags().GetBool("journal"); journal {
			printJournal(out, mem.Journal())
			fmt.Fprintln(out)
		}
		okColor.Fprintf(out, "%s\n", strings.Join(p.Peripherals(), ", "))
		printRegisters(out, mem, touched(mem.Journal()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(composeCmd)

	composeCmd.Flags().StringP("config", "c", "", "profile, e.g. '{\"timer1\": {...}}' or @board.json")
	composeCmd.Flags().BoolP("journal", "j", false, "list every register operation in order")
}
