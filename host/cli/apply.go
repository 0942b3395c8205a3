package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply a profile to a board",
	Long: `Reads the board's registers, composes the profile against them and
writes the result. A rejected profile writes nothing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProfile(cmd)
		if err != nil {
			return err
		}
		if err := p.Validate(); err != nil {
			return printRejection(cmd.OutOrStdout(), err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		c, err := connect(ctx)
		if err != nil {
			return err
		}
		defer c.Close()

		mem, err := c.Apply(ctx, p.Apply)
		if err != nil {
			return printRejection(cmd.OutOrStdout(), err)
		}

		out := cmd.OutOrStdout()
		okColor.Fprintf(out, "applied %s\n", strings.Join(p.Peripherals(), ", "))
		printRegisters(out, mem, touched(mem.Journal()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().StringP("config", "c", "", "profile, e.g. '{\"watchdog\": {...}}' or @board.json")
}
