package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"avrassist/core"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Dump the board's peripheral registers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		c, err := connect(ctx)
		if err != nil {
			return err
		}
		defer c.Close()

		mem, err := c.Snapshot(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for r := core.Register(0); r < core.NumRegisters; r++ {
			printRegister(out, r, mem.Peek(r))
		}
		fmt.Fprintf(out, "\nmultiplexer: %s\n", core.MuxOwnerOf(core.ReadMuxRegs(mem)))

		wd := "off"
		switch v := mem.Peek(core.WDTCSR); {
		case v&core.Bit(core.WDE) != 0 && v&core.Bit(core.WDIE) != 0:
			wd = "interrupt and reset"
		case v&core.Bit(core.WDE) != 0:
			wd = "reset"
		case v&core.Bit(core.WDIE) != 0:
			wd = "interrupt"
		}
		fmt.Fprintf(out, "watchdog: %s\n", wd)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
