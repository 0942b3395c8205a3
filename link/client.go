//go:build !tinygo

package link

import (
	"context"
	"fmt"
	"io"
	"log"

	"avrassist/core"
	"avrassist/protocol"
)

// NakError is a command the device refused.
type NakError struct {
	Command string
	Reason  string
}

func (e *NakError) Error() string {
	return fmt.Sprintf("device rejected %s: %s", e.Command, e.Reason)
}

// Client drives a Server over a byte stream.
type Client struct {
	transport *protocol.HostTransport
	registry  *Registry
}

// NewClient starts a client on port. Close releases the port.
func NewClient(port io.ReadWriteCloser) *Client {
	return &Client{
		transport: protocol.NewHostTransport(port),
		registry:  NewRegistry(),
	}
}

func (c *Client) Close() error {
	return c.transport.Close()
}

func (c *Client) send(ctx context.Context, name string, args ...uint8) error {
	err := c.transport.Send(ctx, c.registry.MustID(name), func(output protocol.OutputBuffer) {
		for _, a := range args {
			protocol.EncodeVLQUint(output, uint32(a))
		}
	})
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// pending returns the device's nak for the command just sent, if it sent
// one. Other queued responses are dropped.
func (c *Client) pending() error {
	for {
		cmdID, args, ok := c.transport.TryReceive()
		if !ok {
			return nil
		}
		if err := c.nak(cmdID, args); err != nil {
			return err
		}
	}
}

func (c *Client) nak(cmdID uint16, args []byte) error {
	if cmdID != c.registry.MustID(RespNak) {
		return nil
	}
	e := &NakError{Command: "command"}
	if id, err := protocol.DecodeVLQUint(&args); err == nil {
		if cmd, ok := c.registry.Get(uint16(id)); ok {
			e.Command = cmd.Name
		}
	}
	e.Reason, _ = protocol.DecodeVLQString(&args)
	return e
}

func (c *Client) exec(ctx context.Context, name string, args ...uint8) error {
	if err := c.send(ctx, name, args...); err != nil {
		return err
	}
	return c.pending()
}

// Identify checks that the device speaks the same message set.
func (c *Client) Identify(ctx context.Context) error {
	if err := c.send(ctx, CmdIdentify); err != nil {
		return err
	}
	args, err := c.await(ctx, RespIdentify)
	if err != nil {
		return err
	}
	crc, err := protocol.DecodeVLQUint(&args)
	if err != nil {
		return fmt.Errorf("bad identify response: %w", err)
	}
	if want := c.registry.DictionaryCRC(); uint16(crc) != want {
		return fmt.Errorf("device dictionary 0x%04x does not match host 0x%04x", crc, want)
	}
	n, err := protocol.DecodeVLQUint(&args)
	if err != nil {
		return fmt.Errorf("bad identify response: %w", err)
	}
	if n != uint32(core.NumRegisters) {
		return fmt.Errorf("device knows %d registers, host %d", n, core.NumRegisters)
	}
	return nil
}

// await returns the arguments of the next response named name.
func (c *Client) await(ctx context.Context, name string) ([]byte, error) {
	want := c.registry.MustID(name)
	for {
		cmdID, args, err := c.transport.Receive(ctx)
		if err != nil {
			return nil, fmt.Errorf("waiting for %s: %w", name, err)
		}
		if cmdID == want {
			return args, nil
		}
		if err := c.nak(cmdID, args); err != nil {
			return nil, err
		}
	}
}

// Read returns the current value of one register.
func (c *Client) Read(ctx context.Context, reg core.Register) (uint8, error) {
	if err := c.send(ctx, CmdRegRead, uint8(reg)); err != nil {
		return 0, err
	}
	for {
		args, err := c.await(ctx, RespRegState)
		if err != nil {
			return 0, err
		}
		r, err := protocol.DecodeUint8(&args)
		if err != nil || core.Register(r) != reg {
			continue
		}
		v, err := protocol.DecodeUint8(&args)
		if err != nil {
			return 0, fmt.Errorf("bad %s response: %w", RespRegState, err)
		}
		return v, nil
	}
}

// Snapshot reads every register into a fresh Memory with interrupts
// marked enabled and an empty journal.
func (c *Client) Snapshot(ctx context.Context) (*core.Memory, error) {
	mem := core.NewMemory()
	for r := core.Register(0); r < core.NumRegisters; r++ {
		v, err := c.Read(ctx, r)
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", r, err)
		}
		mem.Load(r, v)
	}
	mem.SetInterrupts(true)
	return mem, nil
}

// Replay sends the mutating operations of a journal to the device.
//
// A wdr issued while interrupts are masked belongs to the timed write that
// follows it and travels with that reg_timed command. Plain writes inside
// the masked window are sent as they are.
func (c *Client) Replay(ctx context.Context, journal []core.Op) error {
	masked := false
	kick := false
	for _, op := range journal {
		var err error
		switch op.Kind {
		case core.OpDisableInterrupts:
			masked = true
		case core.OpRestoreInterrupts:
			masked = false
			kick = false
		case core.OpWatchdogReset:
			if masked {
				kick = true
			} else {
				err = c.exec(ctx, CmdWatchdogKick)
			}
		case core.OpSet:
			err = c.exec(ctx, CmdRegSet, uint8(op.Reg), op.Operand)
		case core.OpClear:
			err = c.exec(ctx, CmdRegClear, uint8(op.Reg), op.Operand)
		case core.OpAssign:
			err = c.exec(ctx, CmdRegAssign, uint8(op.Reg), op.Operand)
		case core.OpTimed:
			var wdr uint8
			if kick {
				wdr = 1
			}
			err = c.exec(ctx, CmdRegTimed, uint8(op.Reg), op.Operand, op.Value, wdr)
			kick = false
		default:
			continue
		}
		if err != nil {
			return err
		}
		if op.Kind.Mutates() {
			log.Printf("link: %s %s %s -> %s", op.Kind, op.Reg, core.Hex8(op.Operand), core.Hex8(op.Value))
		}
	}
	return nil
}

// Apply snapshots the device, runs configure against the snapshot and
// replays what it wrote. If configure fails nothing is sent. The returned
// Memory holds the register state the device now has.
func (c *Client) Apply(ctx context.Context, configure func(regs core.Surface, irq core.Interrupts) error) (*core.Memory, error) {
	mem, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if err := configure(mem, mem); err != nil {
		return mem, err
	}
	if err := c.Replay(ctx, mem.Journal()); err != nil {
		return mem, err
	}
	return mem, nil
}
