package link

import (
	"io"

	"avrassist/core"
	"avrassist/protocol"
)

// Server executes link commands against a register surface. It runs on the
// firmware, or on the host against a core.Memory in tests.
type Server struct {
	regs      core.Surface
	committer *core.Committer
	registry  *Registry

	transport *protocol.Transport
	in        *protocol.Fifo
	out       *protocol.ScratchOutput

	identifyID uint16
	stateID    uint16
	nakID      uint16
}

// NewServer creates a server over regs. irq masks interrupts around
// reg_timed sequences.
func NewServer(regs core.Surface, irq core.Interrupts) *Server {
	s := &Server{
		regs:      regs,
		committer: core.NewCommitter(regs, irq),
		registry:  NewRegistry(),
		in:        protocol.NewFifo(2 * protocol.FrameMax),
		out:       protocol.NewScratchOutput(4 * protocol.FrameMax),
	}
	s.identifyID = s.registry.MustID(RespIdentify)
	s.stateID = s.registry.MustID(RespRegState)
	s.nakID = s.registry.MustID(RespNak)

	s.registry.Handle(CmdIdentify, s.identify)
	s.registry.Handle(CmdRegRead, s.read)
	s.registry.Handle(CmdRegSet, s.set)
	s.registry.Handle(CmdRegClear, s.clear)
	s.registry.Handle(CmdRegAssign, s.assign)
	s.registry.Handle(CmdRegTimed, s.timed)
	s.registry.Handle(CmdWatchdogKick, s.kick)

	s.transport = protocol.NewTransport(s.out, s.dispatch)
	return s
}

// Receive processes bytes from the host and returns the bytes to send back.
// The returned slice is valid until the next call.
func (s *Server) Receive(data []byte) []byte {
	s.out.Reset()
	for len(data) > 0 {
		n := s.in.Write(data)
		data = data[n:]
		s.transport.Receive(s.in)
	}
	return s.out.Result()
}

// Serve runs the server on rw until a read fails. A read of zero bytes
// with no error is polled again, as a UART with nothing buffered returns.
func (s *Server) Serve(rw io.ReadWriter) error {
	buf := make([]byte, protocol.FrameMax)
	for {
		n, err := rw.Read(buf)
		if n > 0 {
			if out := s.Receive(buf[:n]); len(out) > 0 {
				if _, werr := rw.Write(out); werr != nil {
					return werr
				}
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *Server) dispatch(cmdID uint16, args *[]byte) error {
	err := s.registry.Dispatch(cmdID, args)
	if err != nil {
		core.DebugPrintln("[link] nak " + core.Itoa(int(cmdID)) + ": " + err.Error())
		s.transport.SendCommand(s.nakID, func(output protocol.OutputBuffer) {
			protocol.EncodeVLQUint(output, uint32(cmdID))
			protocol.EncodeVLQString(output, err.Error())
		})
	}
	return err
}

func (s *Server) identify(args *[]byte) error {
	return s.transport.SendCommand(s.identifyID, func(output protocol.OutputBuffer) {
		protocol.EncodeVLQUint(output, uint32(s.registry.DictionaryCRC()))
		protocol.EncodeVLQUint(output, uint32(core.NumRegisters))
	})
}

func (s *Server) read(args *[]byte) error {
	reg, err := decodeRegister(args)
	if err != nil {
		return err
	}
	v := s.regs.Read(reg)
	return s.transport.SendCommand(s.stateID, func(output protocol.OutputBuffer) {
		protocol.EncodeVLQUint(output, uint32(reg))
		protocol.EncodeVLQUint(output, uint32(v))
	})
}

// regValue decodes the register and operand shared by set, clear and
// assign.
func regValue(args *[]byte) (core.Register, uint8, error) {
	reg, err := decodeRegister(args)
	if err != nil {
		return 0, 0, err
	}
	v, err := protocol.DecodeUint8(args)
	return reg, v, err
}

func (s *Server) set(args *[]byte) error {
	reg, mask, err := regValue(args)
	if err == nil {
		s.regs.Set(reg, mask)
	}
	return err
}

func (s *Server) clear(args *[]byte) error {
	reg, mask, err := regValue(args)
	if err == nil {
		s.regs.Clear(reg, mask)
	}
	return err
}

func (s *Server) assign(args *[]byte) error {
	reg, v, err := regValue(args)
	if err == nil {
		s.regs.Assign(reg, v)
	}
	return err
}

func (s *Server) timed(args *[]byte) error {
	reg, unlock, err := regValue(args)
	if err != nil {
		return err
	}
	if reg != core.WDTCSR {
		return ErrNotTimed
	}
	v, err := protocol.DecodeUint8(args)
	if err != nil {
		return err
	}
	wdr, err := protocol.DecodeUint8(args)
	if err != nil {
		return err
	}
	s.committer.Commit(core.TimedWrite{Reg: reg, Unlock: unlock, Value: v, ResetWatchdog: wdr != 0})
	return nil
}

func (s *Server) kick(args *[]byte) error {
	if r, ok := s.regs.(core.WatchdogResetter); ok {
		r.ResetWatchdog()
	}
	return nil
}
