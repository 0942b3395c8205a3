//go:build !tinygo

package protocol

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// DefaultTimeout bounds a Send or Receive whose context has no deadline.
const DefaultTimeout = 2 * time.Second

// HostTransport is the host end of the link. Send writes one command frame
// and waits for its ack; responses from the device queue up for Receive.
type HostTransport struct {
	port io.ReadWriteCloser

	sendMu sync.Mutex
	seq    uint8
	out    *ScratchOutput

	in   *Fifo
	scan Scanner

	acks      chan Frame
	responses chan Frame

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once

	Timeout time.Duration
}

// NewHostTransport starts reading from port.
func NewHostTransport(port io.ReadWriteCloser) *HostTransport {
	t := &HostTransport{
		port:      port,
		seq:       SeqDest,
		out:       NewScratchOutput(FrameMax),
		in:        NewFifo(4 * FrameMax),
		acks:      make(chan Frame, 1),
		responses: make(chan Frame, 16),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
		Timeout:   DefaultTimeout,
	}
	go t.readLoop()
	return t
}

// Send transmits one command and waits for the device to ack it.
func (t *HostTransport) Send(ctx context.Context, cmdID uint16, args func(output OutputBuffer)) error {
	t.sendMu.Lock()
	defer t.sendMu.Unlock()

	t.out.Reset()
	err := WriteFrame(t.out, t.seq, func(output OutputBuffer) {
		EncodeVLQUint(output, uint32(cmdID))
		if args != nil {
			args(output)
		}
	})
	if err != nil {
		return fmt.Errorf("command %d does not fit in a frame: %w", cmdID, err)
	}

	for len(t.acks) > 0 {
		<-t.acks
	}
	if _, err := t.port.Write(t.out.Result()); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	ctx, cancel := t.bound(ctx)
	defer cancel()

	select {
	case ack := <-t.acks:
		want := NextSeq(t.seq)
		if ack.Seq != want {
			// Adopt the device's sequence so the next Send lines up.
			t.seq = ack.Seq
			return fmt.Errorf("%w: expected ack 0x%02x, got 0x%02x", ErrSequence, want, ack.Seq)
		}
		t.seq = want
		return nil
	case <-ctx.Done():
		return t.ctxErr(ctx, "ack")
	case <-t.stop:
		return ErrClosed
	}
}

// Receive returns the next response frame from the device, split into its
// command ID and argument bytes.
func (t *HostTransport) Receive(ctx context.Context) (uint16, []byte, error) {
	ctx, cancel := t.bound(ctx)
	defer cancel()

	select {
	case f := <-t.responses:
		args := f.Payload
		cmdID, err := DecodeVLQUint(&args)
		if err != nil {
			return 0, nil, fmt.Errorf("bad response: %w", err)
		}
		return uint16(cmdID), args, nil
	case <-ctx.Done():
		return 0, nil, t.ctxErr(ctx, "response")
	case <-t.stop:
		return 0, nil, ErrClosed
	}
}

// TryReceive returns a response that has already arrived, if any. Responses
// are queued before the ack that follows them, so after Send returns every
// response to that command is available here.
func (t *HostTransport) TryReceive() (uint16, []byte, bool) {
	select {
	case f := <-t.responses:
		args := f.Payload
		cmdID, err := DecodeVLQUint(&args)
		if err != nil {
			return 0, nil, false
		}
		return uint16(cmdID), args, true
	default:
		return 0, nil, false
	}
}

func (t *HostTransport) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || t.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, t.Timeout)
}

func (t *HostTransport) ctxErr(ctx context.Context, what string) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w waiting for %s", ErrTimeout, what)
	}
	return ctx.Err()
}

func (t *HostTransport) readLoop() {
	defer close(t.done)

	buf := make([]byte, 256)
	for {
		n, err := t.port.Read(buf)
		if n > 0 {
			t.feed(buf[:n])
		}
		if err == nil {
			continue
		}
		select {
		case <-t.stop:
			return
		default:
		}
		if errors.Is(err, io.ErrClosedPipe) || errors.Is(err, os.ErrClosed) {
			return
		}
		// Serial ports report EOF when a read times out with no data.
		if errors.Is(err, io.EOF) {
			time.Sleep(time.Millisecond)
		} else {
			time.Sleep(10 * time.Millisecond)
		}
	}
}

func (t *HostTransport) feed(data []byte) {
	for len(data) > 0 {
		n := t.in.Write(data)
		data = data[n:]
		for {
			f, used, ok := t.scan.Next(t.in.Data())
			if ok {
				t.dispatch(f)
			}
			t.in.Pop(used)
			if !ok {
				break
			}
		}
	}
}

func (t *HostTransport) dispatch(f Frame) {
	f.Payload = append([]byte(nil), f.Payload...)
	ch := t.responses
	if f.IsAck() {
		ch = t.acks
	}
	for {
		select {
		case ch <- f:
			return
		default:
		}
		// Full: drop the oldest.
		select {
		case <-ch:
		default:
		}
	}
}

// Close stops the reader and closes the port.
func (t *HostTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.stop)
		err = t.port.Close()
		<-t.done
	})
	return err
}

// Sequence returns the sequence byte the next Send will use.
func (t *HostTransport) Sequence() uint8 {
	t.sendMu.Lock()
	defer t.sendMu.Unlock()
	return t.seq
}
