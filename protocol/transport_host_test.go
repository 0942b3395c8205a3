//go:build !tinygo

package protocol

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"
)

// serveDevice runs a device Transport on conn until it is closed. Command 1
// echoes its argument back as command 2.
func serveDevice(conn net.Conn) {
	out := NewScratchOutput(256)
	in := NewFifo(256)
	var tr *Transport
	tr = NewTransport(out, func(cmdID uint16, args *[]byte) error {
		v, err := DecodeVLQUint(args)
		if err != nil {
			return err
		}
		if cmdID == 1 {
			return tr.SendCommand(2, func(output OutputBuffer) { EncodeVLQUint(output, v) })
		}
		return nil
	})

	buf := make([]byte, 64)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			return
		}
		in.Write(buf[:n])
		tr.Receive(in)
		if out.CurPosition() == 0 {
			continue
		}
		if _, err := conn.Write(out.Result()); err != nil {
			return
		}
		out.Reset()
	}
}

func TestHostTransportRoundTrip(t *testing.T) {
	hostEnd, devEnd := net.Pipe()
	go serveDevice(devEnd)
	host := NewHostTransport(hostEnd)
	defer host.Close()

	ctx := context.Background()
	for i := 0; i < 20; i++ {
		v := uint32(i * 100)
		if err := host.Send(ctx, 1, func(output OutputBuffer) { EncodeVLQUint(output, v) }); err != nil {
			t.Fatalf("Send %d: %v", i, err)
		}
		cmdID, args, err := host.Receive(ctx)
		if err != nil {
			t.Fatalf("Receive %d: %v", i, err)
		}
		got, _ := DecodeVLQUint(&args)
		if cmdID != 2 || got != v {
			t.Errorf("Expected echo %d, got cmd %d value %d", v, cmdID, got)
		}
	}
	if _, _, ok := host.TryReceive(); ok {
		t.Error("Unexpected queued response")
	}
	if err := host.Send(ctx, 1, func(output OutputBuffer) { EncodeVLQUint(output, 5) }); err != nil {
		t.Fatal(err)
	}
	if cmdID, args, ok := host.TryReceive(); !ok || cmdID != 2 || args[0] != 5 {
		t.Errorf("Expected the echo to be queued once Send returns, got %d % x %v", cmdID, args, ok)
	}

	// 21 sends wrap the four-bit sequence once.
	if seq := host.Sequence(); seq != 0x15 {
		t.Errorf("Expected sequence 0x15, got 0x%02x", seq)
	}
}

func TestHostTransportTimeout(t *testing.T) {
	hostEnd, devEnd := net.Pipe()
	go func() {
		buf := make([]byte, 64)
		for {
			if _, err := devEnd.Read(buf); err != nil {
				return
			}
		}
	}()
	host := NewHostTransport(hostEnd)
	defer host.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := host.Send(ctx, 1, nil); !errors.Is(err, ErrTimeout) {
		t.Errorf("Expected ErrTimeout, got %v", err)
	}

	host.Timeout = 20 * time.Millisecond
	if _, _, err := host.Receive(context.Background()); !errors.Is(err, ErrTimeout) {
		t.Errorf("Expected ErrTimeout from Receive, got %v", err)
	}
}

func TestHostTransportSequenceMismatch(t *testing.T) {
	hostEnd, devEnd := net.Pipe()
	go func() {
		// Answer the first frame with a stale sequence, later ones correctly.
		reply := uint8(0x15)
		buf := make([]byte, 64)
		for {
			if _, err := devEnd.Read(buf); err != nil {
				return
			}
			if _, err := devEnd.Write(ack(reply)); err != nil {
				return
			}
			reply = NextSeq(reply)
		}
	}()
	host := NewHostTransport(hostEnd)
	defer host.Close()

	if err := host.Send(context.Background(), 1, nil); !errors.Is(err, ErrSequence) {
		t.Fatalf("Expected ErrSequence, got %v", err)
	}
	if host.Sequence() != 0x15 {
		t.Errorf("Expected host to adopt 0x15, got 0x%02x", host.Sequence())
	}
	if err := host.Send(context.Background(), 1, nil); err != nil {
		t.Errorf("Expected the next send to line up, got %v", err)
	}
}

func TestHostTransportClose(t *testing.T) {
	hostEnd, devEnd := net.Pipe()
	defer devEnd.Close()
	host := NewHostTransport(hostEnd)

	if err := host.Close(); err != nil {
		t.Errorf("Unexpected close error %v", err)
	}
	if err := host.Close(); err != nil {
		t.Errorf("Second close should be a no-op, got %v", err)
	}
	if err := host.Send(context.Background(), 1, nil); err == nil {
		t.Error("Send after Close should fail")
	}
}

func TestHostTransportFrameTooLong(t *testing.T) {
	hostEnd, devEnd := net.Pipe()
	defer devEnd.Close()
	host := NewHostTransport(hostEnd)
	defer host.Close()

	err := host.Send(context.Background(), 1, func(output OutputBuffer) {
		EncodeVLQString(output, string(make([]byte, FrameMax)))
	})
	if !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("Expected ErrBufferTooSmall, got %v", err)
	}
}
