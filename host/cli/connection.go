package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"avrassist/host/serial"
	"avrassist/link"
)

// openPort is replaced in tests.
var openPort = func() (io.ReadWriteCloser, error) {
	if device == "" {
		return nil, errors.New("no board given (use --device)")
	}
	return serial.Open(&serial.Config{Device: device, Baud: baud, ReadTimeout: 100})
}

// connect opens the board and checks that it runs a matching monitor.
func connect(ctx context.Context) (*link.Client, error) {
	port, err := openPort()
	if err != nil {
		return nil, err
	}
	c := link.NewClient(port)
	if err := c.Identify(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("board does not answer as an avrassist monitor: %w", err)
	}
	return c, nil
}
