// Package serial opens the port the register-link monitor listens on.
package serial

import "io"

// Port is an open serial connection.
type Port interface {
	io.ReadWriteCloser

	// Flush discards data received but not yet read.
	Flush() error
}

// Config holds serial port settings.
type Config struct {
	// Device path, e.g. /dev/ttyUSB0 or COM3.
	Device string

	// Baud must match the firmware's UART setting.
	Baud int

	// ReadTimeout in milliseconds; reads return io.EOF when it expires.
	ReadTimeout int
}

// DefaultBaud is the rate the atmega328p monitor configures.
const DefaultBaud = 115200

// DefaultConfig returns settings for the monitor firmware on device.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: 100,
	}
}
