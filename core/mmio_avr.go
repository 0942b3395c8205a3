//go:build tinygo && avr

package core

import (
	"device/avr"
	"runtime/volatile"
	"unsafe"
)

// MMIO is the Surface over the chip's own registers.
type MMIO struct{}

func reg8(r Register) *volatile.Register8 {
	return (*volatile.Register8)(unsafe.Pointer(uintptr(r.Address())))
}

func (MMIO) Read(r Register) uint8        { return reg8(r).Get() }
func (MMIO) Set(r Register, mask uint8)   { reg8(r).SetBits(mask) }
func (MMIO) Clear(r Register, mask uint8) { reg8(r).ClearBits(mask) }
func (MMIO) Assign(r Register, v uint8)   { reg8(r).Set(v) }

// TimedAssign issues the unlock and the write as two adjacent stores. The
// new value is computed before the first one so the second lands inside
// the four-cycle window.
func (MMIO) TimedAssign(r Register, unlock, v uint8) {
	p := reg8(r)
	first := p.Get() | unlock
	p.Set(first)
	p.Set(v)
}

func (MMIO) ResetWatchdog() {
	avr.Asm("wdr")
}

var (
	_ TimedWriter      = MMIO{}
	_ WatchdogResetter = MMIO{}
)
