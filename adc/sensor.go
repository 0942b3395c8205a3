package adc

import (
	"errors"

	"tinygo.org/x/drivers"
)

// ErrConversionTimeout is returned by Sensor.Update when ADSC does not
// clear within the poll limit, usually because the ADC is not enabled.
var ErrConversionTimeout = errors.New("adc: conversion timeout")

// DefaultPollLimit bounds the ADSC poll loop. A conversion at /128 and
// 16 MHz takes about 1700 CPU cycles, far fewer than this many polls.
const DefaultPollLimit = 10000

// Temperature sensor calibration: typical offset and gain against the
// 1.1 V bandgap, in LSB at 0 °C and LSB per degree.
const (
	tempOffsetMilliLSB = 324310
	tempGainMilliLSB   = 1220
)

// Sensor runs polled single conversions on a configured ADC and implements
// drivers.Sensor. Configure the ADC with TriggerNone first.
type Sensor struct {
	adc *ADC
	raw uint16

	// ReferenceMillivolts is the reference voltage used to scale results
	// (5000 for AVCC on a 5 V board, 1100 for the bandgap).
	ReferenceMillivolts uint32

	// PollLimit bounds how many times ADSC is read before giving up.
	PollLimit int
}

var _ drivers.Sensor = (*Sensor)(nil)

// NewSensor returns a Sensor over a, scaling against referenceMillivolts.
func NewSensor(a *ADC, referenceMillivolts uint32) *Sensor {
	return &Sensor{
		adc:                 a,
		ReferenceMillivolts: referenceMillivolts,
		PollLimit:           DefaultPollLimit,
	}
}

// Update runs one conversion when which includes drivers.Voltage or
// drivers.Temperature. Other measurements are ignored.
func (s *Sensor) Update(which drivers.Measurement) error {
	if which&(drivers.Voltage|drivers.Temperature) == 0 {
		return nil
	}
	s.adc.Start()
	for i := 0; s.adc.Busy(); i++ {
		if i >= s.PollLimit {
			return ErrConversionTimeout
		}
	}
	s.raw = s.adc.Result()
	return nil
}

// Raw returns the last 10-bit result.
func (s *Sensor) Raw() uint16 {
	return s.raw
}

// Voltage returns the last result in microvolts.
func (s *Sensor) Voltage() int32 {
	return int32(uint64(s.raw) * uint64(s.ReferenceMillivolts) * 1000 / 1024)
}

// Temperature returns the last result in milli-degrees Celsius, assuming the
// ADC sampled SourceTemperature against ReferenceBandgap. Uncalibrated parts
// are only accurate to about ±10 °C.
func (s *Sensor) Temperature() int32 {
	return (int32(s.raw)*1000 - tempOffsetMilliLSB) * 1000 / tempGainMilliLSB
}
