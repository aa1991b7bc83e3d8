// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package as5600 drives the AS5600 12-bit magnetic rotary position sensor
// over I2C. It exposes the raw and scaled angle outputs, the STATUS/AGC
// magnet health registers, and a bit-field model of the 14-bit CONF word.
package as5600

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
)

// I2C register map for the AS5600.
const (
	regZMCO     = 0x00
	regZPOS     = 0x01 // high byte; low at 0x02
	regMPOS     = 0x03 // high byte; low at 0x04
	regMANG     = 0x05 // high byte; low at 0x06
	regCONF     = 0x07 // high byte; low at 0x08
	regSTATUS   = 0x0B
	regRAWANGLE = 0x0C // high byte; low at 0x0D
	regANGLE    = 0x0E // high byte; low at 0x0F
	regAGC      = 0x1A
	regMAGNITUDE = 0x1B // high byte; low at 0x1C
)

// STATUS register bits.
const (
	statusMH = 1 << 3 // magnet too strong (AGC at minimum)
	statusML = 1 << 4 // magnet too weak (AGC at maximum)
	statusMD = 1 << 5 // magnet detected
)

// Fixed I2C address. The AS5600 has no address pins.
const DefaultAddr = 0x36

// StepsPerRev is the sensor resolution: 4096 steps per mechanical revolution.
const StepsPerRev = 4096

// DegPerStep converts raw steps to degrees. All step-to-degree conversion
// in this module goes through this one constant.
const DegPerStep = 360.0 / StepsPerRev

// Angle outputs are 12 bits; CONF carries 14 meaningful bits.
const (
	angleMask = 0x0FFF
	confMask  = 0x3FFF
)

// Opts holds initialization options.
type Opts struct {
	Addr uint16 // I2C address, default 0x36
}

// Dev represents an AS5600 on an I2C bus.
type Dev struct {
	dev i2c.Dev
}

// New verifies the device responds and returns a handle. The handle owns no
// state beyond the bus address; the sensor's own registers are the single
// source of truth for configuration.
func New(bus i2c.Bus, opts Opts) (*Dev, error) {
	addr := opts.Addr
	if addr == 0 {
		addr = DefaultAddr
	}
	d := &Dev{dev: i2c.Dev{Addr: addr, Bus: bus}}
	if _, err := d.Status(); err != nil {
		return nil, fmt.Errorf("as5600: device not responding at 0x%02X: %w", addr, err)
	}
	return d, nil
}

// RawAngle reads the unfiltered 12-bit angle in [0, 4096).
func (d *Dev) RawAngle() (uint16, error) {
	v, err := d.readReg16(regRAWANGLE)
	if err != nil {
		return 0, fmt.Errorf("as5600: read RAWANGLE: %w", err)
	}
	return v & angleMask, nil
}

// Angle reads the scaled 12-bit angle output, with ZPOS/MPOS scaling applied
// by the sensor.
func (d *Dev) Angle() (uint16, error) {
	v, err := d.readReg16(regANGLE)
	if err != nil {
		return 0, fmt.Errorf("as5600: read ANGLE: %w", err)
	}
	return v & angleMask, nil
}

// Status reads the magnet status register (MD/ML/MH bits).
func (d *Dev) Status() (byte, error) {
	v, err := d.readReg(regSTATUS)
	if err != nil {
		return 0, fmt.Errorf("as5600: read STATUS: %w", err)
	}
	return v, nil
}

// AGC reads the automatic gain control value. Mid-range means the magnet
// airgap is good; the rails correspond to the ML/MH status bits.
func (d *Dev) AGC() (byte, error) {
	v, err := d.readReg(regAGC)
	if err != nil {
		return 0, fmt.Errorf("as5600: read AGC: %w", err)
	}
	return v, nil
}

// Magnitude reads the CORDIC magnitude of the sensed field.
func (d *Dev) Magnitude() (uint16, error) {
	v, err := d.readReg16(regMAGNITUDE)
	if err != nil {
		return 0, fmt.Errorf("as5600: read MAGNITUDE: %w", err)
	}
	return v & angleMask, nil
}

// Config reads the full 14-bit CONF word.
func (d *Dev) Config() (uint16, error) {
	v, err := d.readReg16(regCONF)
	if err != nil {
		return 0, fmt.Errorf("as5600: read CONF: %w", err)
	}
	return v & confMask, nil
}

// WriteConfig writes the full CONF word. Callers that only want to change
// one field should use SetConfigField, which preserves the other bits.
func (d *Dev) WriteConfig(word uint16) error {
	if err := d.writeReg16(regCONF, word&confMask); err != nil {
		return fmt.Errorf("as5600: write CONF: %w", err)
	}
	return nil
}

// SetConfigField updates one CONF field with a read-modify-write, leaving
// all bits outside the field's mask untouched.
func (d *Dev) SetConfigField(f ConfField, value uint16) error {
	conf, err := d.Config()
	if err != nil {
		return err
	}
	conf, err = f.Set(conf, value)
	if err != nil {
		return err
	}
	return d.WriteConfig(conf)
}

// ConfigureLowLatencyMode sets SF=3 (minimum settling time, 0.286ms) and
// FTH=1 (most aggressive fast filter threshold) in one read-modify-write.
// This favors responsiveness over noise floor: the right choice for a
// position feedback loop, the wrong one for characterizing the noise floor.
func (d *Dev) ConfigureLowLatencyMode() error {
	conf, err := d.Config()
	if err != nil {
		return err
	}
	conf, err = SlowFilter.Set(conf, 3)
	if err != nil {
		return err
	}
	conf, err = FastFilterThreshold.Set(conf, 1)
	if err != nil {
		return err
	}
	return d.WriteConfig(conf)
}

func (d *Dev) readReg(reg byte) (byte, error) {
	var buf [1]byte
	if err := d.dev.Tx([]byte{reg}, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// readReg16 reads a big-endian register pair starting at reg.
func (d *Dev) readReg16(reg byte) (uint16, error) {
	var buf [2]byte
	if err := d.dev.Tx([]byte{reg}, buf[:]); err != nil {
		return 0, err
	}
	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

func (d *Dev) writeReg16(reg byte, v uint16) error {
	return d.dev.Tx([]byte{reg, byte(v >> 8), byte(v)}, nil)
}
