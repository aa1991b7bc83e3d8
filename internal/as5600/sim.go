// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package as5600

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
)

// Sim is an in-memory AS5600 register file implementing i2c.Bus. It backs
// the no-hardware console and the driver tests: reads and writes move real
// bytes through the same Tx path the hardware would see.
type Sim struct {
	regs [0x20]byte

	// AngleFunc, when set, supplies the raw angle served by the next
	// RAWANGLE read. The argument is the number of angle reads done so far.
	AngleFunc func(n int) uint16

	angleReads int
	confWrites int
}

// NewSim returns a simulated sensor with a detected magnet, mid-range AGC
// and the raw angle parked at zero.
func NewSim() *Sim {
	s := &Sim{}
	s.regs[regSTATUS] = statusMD
	s.regs[regAGC] = 128
	return s
}

// SetRawAngle parks the simulated shaft at a fixed raw angle.
func (s *Sim) SetRawAngle(raw uint16) {
	raw &= angleMask
	s.regs[regRAWANGLE] = byte(raw >> 8)
	s.regs[regRAWANGLE+1] = byte(raw)
}

// SetStatus overrides the STATUS register, e.g. to simulate a missing or
// misplaced magnet.
func (s *Sim) SetStatus(status byte) {
	s.regs[regSTATUS] = status
}

// ConfWrites reports how many bus writes have touched the CONF register.
func (s *Sim) ConfWrites() int {
	return s.confWrites
}

// Tx implements i2c.Bus. w[0] is the register pointer; any further write
// bytes land in successive registers, and r is filled from successive
// registers, matching the AS5600's auto-increment addressing.
func (s *Sim) Tx(addr uint16, w, r []byte) error {
	if addr != DefaultAddr {
		return fmt.Errorf("sim: no device at 0x%02X", addr)
	}
	if len(w) == 0 {
		return fmt.Errorf("sim: transaction without register pointer")
	}
	reg := int(w[0])
	wroteConf := false
	for i, b := range w[1:] {
		if reg+i >= len(s.regs) {
			return fmt.Errorf("sim: write past register file at 0x%02X", reg+i)
		}
		s.regs[reg+i] = b
		if reg+i == regCONF || reg+i == regCONF+1 {
			wroteConf = true
		}
	}
	if wroteConf {
		s.confWrites++
	}
	if len(r) > 0 {
		if reg == regRAWANGLE && s.AngleFunc != nil {
			s.SetRawAngle(s.AngleFunc(s.angleReads))
		}
		if reg == regRAWANGLE {
			s.angleReads++
		}
		for i := range r {
			if reg+i >= len(s.regs) {
				return fmt.Errorf("sim: read past register file at 0x%02X", reg+i)
			}
			r[i] = s.regs[reg+i]
		}
	}
	return nil
}

// String implements i2c.Bus.
func (s *Sim) String() string { return "as5600-sim" }

// SetSpeed implements i2c.Bus; the simulation has no clock to configure.
func (s *Sim) SetSpeed(f physic.Frequency) error { return nil }
