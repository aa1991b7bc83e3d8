// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package as5600

import (
	"errors"
	"fmt"
)

// ErrFieldRange reports a field value that does not fit the field's bit
// width. This is a caller bug, not a recoverable device condition.
var ErrFieldRange = errors.New("as5600: field value out of range")

// ConfField describes one named bit range inside the CONF word. The full
// set of fields is the closed list below; all mask math goes through
// Get/Set rather than per-field code.
type ConfField struct {
	name  string
	shift uint
	width uint
}

// CONF fields per the AS5600 datasheet, low byte at 0x08.
var (
	// PowerMode: 0=NOM, 1=LPM1, 2=LPM2, 3=LPM3.
	PowerMode = ConfField{"PM", 0, 2}
	// Hysteresis: 0=off, 1..3 = 1..3 LSB.
	Hysteresis = ConfField{"HYST", 2, 2}
	// OutputStage: 0=analog full range, 1=analog reduced, 2=PWM.
	OutputStage = ConfField{"OUTS", 4, 2}
	// PWMFrequency: 0=115Hz, 1=230Hz, 2=460Hz, 3=920Hz.
	PWMFrequency = ConfField{"PWMF", 6, 2}
	// SlowFilter: 0=16x (slowest, lowest noise) .. 3=2x (fastest settling).
	SlowFilter = ConfField{"SF", 8, 2}
	// FastFilterThreshold: 0 disables the fast filter; 1..7 select the
	// step threshold that bypasses slow filtering.
	FastFilterThreshold = ConfField{"FTH", 10, 3}
	// Watchdog: 1 enables automatic low-power entry.
	Watchdog = ConfField{"WD", 13, 1}
)

// Name returns the datasheet mnemonic for the field.
func (f ConfField) Name() string { return f.name }

func (f ConfField) mask() uint16 {
	return uint16((1<<f.width)-1) << f.shift
}

// Get extracts the field's value from a CONF word.
func (f ConfField) Get(word uint16) uint16 {
	return (word >> f.shift) & uint16((1<<f.width)-1)
}

// Set returns word with the field replaced by value. Bits outside the
// field's mask are preserved. A value wider than the field is rejected.
func (f ConfField) Set(word, value uint16) (uint16, error) {
	if value >= 1<<f.width {
		return word, fmt.Errorf("%w: %s=%d does not fit %d bits", ErrFieldRange, f.name, value, f.width)
	}
	return word&^f.mask() | value<<f.shift, nil
}
