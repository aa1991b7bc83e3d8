// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package as5600

import "fmt"

// Diagnostics is a single health and position snapshot. A fresh record is
// produced on every Diagnose call; nothing is cached between calls.
type Diagnostics struct {
	RawAngle        uint16  `json:"raw_angle"`
	AngleDeg        float64 `json:"angle_deg"` // relative to the axis center
	MagnetDetected  bool    `json:"magnet_detected"`
	SignalTooWeak   bool    `json:"signal_too_weak"`   // ML: AGC at maximum gain
	SignalTooStrong bool    `json:"signal_too_strong"` // MH: AGC at minimum gain
}

// Diagnose reads STATUS and RAWANGLE (two bus transactions) and reports the
// angle as a displacement from axisCenter. The caller controls pacing; this
// never sleeps.
func (d *Dev) Diagnose(axisCenter uint16) (Diagnostics, error) {
	status, err := d.Status()
	if err != nil {
		return Diagnostics{}, err
	}
	raw, err := d.RawAngle()
	if err != nil {
		return Diagnostics{}, err
	}
	return Diagnostics{
		RawAngle:        raw,
		AngleDeg:        RelativeAngleDeg(raw, axisCenter),
		MagnetDetected:  status&statusMD != 0,
		SignalTooWeak:   status&statusML != 0,
		SignalTooStrong: status&statusMH != 0,
	}, nil
}

// String renders one grep-friendly telemetry line with a stable field order.
func (g Diagnostics) String() string {
	return fmt.Sprintf("ANGLE=%+8.3f RAW=%4d MD=%d ML=%d MH=%d",
		g.AngleDeg, g.RawAngle, b2i(g.MagnetDetected), b2i(g.SignalTooWeak), b2i(g.SignalTooStrong))
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
