// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"math"
	"time"

	"github.com/relabs-tech/rotary_encoder/internal/as5600"
)

// RunMockConsole drives the full diagnostic path against a simulated
// encoder: a shaft swinging slowly around an axis center, no hardware
// required.
func RunMockConsole() error {
	const axisCenter = 413

	sim := as5600.NewSim()
	start := time.Now()
	sim.AngleFunc = func(n int) uint16 {
		elapsed := time.Since(start).Seconds()
		swing := 200 * math.Sin(elapsed)
		return uint16((axisCenter + int(swing) + as5600.StepsPerRev) % as5600.StepsPerRev)
	}

	dev, err := as5600.New(sim, as5600.Opts{})
	if err != nil {
		return err
	}
	if err := dev.ConfigureLowLatencyMode(); err != nil {
		return err
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		diag, err := dev.Diagnose(axisCenter)
		if err != nil {
			return err
		}

		fmt.Println(diag)
	}
	return nil
}
