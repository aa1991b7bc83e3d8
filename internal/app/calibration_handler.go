// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"log"

	"github.com/relabs-tech/rotary_encoder/internal/config"
	"github.com/relabs-tech/rotary_encoder/internal/noise"
	"github.com/relabs-tech/rotary_encoder/internal/sensors"
)

// RunCalibration measures the axis center: hold the mechanism at its rest
// position, sample the raw angle and report the mean as the AXIS_CENTER
// value for the config file. The RMS tells the operator whether the
// mechanism was actually still.
//
// The result is printed, not persisted; updating encoder_config.txt is a
// deliberate manual step.
func RunCalibration() error {
	log.Println("starting axis center calibration")

	cfg := config.Get()

	mgr := sensors.GetEncoderManager()
	dev, err := mgr.Device()
	if err != nil {
		log.Fatalf("failed to initialize encoder: %v", err)
		return err
	}

	diag, err := dev.Diagnose(cfg.AxisCenter)
	if err != nil {
		log.Fatalf("encoder health check failed: %v", err)
		return err
	}
	if !diag.MagnetDetected {
		log.Println("WARNING: magnet not detected; calibration will be garbage")
	}
	if diag.SignalTooWeak {
		log.Println("WARNING: magnet too weak (reduce airgap)")
	}
	if diag.SignalTooStrong {
		log.Println("WARNING: magnet too strong (increase airgap)")
	}

	// AGC mid-range means a good airgap; the rails match the ML/MH flags.
	agc, err := dev.AGC()
	if err != nil {
		log.Fatalf("encoder health check failed: %v", err)
		return err
	}
	mag, err := dev.Magnitude()
	if err != nil {
		log.Fatalf("encoder health check failed: %v", err)
		return err
	}
	log.Printf("airgap: AGC=%d magnitude=%d", agc, mag)

	n := cfg.CalibrationSamples
	if n == 0 {
		n = 100
	}
	log.Printf("hold the mechanism at its rest position; sampling %d raw angles", n)

	c := noise.NewCharacterizer(dev)
	samples, err := c.CollectSamples(n)
	if err != nil {
		log.Fatalf("sampling failed: %v", err)
		return err
	}

	stats := noise.ComputeStatistics(samples)
	log.Printf("mean: %.1f steps, range %d-%d, RMS %.2f steps (%.4f deg)",
		stats.Mean, stats.Min, stats.Max, stats.RMSSteps, stats.RMSDeg)

	if stats.PeakToPeakSteps > 16 {
		log.Printf("WARNING: spread of %d steps suggests the mechanism moved; repeat the measurement", stats.PeakToPeakSteps)
	}

	center := uint16(stats.Mean + 0.5)
	log.Printf("suggested config value: AXIS_CENTER=%d (currently %d)", center, cfg.AxisCenter)
	return nil
}
