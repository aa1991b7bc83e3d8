// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// ./cmd/calibrate/main.go
//
// Axis center calibration for the AS5600 rotary encoder. Hold the mechanism
// at its mechanical rest position while this samples the raw angle; the
// reported mean is the AXIS_CENTER value for encoder_config.txt.
// Re-run after any reassembly.
package main

import (
	"flag"
	"log"

	"github.com/relabs-tech/rotary_encoder/internal/app"
	"github.com/relabs-tech/rotary_encoder/internal/config"
)

func main() {
	configPath := flag.String("config", "./encoder_config.txt", "path to configuration file")
	flag.Parse()

	log.Println("starting rotary-encoder axis center calibration")

	// Load configuration
	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunCalibration(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
