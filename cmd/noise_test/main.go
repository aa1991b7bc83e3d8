// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

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

	log.Println("starting rotary-encoder noise characterization")

	// Load configuration
	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunNoiseTest(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
