// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"log"
	"net/http"

	"github.com/relabs-tech/rotary_encoder/internal/app"
	"github.com/relabs-tech/rotary_encoder/internal/config"
	"github.com/relabs-tech/rotary_encoder/internal/sensors"
)

func main() {
	log.Println("starting AS5600 register debug tool (standalone)")

	if err := config.InitGlobal("encoder_config.txt"); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	log.Println("Initializing encoder manager...")
	manager := sensors.GetEncoderManager()
	if err := manager.Init(); err != nil {
		log.Printf("Warning: encoder initialization had issues: %v", err)
		log.Println("Continuing anyway - register map browsing still works")
	} else {
		log.Println("AS5600 encoder available")
	}

	http.HandleFunc("/ws", app.HandleRegisterDebugWS)

	// API endpoint for live angle data
	http.HandleFunc("/api/angle", app.HandleAngleData)

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "web/register_debug.html")
	})

	addr := ":8081"
	log.Printf("Register debug tool listening on %s", addr)
	log.Printf("Open http://localhost:8081 in your browser")
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
