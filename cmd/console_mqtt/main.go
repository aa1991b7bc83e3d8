package main

import (
	"log"

	"github.com/relabs-tech/rotary_encoder/internal/app"
	"github.com/relabs-tech/rotary_encoder/internal/config"
)

func main() {
	log.Println("starting rotary-encoder console (MQTT subscriber)")

	// Load configuration
	if err := config.InitGlobal("encoder_config.txt"); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunConsoleMQTT(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
