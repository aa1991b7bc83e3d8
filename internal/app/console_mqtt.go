package app

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/rotary_encoder/internal/as5600"
	"github.com/relabs-tech/rotary_encoder/internal/config"
	"github.com/relabs-tech/rotary_encoder/internal/noise"
)

// RunConsoleMQTT subscribes to the diagnostics and noise topics and prints
// one line per message until interrupted.
func RunConsoleMQTT() error {
	cfg := config.Get()

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDConsole)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: connected to MQTT broker at %s", cfg.MQTTBroker)

	// Subscribe to diagnostics
	diagToken := client.Subscribe(cfg.TopicDiagnostics, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var d as5600.Diagnostics
		if err := json.Unmarshal(msg.Payload(), &d); err != nil {
			log.Printf("console: diag unmarshal error: %v", err)
			return
		}

		fmt.Printf("[DIAG] %s\n", d)
	})
	diagToken.Wait()
	if diagToken.Error() != nil {
		return diagToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicDiagnostics)

	// Subscribe to noise results
	noiseToken := client.Subscribe(cfg.TopicNoise, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var results []noise.Result
		if err := json.Unmarshal(msg.Payload(), &results); err != nil {
			log.Printf("console: noise unmarshal error: %v", err)
			return
		}

		for _, r := range results {
			fmt.Printf("[NOISE] SF=%d n=%d mean=%.1f pp=%d steps rms=%.4f deg (expect %.3f)\n",
				r.SlowFilter, r.Stats.Count, r.Stats.Mean, r.Stats.PeakToPeakSteps, r.Stats.RMSDeg, r.ExpectedRMSDeg)
		}
	})
	noiseToken.Wait()
	if noiseToken.Error() != nil {
		return noiseToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicNoise)

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	client.Disconnect(250)
	return nil
}
