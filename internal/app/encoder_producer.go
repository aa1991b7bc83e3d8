package app

import (
	"encoding/json"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/rotary_encoder/internal/config"
	"github.com/relabs-tech/rotary_encoder/internal/sensors"
)

// RunEncoderProducer polls the encoder on the configured interval and
// publishes one diagnostic record per tick as JSON. A failed bus read skips
// the tick; the loop never retries a transaction itself.
func RunEncoderProducer() error {
	log.Println("starting rotary-encoder diagnostics producer")

	cfg := config.Get()

	mgr := sensors.GetEncoderManager()
	dev, err := mgr.Device()
	if err != nil {
		log.Fatalf("failed to initialize encoder: %v", err)
		return err
	}

	// Position feedback wants responsiveness over noise floor.
	if err := dev.ConfigureLowLatencyMode(); err != nil {
		log.Fatalf("failed to configure low latency mode: %v", err)
		return err
	}
	log.Println("encoder configured for low latency (SF=3, FTH=1)")

	// --- connect to MQTT ---
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDProducer)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("MQTT connect error: %v", token.Error())
		return token.Error()
	}
	defer client.Disconnect(250)

	log.Println("connected to MQTT, starting publish loop")

	ticker := time.NewTicker(time.Duration(cfg.SampleInterval) * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		diag, err := dev.Diagnose(cfg.AxisCenter)
		if err != nil {
			log.Printf("error reading encoder: %v", err)
			continue
		}

		if !diag.MagnetDetected {
			log.Printf("WARNING: magnet not detected")
		}

		payload, err := json.Marshal(diag)
		if err != nil {
			log.Printf("json marshal error (diag): %v", err)
			continue
		}
		if token := client.Publish(cfg.TopicDiagnostics, 0, true, payload); token.Wait() && token.Error() != nil {
			log.Printf("MQTT publish error (diag): %v", token.Error())
			continue
		}

		log.Printf("tick: %s", diag)
	}
	return nil
}
