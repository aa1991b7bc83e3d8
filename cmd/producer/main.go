package main

import (
	"encoding/json"
	"log"
	"math"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/rotary_encoder/internal/as5600"
)

func main() {
	log.Println("starting rotary-encoder MQTT producer (mock)")

	// 1) Connect to MQTT broker on the Pi
	opts := mqtt.NewClientOptions().
		AddBroker("tcp://localhost:1883").
		SetClientID("encoder-producer-mock")

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("MQTT connect error: %v", token.Error())
	}
	defer client.Disconnect(250)

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
		log.Fatalf("sim device error: %v", err)
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for t := range ticker.C {
		diag, err := dev.Diagnose(axisCenter)
		if err != nil {
			log.Printf("error from mock encoder: %v", err)
			continue
		}

		payload, err := json.Marshal(diag)
		if err != nil {
			log.Printf("json marshal error: %v", err)
			continue
		}

		token := client.Publish("encoder/diag", 0, true, payload)
		token.Wait()

		log.Printf("%s published diag: %s", t.Format(time.RFC3339), diag)
	}
}
