package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/rotary_encoder/internal/as5600"
	"github.com/relabs-tech/rotary_encoder/internal/config"
	"github.com/relabs-tech/rotary_encoder/internal/noise"
)

// RunWeb serves the latest diagnostic record and noise results over HTTP,
// fed by the MQTT topics the producers publish to.
func RunWeb() error {
	cfg := config.Get()

	var (
		mu          sync.RWMutex
		lastDiag    as5600.Diagnostics
		haveDiag    bool
		lastResults []noise.Result
	)

	// 1) Connect to MQTT broker on the Pi
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDWeb)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("connected to MQTT broker at %s", cfg.MQTTBroker)

	// 2) Subscribe and cache the latest payloads
	diagToken := client.Subscribe(cfg.TopicDiagnostics, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var d as5600.Diagnostics
		if err := json.Unmarshal(msg.Payload(), &d); err != nil {
			log.Printf("MQTT payload unmarshal error: %v", err)
			return
		}
		mu.Lock()
		lastDiag = d
		haveDiag = true
		mu.Unlock()
	})
	diagToken.Wait()
	if diagToken.Error() != nil {
		return diagToken.Error()
	}
	log.Printf("subscribed to MQTT topic %s", cfg.TopicDiagnostics)

	noiseToken := client.Subscribe(cfg.TopicNoise, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var results []noise.Result
		if err := json.Unmarshal(msg.Payload(), &results); err != nil {
			log.Printf("MQTT payload unmarshal error: %v", err)
			return
		}
		mu.Lock()
		lastResults = results
		mu.Unlock()
	})
	noiseToken.Wait()
	if noiseToken.Error() != nil {
		return noiseToken.Error()
	}
	log.Printf("subscribed to MQTT topic %s", cfg.TopicNoise)

	// 3) JSON API endpoints
	http.HandleFunc("/api/angle", func(w http.ResponseWriter, r *http.Request) {
		mu.RLock()
		defer mu.RUnlock()

		if !haveDiag {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(lastDiag); err != nil {
			log.Printf("json encode error: %v", err)
		}
	})

	http.HandleFunc("/api/noise", func(w http.ResponseWriter, r *http.Request) {
		mu.RLock()
		defer mu.RUnlock()

		if lastResults == nil {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(lastResults); err != nil {
			log.Printf("json encode error: %v", err)
		}
	})

	// 4) Static files from ./web as the root
	fs := http.FileServer(http.Dir("web"))
	http.Handle("/", fs)

	port := cfg.WebServerPort
	if port == 0 {
		port = 8080
	}
	addr := fmt.Sprintf(":%d", port)
	log.Printf("web server listening on %s", addr)
	return http.ListenAndServe(addr, nil)
}
