// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/rotary_encoder/internal/config"
	"github.com/relabs-tech/rotary_encoder/internal/noise"
	"github.com/relabs-tech/rotary_encoder/internal/sensors"
)

// RunNoiseTest measures the angular noise floor at each slow filter setting
// and prints the comparison against the datasheet figures. The magnet must
// be stationary for the duration; peak-to-peak and RMS are meaningless on a
// moving shaft.
func RunNoiseTest() error {
	log.Println("starting AS5600 noise characterization")

	cfg := config.Get()

	mgr := sensors.GetEncoderManager()
	dev, err := mgr.Device()
	if err != nil {
		log.Fatalf("failed to initialize encoder: %v", err)
		return err
	}

	// Sensor health check before spending test time.
	diag, err := dev.Diagnose(cfg.AxisCenter)
	if err != nil {
		log.Fatalf("encoder health check failed: %v", err)
		return err
	}
	log.Printf("health: %s", diag)
	if !diag.MagnetDetected {
		log.Println("WARNING: magnet not detected; results will be garbage")
	}
	if agc, err := dev.AGC(); err == nil {
		log.Printf("AGC=%d (mid-range is a good airgap)", agc)
	}
	log.Println("ensure the magnet is STATIONARY during the test")
	log.Printf("collecting %d samples per setting (settle %dms)", cfg.NoiseSamples, cfg.NoiseSettleMS)

	c := noise.NewCharacterizer(dev)
	settle := time.Duration(cfg.NoiseSettleMS) * time.Millisecond

	var results []noise.Result
	for sf := uint16(0); sf < 4; sf++ {
		log.Printf("--- SF=%d (%s, expect %.3f deg RMS) ---", sf, noise.SettlingTime[sf], noise.ExpectedRMSDeg[sf])

		res, err := c.Run(sf, cfg.NoiseSamples, settle)
		if err != nil {
			log.Fatalf("noise test at SF=%d: %v", sf, err)
			return err
		}
		s := res.Stats
		log.Printf("samples: %d", s.Count)
		log.Printf("mean: %.1f steps", s.Mean)
		log.Printf("range: %d-%d steps", s.Min, s.Max)
		log.Printf("peak-to-peak: %d steps (%.3f deg)", s.PeakToPeakSteps, s.PeakToPeakDeg)
		log.Printf("RMS noise: %.2f steps (%.4f deg)", s.RMSSteps, s.RMSDeg)

		results = append(results, res)
	}

	log.Printf("summary:\n%s", noise.Summary(results))

	if err := publishNoiseResults(cfg, results); err != nil {
		log.Printf("MQTT publish error (noise): %v", err)
	}

	// Leave the sensor in the operational configuration.
	if err := dev.ConfigureLowLatencyMode(); err != nil {
		return err
	}
	log.Println("restored low-latency configuration (SF=3, FTH=1)")
	return nil
}

// publishNoiseResults sends the full result set to the noise topic so the
// console and web viewers can pick it up. Skipped silently when no broker
// is configured.
func publishNoiseResults(cfg *config.Config, results []noise.Result) error {
	if cfg.TopicNoise == "" {
		return nil
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDNoise)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer client.Disconnect(250)

	payload, err := json.Marshal(results)
	if err != nil {
		return err
	}
	if token := client.Publish(cfg.TopicNoise, 0, true, payload); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("published noise results to %s", cfg.TopicNoise)
	return nil
}
