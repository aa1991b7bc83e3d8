package app

import (
	"encoding/json"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/rotary_encoder/internal/as5600"
	"github.com/relabs-tech/rotary_encoder/internal/config"
)

// displayData holds the latest diagnostic record for display
type displayData struct {
	mu       sync.RWMutex
	diag     as5600.Diagnostics
	haveDiag bool
}

// RunDisplay shows the live relative angle and magnet health on an SSD1306
// OLED, fed from the diagnostics MQTT topic.
func RunDisplay() error {
	cfg := config.Get()

	// Initialize periph
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize periph: %w", err)
	}

	// Open I2C bus
	bus, err := i2creg.Open("")
	if err != nil {
		return fmt.Errorf("failed to open I2C bus: %w", err)
	}
	defer bus.Close()

	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		return fmt.Errorf("failed to initialize display: %w", err)
	}
	log.Println("display: initialized (128x64)")

	if err := showSplash(dev); err != nil {
		log.Printf("display: error showing splash: %v", err)
	}

	// Data storage
	data := &displayData{}

	// Connect to MQTT
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDDisplay)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("display: connected to MQTT broker at %s", cfg.MQTTBroker)

	token := client.Subscribe(cfg.TopicDiagnostics, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var d as5600.Diagnostics
		if err := json.Unmarshal(msg.Payload(), &d); err != nil {
			log.Printf("display: diag unmarshal error: %v", err)
			return
		}
		data.mu.Lock()
		data.diag = d
		data.haveDiag = true
		data.mu.Unlock()
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("display: subscribed to %s", cfg.TopicDiagnostics)

	// Display update loop
	interval := cfg.DisplayUpdateInterval
	if interval == 0 {
		interval = 250
	}
	ticker := time.NewTicker(time.Duration(interval) * time.Millisecond)
	defer ticker.Stop()

	log.Println("display: starting update loop")

	for range ticker.C {
		data.mu.RLock()
		diag, have := data.diag, data.haveDiag
		data.mu.RUnlock()

		if err := updateAngleDisplay(dev, diag, have); err != nil {
			log.Printf("display: error updating display: %v", err)
		}
	}

	return nil
}

func updateAngleDisplay(dev *ssd1306.Dev, diag as5600.Diagnostics, haveData bool) error {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))

	// Blank image
	for i := 0; i < 1024; i++ {
		img.Pix[i] = 0
	}

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}

	if !haveData {
		drawer.Dot = fixed.P(0, 26)
		drawer.DrawBytes([]byte("Encoder"))
		drawer.Dot = fixed.P(0, 39)
		drawer.DrawBytes([]byte("Waiting..."))
	} else {
		drawer.Dot = fixed.P(0, 13)
		drawer.DrawBytes([]byte(fmt.Sprintf("%+8.3f deg", diag.AngleDeg)))

		drawer.Dot = fixed.P(0, 26)
		drawer.DrawBytes([]byte(fmt.Sprintf("raw %4d", diag.RawAngle)))

		drawer.Dot = fixed.P(0, 39)
		switch {
		case !diag.MagnetDetected:
			drawer.DrawBytes([]byte("NO MAGNET"))
		case diag.SignalTooWeak:
			drawer.DrawBytes([]byte("magnet WEAK"))
		case diag.SignalTooStrong:
			drawer.DrawBytes([]byte("magnet STRONG"))
		default:
			drawer.DrawBytes([]byte("magnet OK"))
		}
	}

	return dev.Draw(dev.Bounds(), img, image.Point{})
}

func showSplash(dev *ssd1306.Dev) error {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))

	// Blank image
	for i := 0; i < 1024; i++ {
		img.Pix[i] = 0
	}

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}

	drawer.Dot = fixed.P(10, 26)
	drawer.DrawBytes([]byte("Rotary Encoder"))

	drawer.Dot = fixed.P(5, 43)
	drawer.DrawBytes([]byte("AS5600"))

	return dev.Draw(dev.Bounds(), img, image.Point{})
}
