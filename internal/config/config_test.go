package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "encoder_config.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const validConfig = `# encoder config
MQTT_BROKER=tcp://localhost:1883
TOPIC_DIAGNOSTICS=encoder/diag
TOPIC_NOISE=encoder/noise

ENCODER_I2C_BUS=1
ENCODER_I2C_ADDR=0x36
AXIS_CENTER=413

SAMPLE_INTERVAL=50
NOISE_SAMPLES=200
NOISE_SETTLE_MS=50
CALIBRATION_SAMPLES=100
WEB_SERVER_PORT=8080
`

func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.MQTTBroker != "tcp://localhost:1883" {
		t.Errorf("MQTTBroker = %q", cfg.MQTTBroker)
	}
	if cfg.EncoderI2CAddr != 0x36 {
		t.Errorf("EncoderI2CAddr = 0x%02X, want 0x36", cfg.EncoderI2CAddr)
	}
	if cfg.AxisCenter != 413 {
		t.Errorf("AxisCenter = %d, want 413", cfg.AxisCenter)
	}
	if cfg.NoiseSamples != 200 || cfg.NoiseSettleMS != 50 {
		t.Errorf("noise params = %d/%d, want 200/50", cfg.NoiseSamples, cfg.NoiseSettleMS)
	}
	if cfg.SampleInterval != 50 {
		t.Errorf("SampleInterval = %d, want 50", cfg.SampleInterval)
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	_, err := Load(writeConfig(t, validConfig+"BOGUS_KEY=1\n"))
	if err == nil || !strings.Contains(err.Error(), "unknown config key") {
		t.Errorf("err = %v, want unknown key error", err)
	}
}

func TestLoadRejectsAxisCenterOutOfRange(t *testing.T) {
	_, err := Load(writeConfig(t, strings.Replace(validConfig, "AXIS_CENTER=413", "AXIS_CENTER=4096", 1)))
	if err == nil || !strings.Contains(err.Error(), "AXIS_CENTER") {
		t.Errorf("err = %v, want AXIS_CENTER range error", err)
	}
}

func TestLoadRequiresBroker(t *testing.T) {
	_, err := Load(writeConfig(t, strings.Replace(validConfig, "MQTT_BROKER=tcp://localhost:1883\n", "", 1)))
	if err == nil || !strings.Contains(err.Error(), "MQTT_BROKER") {
		t.Errorf("err = %v, want missing broker error", err)
	}
}

func TestLoadRejectsMalformedLine(t *testing.T) {
	_, err := Load(writeConfig(t, validConfig+"not a key value line\n"))
	if err == nil || !strings.Contains(err.Error(), "invalid config line") {
		t.Errorf("err = %v, want malformed line error", err)
	}
}
