package as5600

import (
	"strings"
	"testing"
)

func newSimDev(t *testing.T) (*Dev, *Sim) {
	t.Helper()
	sim := NewSim()
	dev, err := New(sim, Opts{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return dev, sim
}

func TestConfigRoundTrip(t *testing.T) {
	dev, _ := newSimDev(t)

	if err := dev.WriteConfig(0x2F05); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	conf, err := dev.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if conf != 0x2F05 {
		t.Errorf("Config = 0x%04X, want 0x2F05", conf)
	}
}

func TestSetConfigFieldPreservesOtherBits(t *testing.T) {
	dev, _ := newSimDev(t)

	if err := dev.WriteConfig(0x2C09); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if err := dev.SetConfigField(SlowFilter, 2); err != nil {
		t.Fatalf("SetConfigField: %v", err)
	}
	conf, err := dev.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if got := SlowFilter.Get(conf); got != 2 {
		t.Errorf("SF = %d, want 2", got)
	}
	if got := conf &^ SlowFilter.mask(); got != 0x2C09&^SlowFilter.mask() {
		t.Errorf("bits outside SF changed: 0x%04X", conf)
	}
}

func TestConfigureLowLatencyMode(t *testing.T) {
	// Regardless of the word already in the sensor, low latency mode must
	// leave SF at minimum settling and the fast filter enabled.
	for _, prior := range []uint16{0x0000, 0x3FFF, 0x1D06} {
		dev, _ := newSimDev(t)
		if err := dev.WriteConfig(prior); err != nil {
			t.Fatalf("WriteConfig(0x%04X): %v", prior, err)
		}
		if err := dev.ConfigureLowLatencyMode(); err != nil {
			t.Fatalf("ConfigureLowLatencyMode from 0x%04X: %v", prior, err)
		}
		conf, err := dev.Config()
		if err != nil {
			t.Fatalf("Config: %v", err)
		}
		if got := SlowFilter.Get(conf); got != 3 {
			t.Errorf("prior 0x%04X: SF = %d, want 3", prior, got)
		}
		if got := FastFilterThreshold.Get(conf); got == 0 {
			t.Errorf("prior 0x%04X: FTH = 0, want nonzero", prior)
		}
		if got := PowerMode.Get(conf); got != PowerMode.Get(prior) {
			t.Errorf("prior 0x%04X: PM changed to %d", prior, got)
		}
	}
}

func TestRawAngleMasked(t *testing.T) {
	dev, sim := newSimDev(t)

	sim.SetRawAngle(413)
	raw, err := dev.RawAngle()
	if err != nil {
		t.Fatalf("RawAngle: %v", err)
	}
	if raw != 413 {
		t.Errorf("RawAngle = %d, want 413", raw)
	}
}

func TestHealthReads(t *testing.T) {
	dev, sim := newSimDev(t)

	sim.regs[regAGC] = 117
	sim.regs[regMAGNITUDE] = 0x05
	sim.regs[regMAGNITUDE+1] = 0x9A
	sim.regs[regANGLE] = 0x01
	sim.regs[regANGLE+1] = 0x9D

	agc, err := dev.AGC()
	if err != nil {
		t.Fatalf("AGC: %v", err)
	}
	if agc != 117 {
		t.Errorf("AGC = %d, want 117", agc)
	}

	mag, err := dev.Magnitude()
	if err != nil {
		t.Fatalf("Magnitude: %v", err)
	}
	if mag != 0x059A {
		t.Errorf("Magnitude = 0x%04X, want 0x059A", mag)
	}

	angle, err := dev.Angle()
	if err != nil {
		t.Fatalf("Angle: %v", err)
	}
	if angle != 0x019D {
		t.Errorf("Angle = 0x%04X, want 0x019D", angle)
	}
}

func TestDiagnose(t *testing.T) {
	dev, sim := newSimDev(t)

	sim.SetRawAngle(4095)
	diag, err := dev.Diagnose(1)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if diag.RawAngle != 4095 {
		t.Errorf("RawAngle = %d, want 4095", diag.RawAngle)
	}
	if want := -2 * DegPerStep; diag.AngleDeg != want {
		t.Errorf("AngleDeg = %v, want %v", diag.AngleDeg, want)
	}
	if !diag.MagnetDetected || diag.SignalTooWeak || diag.SignalTooStrong {
		t.Errorf("flags = %+v, want magnet detected only", diag)
	}
}

func TestDiagnoseMagnetFault(t *testing.T) {
	dev, sim := newSimDev(t)

	sim.SetStatus(statusMD | statusML)
	diag, err := dev.Diagnose(0)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !diag.SignalTooWeak {
		t.Errorf("SignalTooWeak = false, want true")
	}
	if diag.SignalTooStrong {
		t.Errorf("SignalTooStrong = true, want false")
	}
}

func TestDiagnosticsStringStableOrder(t *testing.T) {
	line := Diagnostics{RawAngle: 413, AngleDeg: 1.582, MagnetDetected: true}.String()
	for _, want := range []string{"ANGLE=", "RAW= 413", "MD=1", "ML=0", "MH=0"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
	if !strings.Contains(line, "+") {
		t.Errorf("line %q missing explicit sign", line)
	}
}
