package noise

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/relabs-tech/rotary_encoder/internal/as5600"
)

func TestComputeStatisticsKnownSet(t *testing.T) {
	stats := ComputeStatistics([]uint16{100, 102, 98, 101, 99})

	if stats.Count != 5 {
		t.Errorf("Count = %d, want 5", stats.Count)
	}
	if stats.Mean != 100.0 {
		t.Errorf("Mean = %v, want 100", stats.Mean)
	}
	if stats.Min != 98 || stats.Max != 102 {
		t.Errorf("Min/Max = %d/%d, want 98/102", stats.Min, stats.Max)
	}
	if stats.PeakToPeakSteps != 4 {
		t.Errorf("PeakToPeakSteps = %d, want 4", stats.PeakToPeakSteps)
	}
	// Deviations 0,2,-2,1,-1: RMS = sqrt(10/5) = sqrt(2).
	if want := math.Sqrt(2); math.Abs(stats.RMSSteps-want) > 1e-9 {
		t.Errorf("RMSSteps = %v, want %v", stats.RMSSteps, want)
	}
	if want := math.Sqrt(2) * 360.0 / 4096.0; math.Abs(stats.RMSDeg-want) > 1e-9 {
		t.Errorf("RMSDeg = %v, want %v", stats.RMSDeg, want)
	}
}

func TestComputeStatisticsConstantSamples(t *testing.T) {
	stats := ComputeStatistics([]uint16{413, 413, 413, 413})

	if stats.RMSSteps != 0 {
		t.Errorf("RMSSteps = %v, want 0", stats.RMSSteps)
	}
	if stats.PeakToPeakSteps != 0 {
		t.Errorf("PeakToPeakSteps = %d, want 0", stats.PeakToPeakSteps)
	}
	if stats.Mean != 413 {
		t.Errorf("Mean = %v, want 413", stats.Mean)
	}
}

func TestComputeStatisticsEmpty(t *testing.T) {
	if stats := ComputeStatistics(nil); stats.Count != 0 {
		t.Errorf("Count = %d, want 0", stats.Count)
	}
}

func TestRunWritesConfigOnceBeforeSampling(t *testing.T) {
	sim := as5600.NewSim()
	dev, err := as5600.New(sim, as5600.Opts{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := dev.WriteConfig(0x2401); err != nil { // FTH=1, some other bits set
		t.Fatalf("WriteConfig: %v", err)
	}
	writesBefore := sim.ConfWrites()

	var writesAtFirstSample int
	sim.AngleFunc = func(n int) uint16 {
		if n == 0 {
			writesAtFirstSample = sim.ConfWrites()
		}
		return 413
	}

	c := NewCharacterizer(dev)
	c.sleep = func(time.Duration) {}

	res, err := c.Run(2, 50, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Exactly one configuration write for the whole run, already issued by
	// the time the first sample is taken.
	if got := sim.ConfWrites() - writesBefore; got != 1 {
		t.Errorf("CONF writes during run = %d, want 1", got)
	}
	if got := writesAtFirstSample - writesBefore; got != 1 {
		t.Errorf("CONF writes before first sample = %d, want 1", got)
	}

	conf, err := dev.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if got := as5600.SlowFilter.Get(conf); got != 2 {
		t.Errorf("SF = %d, want 2", got)
	}
	if got := as5600.FastFilterThreshold.Get(conf); got != 0 {
		t.Errorf("FTH = %d, want 0 during noise test", got)
	}

	if res.Stats.Count != 50 {
		t.Errorf("Count = %d, want 50", res.Stats.Count)
	}
	if res.Stats.RMSSteps != 0 {
		t.Errorf("RMSSteps = %v for stationary sim, want 0", res.Stats.RMSSteps)
	}
	if res.ExpectedRMSDeg != ExpectedRMSDeg[2] {
		t.Errorf("ExpectedRMSDeg = %v, want %v", res.ExpectedRMSDeg, ExpectedRMSDeg[2])
	}
}

func TestRunSettlesBeforeSampling(t *testing.T) {
	sim := as5600.NewSim()
	dev, err := as5600.New(sim, as5600.Opts{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	sampled := false
	sim.AngleFunc = func(n int) uint16 {
		sampled = true
		return 100
	}

	slept := time.Duration(0)
	c := NewCharacterizer(dev)
	c.sleep = func(d time.Duration) {
		if sampled {
			t.Errorf("settle wait after sampling began")
		}
		slept = d
	}

	if _, err := c.Run(0, 5, 50*time.Millisecond); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if slept != 50*time.Millisecond {
		t.Errorf("settle wait = %v, want 50ms", slept)
	}
	if !sampled {
		t.Errorf("no samples collected")
	}
}

func TestRunRejectsInvalidSetting(t *testing.T) {
	sim := as5600.NewSim()
	dev, err := as5600.New(sim, as5600.Opts{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c := NewCharacterizer(dev)
	c.sleep = func(time.Duration) {}

	if _, err := c.Run(4, 5, 0); err == nil {
		t.Errorf("Run(4, ...) succeeded, want field range error")
	}
}

func TestSummaryContainsAllSettings(t *testing.T) {
	var results []Result
	for sf := uint16(0); sf < 4; sf++ {
		results = append(results, Result{
			SlowFilter:     sf,
			Stats:          ComputeStatistics([]uint16{100, 101}),
			ExpectedRMSDeg: ExpectedRMSDeg[sf],
		})
	}
	table := Summary(results)
	for _, want := range []string{"Expected", "0.015", "0.021", "0.030", "0.043"} {
		if !strings.Contains(table, want) {
			t.Errorf("summary missing %q:\n%s", want, table)
		}
	}
}
