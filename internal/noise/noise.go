// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package noise characterizes the AS5600 angular noise floor at each slow
// filter setting and compares it against the datasheet figures.
package noise

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/relabs-tech/rotary_encoder/internal/as5600"
)

// ExpectedRMSDeg is the datasheet RMS output noise per SF setting, degrees.
var ExpectedRMSDeg = [4]float64{0.015, 0.021, 0.030, 0.043}

// SettlingTime is the datasheet slow filter settling time per SF setting.
var SettlingTime = [4]string{"2.2ms", "1.1ms", "0.55ms", "0.286ms"}

// Statistics summarizes one sample set taken under a fixed configuration.
//
// Peak-to-peak is max-min in raw steps without circular wrapping: it is
// only meaningful with a stationary magnet whose samples do not straddle
// the 0/360 boundary. Reusing this for a moving target needs a wrap-aware
// spread measure first.
type Statistics struct {
	Count           int     `json:"count"`
	Mean            float64 `json:"mean"`
	Min             uint16  `json:"min"`
	Max             uint16  `json:"max"`
	PeakToPeakSteps uint16  `json:"pp_steps"`
	PeakToPeakDeg   float64 `json:"pp_deg"`
	RMSSteps        float64 `json:"rms_steps"`
	RMSDeg          float64 `json:"rms_deg"`
}

// ComputeStatistics reduces a sample set to its descriptive statistics.
// RMS is the root-mean-square deviation from the sample mean.
func ComputeStatistics(samples []uint16) Statistics {
	n := len(samples)
	if n == 0 {
		return Statistics{}
	}

	var sum float64
	min, max := samples[0], samples[0]
	for _, s := range samples {
		sum += float64(s)
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	mean := sum / float64(n)

	var sqSum float64
	for _, s := range samples {
		d := float64(s) - mean
		sqSum += d * d
	}
	rms := math.Sqrt(sqSum / float64(n))

	pp := max - min
	return Statistics{
		Count:           n,
		Mean:            mean,
		Min:             min,
		Max:             max,
		PeakToPeakSteps: pp,
		PeakToPeakDeg:   as5600.StepsToDegrees(float64(pp)),
		RMSSteps:        rms,
		RMSDeg:          as5600.StepsToDegrees(rms),
	}
}

// Result is one noise test outcome, keyed by slow filter setting.
type Result struct {
	SlowFilter     uint16     `json:"sf"`
	Stats          Statistics `json:"stats"`
	ExpectedRMSDeg float64    `json:"expected_rms_deg"`
}

// Characterizer drives noise tests against one encoder. It owns no state
// across runs: every run rewrites the sensor configuration explicitly.
type Characterizer struct {
	dev   *as5600.Dev
	sleep func(time.Duration)
}

// NewCharacterizer returns a characterizer for dev.
func NewCharacterizer(dev *as5600.Dev) *Characterizer {
	return &Characterizer{dev: dev, sleep: time.Sleep}
}

// CollectSamples issues n sequential raw angle reads. The first bus error
// aborts the collection.
func (c *Characterizer) CollectSamples(n int) ([]uint16, error) {
	samples := make([]uint16, 0, n)
	for i := 0; i < n; i++ {
		raw, err := c.dev.RawAngle()
		if err != nil {
			return nil, fmt.Errorf("sample %d/%d: %w", i+1, n, err)
		}
		samples = append(samples, raw)
	}
	return samples, nil
}

// Run measures the noise floor at one slow filter setting: one CONF write
// installing sf with the fast filter disabled (FTH=0, so only the slow
// filter contributes), a settle wait for the filter to converge, then
// sampleCount reads and their statistics.
//
// Statistics collected before the filter settles measure a transient, not
// the steady-state noise floor, so the wait always precedes sampling.
func (c *Characterizer) Run(sf uint16, sampleCount int, settle time.Duration) (Result, error) {
	conf, err := c.dev.Config()
	if err != nil {
		return Result{}, err
	}
	conf, err = as5600.SlowFilter.Set(conf, sf)
	if err != nil {
		return Result{}, err
	}
	conf, err = as5600.FastFilterThreshold.Set(conf, 0)
	if err != nil {
		return Result{}, err
	}
	if err := c.dev.WriteConfig(conf); err != nil {
		return Result{}, err
	}

	c.sleep(settle)

	samples, err := c.CollectSamples(sampleCount)
	if err != nil {
		return Result{}, err
	}

	return Result{
		SlowFilter:     sf,
		Stats:          ComputeStatistics(samples),
		ExpectedRMSDeg: ExpectedRMSDeg[sf],
	}, nil
}

// Summary renders the closing comparison table of measured versus expected
// RMS noise for a completed run set.
func Summary(results []Result) string {
	var b strings.Builder
	b.WriteString("SF | RMS (deg) | P-P (deg) | Expected\n")
	b.WriteString("---|-----------|-----------|---------\n")
	for _, r := range results {
		delta := r.Stats.RMSDeg - r.ExpectedRMSDeg
		fmt.Fprintf(&b, " %d |   %7.4f |   %7.3f | %.3f (%+.4f)\n",
			r.SlowFilter, r.Stats.RMSDeg, r.Stats.PeakToPeakDeg, r.ExpectedRMSDeg, delta)
	}
	return b.String()
}
