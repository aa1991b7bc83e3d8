package as5600

import (
	"math"
	"testing"
)

func TestStepsToDegrees(t *testing.T) {
	if got := StepsToDegrees(0); got != 0 {
		t.Errorf("StepsToDegrees(0) = %v", got)
	}
	if got := StepsToDegrees(StepsPerRev); math.Abs(got-360.0) > 1e-9 {
		t.Errorf("StepsToDegrees(%d) = %v, want 360", StepsPerRev, got)
	}
	if got := StepsToDegrees(StepsPerRev / 4); math.Abs(got-90.0) > 1e-9 {
		t.Errorf("quarter rev = %v, want 90", got)
	}
}

func TestRelativeAngleDegZeroAtCenter(t *testing.T) {
	for _, raw := range []uint16{0, 1, 413, 2048, 4095} {
		if got := RelativeAngleDeg(raw, raw); got != 0 {
			t.Errorf("RelativeAngleDeg(%d, %d) = %v, want 0", raw, raw, got)
		}
	}
}

func TestRelativeAngleDegWraparound(t *testing.T) {
	// Two steps forward across the zero boundary must come out as a small
	// positive displacement, not a jump of nearly a full turn.
	got := RelativeAngleDeg(1, StepsPerRev-1)
	want := 2 * DegPerStep
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("RelativeAngleDeg(1, 4095) = %v, want %v", got, want)
	}

	// And two steps backward across the boundary.
	got = RelativeAngleDeg(StepsPerRev-1, 1)
	if math.Abs(got+want) > 1e-9 {
		t.Errorf("RelativeAngleDeg(4095, 1) = %v, want %v", got, -want)
	}
}

func TestRelativeAngleDegBounded(t *testing.T) {
	for raw := 0; raw < StepsPerRev; raw += 37 {
		for center := 0; center < StepsPerRev; center += 41 {
			got := RelativeAngleDeg(uint16(raw), uint16(center))
			if got < -180.0 || got >= 180.0 {
				t.Fatalf("RelativeAngleDeg(%d, %d) = %v out of [-180, 180)", raw, center, got)
			}
		}
	}
}

func TestRelativeAngleDegMatchesPlainDifferenceAwayFromBoundary(t *testing.T) {
	got := RelativeAngleDeg(431, 413)
	want := 18 * DegPerStep
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("RelativeAngleDeg(431, 413) = %v, want %v", got, want)
	}
}
