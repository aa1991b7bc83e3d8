package as5600

// StepsToDegrees converts a step count to degrees.
func StepsToDegrees(steps float64) float64 {
	return steps * DegPerStep
}

// RelativeAngleDeg computes the signed shortest angular displacement of raw
// from center, in degrees, on the sensor's circular 4096-step domain.
//
// The half-range offset inside the modulo keeps the result in [-180, +180)
// and continuous across the 0/360 boundary; a naive raw-center subtraction
// jumps by ~360 degrees when the shaft crosses zero near the center point.
func RelativeAngleDeg(raw, center uint16) float64 {
	delta := (int(raw) - int(center) + StepsPerRev/2) % StepsPerRev
	if delta < 0 {
		delta += StepsPerRev
	}
	return StepsToDegrees(float64(delta - StepsPerRev/2))
}
