package gamemath

// ApplyGravity accelerates speedY by gravity over dt while the body has not
// reached the fall cap. The cap is checked before the step, so the speed may
// end slightly above it.
func ApplyGravity(speedY, gravity, fallCap, dt float64) float64 {
	if speedY <= fallCap {
		speedY += gravity * dt
	}
	return speedY
}

// ClampElapsed bounds a frame's elapsed time to [0, max].
func ClampElapsed(elapsed, max float64) float64 {
	if elapsed < 0 {
		return 0
	}
	if elapsed > max {
		return max
	}
	return elapsed
}
