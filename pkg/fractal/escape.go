package fractal

// Evaluate returns the iteration at which the orbit of c = cre + cim*i
// leaves the radius-2 disc, or maxIter if it stays inside for maxIter steps.
func Evaluate(cre, cim float64, maxIter uint32) uint32 {
	if inCardioid(cre, cim) || inPeriod2Bulb(cre, cim) {
		return maxIter
	}

	var zre, zim float64
	for it := uint32(0); it < maxIter; it++ {
		zre2, zim2 := zre*zre, zim*zim
		// tested before the update: the count is that of the last iterate inside
		if zre2+zim2 > 4 {
			return it
		}
		// z = z ^ 2 + c
		zim = 2*zre*zim + cim
		zre = zre2 - zim2 + cre
	}
	return maxIter
}

// main cardioid
func inCardioid(cre, cim float64) bool {
	x := cre - 0.25
	q := x*x + cim*cim
	return q*(q+x) <= 0.25*cim*cim
}

// circle of radius 1/4 around -1
func inPeriod2Bulb(cre, cim float64) bool {
	x := cre + 1
	return x*x+cim*cim <= 0.0625
}
