package fitting

import "math"

// identityTolerance is how close the residual factor must be to 1.0 before
// the trailing identity step is dropped from the chain.
const identityTolerance = 0.001

// Chain decomposes an overall speed factor into bounded steps. The time
// stretch primitive only behaves correctly within a 2x envelope per
// application, so factors outside [0.5, 2.0] are peeled off as full 2.0 or
// 0.5 steps and the residual is emitted last. The product of the returned
// steps always equals factor; a factor within tolerance of 1.0 yields an
// empty chain.
func Chain(factor float64) []float64 {
	var steps []float64
	for factor > 2.0 {
		steps = append(steps, 2.0)
		factor /= 2.0
	}
	for factor < 0.5 {
		steps = append(steps, 0.5)
		factor /= 0.5
	}
	if math.Abs(factor-1.0) > identityTolerance {
		steps = append(steps, factor)
	}
	return steps
}
