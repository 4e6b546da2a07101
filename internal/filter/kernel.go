// Package filter implements the pixel-level image filters behind the
// effect graph: separable Gaussian blur and 4x5 color matrix
// transforms. All filters read and write straight-alpha RGBA buffers
// from the imaging package.
package filter

import (
	"math"

	"github.com/gogpu/fx/internal/cache"
)

// blurSigmaScale converts a blur radius to a Gaussian sigma. The
// constant approximates 1/sqrt(3), chosen so that three iterated box
// blurs of the radius match the true Gaussian closely.
const blurSigmaScale = 0.57735

// RadiusToSigma maps a blur radius in pixels to the sigma used by
// Blur. Radii of zero or less map to sigma zero, the identity blur.
func RadiusToSigma(radius float64) float64 {
	if radius <= 0 {
		return 0
	}
	return radius*blurSigmaScale + 0.5
}

// kernelScale quantizes sigma for cache keys. Two decimal digits of
// sigma is well below any visible difference in blur output.
const kernelScale = 100

var kernels = cache.New[int, []float32](64)

// KernelRadius returns the half-width of the Gaussian kernel for
// sigma. The kernel covers three standard deviations to each side.
func KernelRadius(sigma float64) int {
	if sigma <= 0 {
		return 0
	}
	return int(math.Ceil(3 * sigma))
}

// GaussianKernel returns a normalized 1-D Gaussian kernel for sigma,
// of length 2*KernelRadius(sigma)+1. Results are cached; callers must
// not mutate the returned slice.
func GaussianKernel(sigma float64) []float32 {
	if sigma <= 0 {
		return []float32{1}
	}
	key := int(sigma*kernelScale + 0.5)
	if key < 1 {
		key = 1
	}
	return kernels.GetOrCreate(key, func() []float32 {
		return buildKernel(float64(key) / kernelScale)
	})
}

func buildKernel(sigma float64) []float32 {
	radius := KernelRadius(sigma)
	kernel := make([]float32, 2*radius+1)

	twoSigmaSq := 2 * sigma * sigma
	var sum float64
	for i := range kernel {
		d := float64(i - radius)
		w := math.Exp(-d * d / twoSigmaSq)
		kernel[i] = float32(w)
		sum += w
	}

	inv := float32(1 / sum)
	for i := range kernel {
		kernel[i] *= inv
	}
	return kernel
}
