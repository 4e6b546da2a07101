package fx

import "github.com/gogpu/fx/internal/filter"

// ColorMatrix is a 4x5 color transformation in row-major order: four
// rows of five coefficients (R, G, B, A, bias). Channel values are
// straight-alpha in the [0, 255] range during the transform.
type ColorMatrix [20]float32

// Concat returns the matrix that applies inner first and then m, so
// that outer.Concat(inner) composes the same way chained filters do.
func (m ColorMatrix) Concat(inner ColorMatrix) ColorMatrix {
	return ColorMatrix(filter.Matrix(m).Concat(filter.Matrix(inner)))
}

// IdentityMatrix passes colors through unchanged.
func IdentityMatrix() ColorMatrix {
	return ColorMatrix(filter.Identity())
}

// BrightnessMatrix scales the color channels.
// factor: 0 = black, 1 = unchanged, 2 = twice as bright.
func BrightnessMatrix(factor float32) ColorMatrix {
	return ColorMatrix(filter.Brightness(factor))
}

// ContrastMatrix scales the distance from middle gray.
// factor: 0 = flat gray, 1 = unchanged, 2 = high contrast.
func ContrastMatrix(factor float32) ColorMatrix {
	return ColorMatrix(filter.Contrast(factor))
}

// SaturationMatrix blends between grayscale (0) and identity (1).
func SaturationMatrix(factor float32) ColorMatrix {
	return ColorMatrix(filter.Saturation(factor))
}

// GrayscaleMatrix converts to grayscale with Rec. 709 weights.
func GrayscaleMatrix() ColorMatrix {
	return ColorMatrix(filter.Grayscale())
}

// SepiaMatrix applies a sepia tone.
func SepiaMatrix() ColorMatrix {
	return ColorMatrix(filter.Sepia())
}

// InvertMatrix inverts the color channels, leaving alpha alone.
func InvertMatrix() ColorMatrix {
	return ColorMatrix(filter.Invert())
}

// HueRotateMatrix rotates the hue by the given angle in degrees.
func HueRotateMatrix(degrees float32) ColorMatrix {
	return ColorMatrix(filter.HueRotate(degrees))
}

// OpacityMatrix multiplies alpha by factor.
func OpacityMatrix(factor float32) ColorMatrix {
	return ColorMatrix(filter.Opacity(factor))
}

// TintMatrix blends each pixel toward c. The tint strength is c.A:
// zero leaves pixels unchanged, one replaces them with the tint color.
func TintMatrix(c RGBA) ColorMatrix {
	return ColorMatrix(filter.Tint(float32(c.R), float32(c.G), float32(c.B), float32(c.A)))
}
