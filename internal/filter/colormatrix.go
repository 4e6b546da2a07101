package filter

import (
	"math"

	"github.com/gogpu/fx/internal/imaging"
)

// Matrix is a 4x5 color transformation matrix in row-major order.
// The transformation is:
//
//	[R']   [m0  m1  m2  m3  m4 ]   [R]
//	[G'] = [m5  m6  m7  m8  m9 ] * [G]
//	[B']   [m10 m11 m12 m13 m14]   [B]
//	[A']   [m15 m16 m17 m18 m19]   [A]
//	                               [1]
//
// The fifth column is a bias added after the 4x4 part. Channel values
// are straight-alpha in the [0, 255] range during the transform and
// clamped back on write.
type Matrix [20]float32

// Identity returns the matrix that passes colors through unchanged.
func Identity() Matrix {
	return Matrix{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Brightness scales the color channels.
// factor: 0 = black, 1 = unchanged, 2 = twice as bright.
func Brightness(factor float32) Matrix {
	return Matrix{
		factor, 0, 0, 0, 0,
		0, factor, 0, 0, 0,
		0, 0, factor, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Contrast scales the distance of each channel from middle gray.
// factor: 0 = flat gray, 1 = unchanged, 2 = high contrast.
func Contrast(factor float32) Matrix {
	// (color - 128) * factor + 128
	offset := 128 * (1 - factor)
	return Matrix{
		factor, 0, 0, 0, offset,
		0, factor, 0, 0, offset,
		0, 0, factor, 0, offset,
		0, 0, 0, 1, 0,
	}
}

// Saturation blends between the luminance (0) and the identity (1).
// factor: 0 = grayscale, 1 = unchanged, 2 = oversaturated.
func Saturation(factor float32) Matrix {
	// Luminance weights (Rec. 709)
	const (
		lumR = 0.2126
		lumG = 0.7152
		lumB = 0.0722
	)
	inv := 1 - factor

	return Matrix{
		lumR*inv + factor, lumG * inv, lumB * inv, 0, 0,
		lumR * inv, lumG*inv + factor, lumB * inv, 0, 0,
		lumR * inv, lumG * inv, lumB*inv + factor, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Grayscale converts to grayscale using Rec. 709 luminance weights.
func Grayscale() Matrix {
	return Saturation(0)
}

// Sepia applies a sepia tone.
func Sepia() Matrix {
	return Matrix{
		0.393, 0.769, 0.189, 0, 0,
		0.349, 0.686, 0.168, 0, 0,
		0.272, 0.534, 0.131, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Invert inverts the color channels and leaves alpha alone.
func Invert() Matrix {
	return Matrix{
		-1, 0, 0, 0, 255,
		0, -1, 0, 0, 255,
		0, 0, -1, 0, 255,
		0, 0, 0, 1, 0,
	}
}

// HueRotate rotates the hue by the given angle in degrees, using the
// YIQ-space rotation approximation.
func HueRotate(degrees float32) Matrix {
	rad := float64(degrees) * math.Pi / 180
	cos := float32(math.Cos(rad))
	sin := float32(math.Sin(rad))

	const (
		lumR = 0.213
		lumG = 0.715
		lumB = 0.072
	)

	return Matrix{
		lumR + cos*(1-lumR) + sin*(-lumR), lumG + cos*(-lumG) + sin*(-lumG), lumB + cos*(-lumB) + sin*(1-lumB), 0, 0,
		lumR + cos*(-lumR) + sin*0.143, lumG + cos*(1-lumG) + sin*0.140, lumB + cos*(-lumB) + sin*(-0.283), 0, 0,
		lumR + cos*(-lumR) + sin*(-(1 - lumR)), lumG + cos*(-lumG) + sin*lumG, lumB + cos*(1-lumB) + sin*lumB, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Opacity multiplies alpha by factor.
// factor: 0 = fully transparent, 1 = unchanged.
func Opacity(factor float32) Matrix {
	return Matrix{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, factor, 0,
	}
}

// Tint blends each pixel toward the tint color r, g, b (components in
// [0, 1]) by the blend strength f in [0, 1].
func Tint(r, g, b, f float32) Matrix {
	inv := 1 - f
	return Matrix{
		inv, 0, 0, 0, r * 255 * f,
		0, inv, 0, 0, g * 255 * f,
		0, 0, inv, 0, b * 255 * f,
		0, 0, 0, 1, 0,
	}
}

// Apply transforms src into dst through the matrix. dst and src must
// have identical dimensions; dst may alias src.
func (m Matrix) Apply(dst, src *imaging.Buffer) {
	if dst.W != src.W || dst.H != src.H {
		return
	}

	for i := 0; i < len(src.Pix); i += 4 {
		r := float32(src.Pix[i])
		g := float32(src.Pix[i+1])
		b := float32(src.Pix[i+2])
		a := float32(src.Pix[i+3])

		dst.Pix[i] = clampUint8(m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4])
		dst.Pix[i+1] = clampUint8(m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9])
		dst.Pix[i+2] = clampUint8(m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14])
		dst.Pix[i+3] = clampUint8(m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19])
	}
}

// Concat returns the matrix that applies inner first and then m, so
// that a.Concat(b).Apply is b followed by a.
func (m Matrix) Concat(inner Matrix) Matrix {
	var out Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[row*5+k] * inner[k*5+col]
			}
			out[row*5+col] = sum
		}
		// Bias column: m's 4x4 part applied to inner's bias, plus m's bias.
		out[row*5+4] = m[row*5+0]*inner[4] + m[row*5+1]*inner[9] +
			m[row*5+2]*inner[14] + m[row*5+3]*inner[19] + m[row*5+4]
	}
	return out
}
