// Package blend implements the compositing operations behind blend effects.
//
// The full mode set covers the Porter-Duff operators, the W3C separable
// modes, and the HSL non-separable modes, all operating on premultiplied
// alpha bytes. Mode values follow a fixed external ordering; see modes.go.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// div255 divides x by 255 using a fast shift approximation.
//
// Formula: (x + 255) >> 8
//
// Maximum error is +1 for some inputs, imperceptible in compositing and
// several times faster than integer division. For alpha products
// (inputs up to 255*255) the result stays within byte range.
func div255(x uint16) uint16 {
	return (x + 255) >> 8
}

// div255Exact divides x by 255 exactly without division (Alvy Ray Smith's
// formula). Used where tests need the exact quotient as a reference.
func div255Exact(x uint16) uint16 {
	t := x + 1
	return (t + (t >> 8)) >> 8
}

// mulDiv255 multiplies two bytes and divides by 255, fast approximation.
func mulDiv255(a, b byte) byte {
	return byte(div255(uint16(a) * uint16(b)))
}

// addDiv255 adds two byte terms of a compositing sum, clamped to 255.
func addDiv255(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}

// minByte returns the smaller of two bytes.
func minByte(a, b byte) byte {
	if a < b {
		return a
	}
	return b
}

// maxByte returns the larger of two bytes.
func maxByte(a, b byte) byte {
	if a > b {
		return a
	}
	return b
}
