package imaging

// Edge selects how reads outside a buffer's bounds resolve.
//
// The numeric values are a compatibility contract with the public enum in
// the root package and must not be reordered.
type Edge uint8

const (
	// EdgeClamp extends the nearest edge pixel outward.
	EdgeClamp Edge = iota

	// EdgeRepeat tiles the buffer; coordinates wrap at the boundaries.
	EdgeRepeat

	// EdgeMirror reflects the buffer at each boundary.
	EdgeMirror

	// EdgeDecal reads outside the bounds as transparent black.
	EdgeDecal
)

// String returns the edge mode name.
func (e Edge) String() string {
	switch e {
	case EdgeClamp:
		return "Clamp"
	case EdgeRepeat:
		return "Repeat"
	case EdgeMirror:
		return "Mirror"
	case EdgeDecal:
		return "Decal"
	default:
		return "Unknown"
	}
}

// ResolveIndex maps coordinate i into [0, n) according to the edge mode.
// For EdgeDecal the second result is false when i falls outside, meaning the
// sample is transparent black rather than a buffer read.
func ResolveIndex(i, n int, e Edge) (int, bool) {
	if n <= 0 {
		return 0, false
	}
	if i >= 0 && i < n {
		return i, true
	}
	switch e {
	case EdgeRepeat:
		i %= n
		if i < 0 {
			i += n
		}
		return i, true
	case EdgeMirror:
		// Reflect with period 2n: ramp up then back down.
		period := 2 * n
		i %= period
		if i < 0 {
			i += period
		}
		if i >= n {
			i = period - 1 - i
		}
		return i, true
	case EdgeDecal:
		return 0, false
	default: // EdgeClamp
		if i < 0 {
			return 0, true
		}
		return n - 1, true
	}
}

// SampleRGBA reads pixel (x, y) applying the edge mode on both axes.
// A decal miss on either axis yields transparent black.
func (b *Buffer) SampleRGBA(x, y int, e Edge) (r, g, bl, a uint8) {
	sx, ok := ResolveIndex(x, b.W, e)
	if !ok {
		return 0, 0, 0, 0
	}
	sy, ok := ResolveIndex(y, b.H, e)
	if !ok {
		return 0, 0, 0, 0
	}
	i := (sy*b.W + sx) * 4
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}
