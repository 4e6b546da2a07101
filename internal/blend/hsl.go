package blend

import "math"

// Non-separable modes (Hue, Saturation, Color, Luminosity) per W3C
// Compositing and Blending Level 1 section 8. These operate on the whole
// RGB triplet through luminance and saturation adjustments rather than
// per-channel curves.

// lum returns the luminance of a color using BT.601 coefficients.
// Inputs are normalized float32 values in [0, 1].
func lum(r, g, b float32) float32 {
	return 0.30*r + 0.59*g + 0.11*b
}

// sat returns the saturation (max - min) of a color.
func sat(r, g, b float32) float32 {
	return max3(r, g, b) - min3(r, g, b)
}

// clipColor scales out-of-range components toward the luminance so the
// triplet returns to [0, 1] without shifting perceived brightness.
func clipColor(r, g, b float32) (float32, float32, float32) {
	l := lum(r, g, b)
	n := min3(r, g, b)
	x := max3(r, g, b)

	if n < 0 {
		r = l + (r-l)*l/(l-n)
		g = l + (g-l)*l/(l-n)
		b = l + (b-l)*l/(l-n)
	}
	if x > 1 {
		r = l + (r-l)*(1-l)/(x-l)
		g = l + (g-l)*(1-l)/(x-l)
		b = l + (b-l)*(1-l)/(x-l)
	}

	return r, g, b
}

// setLum shifts the color to luminance l, then clips.
func setLum(r, g, b, l float32) (float32, float32, float32) {
	d := l - lum(r, g, b)
	return clipColor(r+d, g+d, b+d)
}

// setSat rescales the color to saturation s, preserving the component
// ordering. A grayscale input stays grayscale.
func setSat(r, g, b, s float32) (float32, float32, float32) {
	minPtr, midPtr, maxPtr := sortRGB(&r, &g, &b)

	minVal := *minPtr
	midVal := *midPtr
	maxVal := *maxPtr

	if maxVal > minVal {
		*midPtr = ((midVal - minVal) * s) / (maxVal - minVal)
		*maxPtr = s
		*minPtr = 0
	}

	return r, g, b
}

// sortRGB returns pointers to r, g, b ordered by value.
func sortRGB(r, g, b *float32) (minPtr, midPtr, maxPtr *float32) {
	switch {
	case *r <= *g && *g <= *b:
		return r, g, b
	case *r <= *b && *b <= *g:
		return r, b, g
	case *b <= *r && *r <= *g:
		return b, r, g
	case *g <= *r && *r <= *b:
		return g, r, b
	case *g <= *b && *b <= *r:
		return g, b, r
	default:
		return b, g, r
	}
}

// hslHue: SetLum(SetSat(Cs, Sat(Cb)), Lum(Cb)).
func hslHue(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
	r, g, b := setSat(sr, sg, sb, sat(dr, dg, db))
	return setLum(r, g, b, lum(dr, dg, db))
}

// hslSaturation: SetLum(SetSat(Cb, Sat(Cs)), Lum(Cb)).
func hslSaturation(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
	r, g, b := setSat(dr, dg, db, sat(sr, sg, sb))
	return setLum(r, g, b, lum(dr, dg, db))
}

// hslColor: SetLum(Cs, Lum(Cb)).
func hslColor(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
	return setLum(sr, sg, sb, lum(dr, dg, db))
}

// hslLuminosity: SetLum(Cb, Lum(Cs)).
func hslLuminosity(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
	return setLum(dr, dg, db, lum(sr, sg, sb))
}

func min3(a, b, c float32) float32 {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

func max3(a, b, c float32) float32 {
	if a > b {
		if a > c {
			return a
		}
		return c
	}
	if b > c {
		return b
	}
	return c
}

// Byte-level wrappers dispatched from the mode table.

func blendHue(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparableBlend(sr, sg, sb, sa, dr, dg, db, da, hslHue)
}

func blendSaturation(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparableBlend(sr, sg, sb, sa, dr, dg, db, da, hslSaturation)
}

func blendColor(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparableBlend(sr, sg, sb, sa, dr, dg, db, da, hslColor)
}

func blendLuminosity(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparableBlend(sr, sg, sb, sa, dr, dg, db, da, hslLuminosity)
}

// nonSeparableBlend lifts an RGB-triplet blend function into a Func using
// the same compositing formula as the separable path:
//
//	result = (1 - Sa)*D + (1 - Da)*S + Sa*Da*B(Cs, Cb)
func nonSeparableBlend(
	sr, sg, sb, sa, dr, dg, db, da byte,
	blendFunc func(sr, sg, sb, dr, dg, db float32) (float32, float32, float32),
) (byte, byte, byte, byte) {
	if sa == 0 {
		return dr, dg, db, da
	}
	if da == 0 {
		return sr, sg, sb, sa
	}

	// Unpremultiply into normalized floats.
	sur := float32(sr) / float32(sa)
	sug := float32(sg) / float32(sa)
	sub := float32(sb) / float32(sa)
	dur := float32(dr) / float32(da)
	dug := float32(dg) / float32(da)
	dub := float32(db) / float32(da)

	blendR, blendG, blendB := blendFunc(sur, sug, sub, dur, dug, dub)

	invSa := 255 - sa
	invDa := 255 - da
	saDa := (float32(sa) / 255.0) * (float32(da) / 255.0)

	finalA := addDiv255(sa, mulDiv255(da, invSa))

	finalR := addDiv255(mulDiv255(dr, invSa), mulDiv255(sr, invDa))
	finalG := addDiv255(mulDiv255(dg, invSa), mulDiv255(sg, invDa))
	finalB := addDiv255(mulDiv255(db, invSa), mulDiv255(sb, invDa))

	finalR = addDiv255(finalR, byte(math.Round(float64(blendR*saDa*255.0))))
	finalG = addDiv255(finalG, byte(math.Round(float64(blendG*saDa*255.0))))
	finalB = addDiv255(finalB, byte(math.Round(float64(blendB*saDa*255.0))))

	return finalR, finalG, finalB, finalA
}
