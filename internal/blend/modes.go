package blend

// Mode identifies a compositing operation.
//
// The numeric ordering is a compatibility contract shared with the public
// enum in the root package and with callers that persist the integer
// values; it must not be reordered. Porter-Duff operators come first,
// then the separable modes, then the HSL non-separable modes.
type Mode uint8

const (
	ModeClear Mode = iota // result is transparent black
	ModeSrc               // source replaces destination
	ModeDst               // destination kept unchanged
	ModeSrcOver           // source over destination (default compositing)
	ModeDstOver           // destination over source
	ModeSrcIn             // source where destination is opaque
	ModeDstIn             // destination where source is opaque
	ModeSrcOut            // source where destination is transparent
	ModeDstOut            // destination where source is transparent
	ModeSrcATop           // source atop destination
	ModeDstATop           // destination atop source
	ModeXor               // source and destination where they do not overlap
	ModePlus              // clamped channel sum
	ModeModulate          // channel product including alpha
	ModeScreen
	ModeOverlay
	ModeDarken
	ModeLighten
	ModeColorDodge
	ModeColorBurn
	ModeHardLight
	ModeSoftLight
	ModeDifference
	ModeExclusion
	ModeMultiply
	ModeHue
	ModeSaturation
	ModeColor
	ModeLuminosity

	// NumModes is one past the last valid mode.
	NumModes
)

// Func is the signature shared by all blend operations.
// All channel values are premultiplied alpha in 0-255:
//
//	sr, sg, sb, sa: source color
//	dr, dg, db, da: destination color
//
// The result is the composited premultiplied color.
type Func func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

// funcs dispatches modes to implementations; index is the Mode value.
var funcs = [NumModes]Func{
	ModeClear:      blendClear,
	ModeSrc:        blendSrc,
	ModeDst:        blendDst,
	ModeSrcOver:    blendSrcOver,
	ModeDstOver:    blendDstOver,
	ModeSrcIn:      blendSrcIn,
	ModeDstIn:      blendDstIn,
	ModeSrcOut:     blendSrcOut,
	ModeDstOut:     blendDstOut,
	ModeSrcATop:    blendSrcATop,
	ModeDstATop:    blendDstATop,
	ModeXor:        blendXor,
	ModePlus:       blendPlus,
	ModeModulate:   blendModulate,
	ModeScreen:     blendScreen,
	ModeOverlay:    blendOverlay,
	ModeDarken:     blendDarken,
	ModeLighten:    blendLighten,
	ModeColorDodge: blendColorDodge,
	ModeColorBurn:  blendColorBurn,
	ModeHardLight:  blendHardLight,
	ModeSoftLight:  blendSoftLight,
	ModeDifference: blendDifference,
	ModeExclusion:  blendExclusion,
	ModeMultiply:   blendMultiply,
	ModeHue:        blendHue,
	ModeSaturation: blendSaturation,
	ModeColor:      blendColor,
	ModeLuminosity: blendLuminosity,
}

// Lookup returns the blend function for mode, or blendSrcOver for values
// outside the mode set. Callers that need strict validation check
// mode < NumModes before translating their own enum into a Mode.
func Lookup(mode Mode) Func {
	if mode >= NumModes {
		return blendSrcOver
	}
	return funcs[mode]
}

// String returns the mode name.
func (m Mode) String() string {
	names := [NumModes]string{
		"Clear", "Src", "Dst", "SrcOver", "DstOver", "SrcIn", "DstIn",
		"SrcOut", "DstOut", "SrcATop", "DstATop", "Xor", "Plus", "Modulate",
		"Screen", "Overlay", "Darken", "Lighten", "ColorDodge", "ColorBurn",
		"HardLight", "SoftLight", "Difference", "Exclusion", "Multiply",
		"Hue", "Saturation", "Color", "Luminosity",
	}
	if m >= NumModes {
		return "Unknown"
	}
	return names[m]
}
