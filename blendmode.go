package fx

import (
	"fmt"
	"strings"

	"github.com/gogpu/fx/internal/blend"
)

// BlendMode selects the compositing operation for blend effects and
// blend color filters. The set and its numeric order mirror the
// compositing library the original interface wrapped, one to one:
// Porter-Duff operators first, then the separable modes, then the HSL
// non-separable modes.
//
// The enum is closed and the numeric values are a compatibility
// contract; they must not be reordered.
type BlendMode int

const (
	BlendClear BlendMode = iota
	BlendSrc
	BlendDst
	BlendSrcOver
	BlendDstOver
	BlendSrcIn
	BlendDstIn
	BlendSrcOut
	BlendDstOut
	BlendSrcATop
	BlendDstATop
	BlendXor
	BlendPlus
	BlendModulate
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
	BlendMultiply
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity

	numBlendModes
)

func (m BlendMode) String() string {
	if !m.valid() {
		return "Unknown"
	}
	return blend.Mode(m).String()
}

func (m BlendMode) valid() bool {
	return m >= BlendClear && m < numBlendModes
}

// mode translates the public enum to the engine's representation.
// Values are lock-step by contract; the factory boundary is the only
// place the translation happens.
func (m BlendMode) mode() blend.Mode {
	return blend.Mode(m)
}

// ParseBlendMode converts a case-insensitive mode name ("multiply",
// "srcover", ...) to a BlendMode.
func ParseBlendMode(s string) (BlendMode, error) {
	for m := BlendClear; m < numBlendModes; m++ {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("fx: unknown blend mode %q", s)
}
