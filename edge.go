package fx

import (
	"fmt"
	"strings"

	"github.com/gogpu/fx/internal/imaging"
)

// EdgeMode selects how a blur reads pixels past the input's edge.
//
// The enum is closed and its numeric values are a compatibility
// contract with callers that persist them; they must not be reordered.
type EdgeMode int

const (
	// EdgeClamp extends the edge pixels outward.
	EdgeClamp EdgeMode = iota
	// EdgeRepeat tiles the image.
	EdgeRepeat
	// EdgeMirror reflects the image at the edge.
	EdgeMirror
	// EdgeDecal reads outside the image as transparent black.
	EdgeDecal

	numEdgeModes
)

func (m EdgeMode) String() string {
	switch m {
	case EdgeClamp:
		return "Clamp"
	case EdgeRepeat:
		return "Repeat"
	case EdgeMirror:
		return "Mirror"
	case EdgeDecal:
		return "Decal"
	}
	return "Unknown"
}

func (m EdgeMode) valid() bool {
	return m >= EdgeClamp && m < numEdgeModes
}

// edge translates the public enum to the engine's representation.
// Values are lock-step by contract; the factory boundary is the only
// place the translation happens.
func (m EdgeMode) edge() imaging.Edge {
	return imaging.Edge(m)
}

// ParseEdgeMode converts a case-insensitive mode name ("clamp",
// "repeat", "mirror", "decal") to an EdgeMode.
func ParseEdgeMode(s string) (EdgeMode, error) {
	for m := EdgeClamp; m < numEdgeModes; m++ {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("fx: unknown edge mode %q", s)
}
