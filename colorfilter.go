package fx

import (
	"fmt"

	"github.com/gogpu/fx/internal/blend"
	"github.com/gogpu/fx/internal/filter"
)

// colorFilter is the registered form of a color transform. Exactly one
// of the three variants is populated: a 4x5 matrix, a constant
// color/blend-mode pair, or a composition of two filters. Filters are
// immutable once registered, so effect nodes reference them directly.
type colorFilter struct {
	matrix *filter.Matrix

	isBlend bool
	color   [4]uint8
	mode    blend.Mode

	outer, inner *colorFilter
}

// NewMatrixColorFilter registers a color filter that transforms pixels
// through the given 4x5 matrix.
func (r *Registry) NewMatrixColorFilter(m ColorMatrix) (Handle, error) {
	const op = "NewMatrixColorFilter"
	for i, v := range m {
		if err := checkFinite(op, fmt.Sprintf("m[%d]", i), float64(v)); err != nil {
			return 0, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	fm := filter.Matrix(m)
	h, s := r.allocLocked(KindColorFilter)
	s.filter = &colorFilter{matrix: &fm}

	Logger().Debug("fx: registered color filter", "handle", uint64(h), "form", "matrix")
	return h, nil
}

// NewBlendColorFilter registers a color filter that blends the
// constant color c (as the source operand) against each input pixel
// (as the destination operand) with the given mode.
func (r *Registry) NewBlendColorFilter(c RGBA, mode BlendMode) (Handle, error) {
	const op = "NewBlendColorFilter"
	if !mode.valid() {
		return 0, &EnumError{Name: "BlendMode", Value: int(mode), Max: int(numBlendModes) - 1}
	}
	for _, p := range [...]struct {
		name  string
		value float64
	}{{"c.R", c.R}, {"c.G", c.G}, {"c.B", c.B}, {"c.A", c.A}} {
		if err := checkFinite(op, p.name, p.value); err != nil {
			return 0, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cr, cg, cb, ca := c.bytes()
	h, s := r.allocLocked(KindColorFilter)
	s.filter = &colorFilter{isBlend: true, color: [4]uint8{cr, cg, cb, ca}, mode: mode.mode()}

	Logger().Debug("fx: registered color filter", "handle", uint64(h), "form", "blend", "mode", mode.String())
	return h, nil
}

// NewComposeColorFilter registers the composition outer after inner:
// the result transforms pixels through inner first, then outer.
func (r *Registry) NewComposeColorFilter(outer, inner Handle) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	so, err := r.lookupLocked(outer, KindColorFilter)
	if err != nil {
		return 0, err
	}
	si, err := r.lookupLocked(inner, KindColorFilter)
	if err != nil {
		return 0, err
	}
	// Capture payloads first: allocLocked may grow the arena and move
	// the slots the lookups returned.
	outerF, innerF := so.filter, si.filter

	h, s := r.allocLocked(KindColorFilter)
	s.filter = &colorFilter{outer: outerF, inner: innerF}

	Logger().Debug("fx: registered color filter", "handle", uint64(h), "form", "compose")
	return h, nil
}
