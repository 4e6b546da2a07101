// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fx

import (
	"math"

	"github.com/gogpu/fx/internal/blend"
	"github.com/gogpu/fx/internal/filter"
	"github.com/gogpu/fx/internal/imaging"
)

// opKind tags the operation a node performs.
type opKind uint8

const (
	opOffset opKind = iota
	opBlur
	opImage
	opColorFilter
	opBlend
	opCompose
)

func (o opKind) String() string {
	switch o {
	case opOffset:
		return "offset"
	case opBlur:
		return "blur"
	case opImage:
		return "image"
	case opColorFilter:
		return "colorFilter"
	case opBlend:
		return "blend"
	case opCompose:
		return "compose"
	}
	return "unknown"
}

// node is one filter-graph vertex. Nodes are immutable after
// construction except for refs, which the registry lock guards.
//
// refs counts the owning handle (while live) plus one per parent node
// referencing this node as an input. Enum and radius parameters are
// translated to engine form exactly once, here at construction.
type node struct {
	op   opKind
	refs int32

	dx, dy         float32 // offset
	sigmaX, sigmaY float64 // blur, converted from radii up front
	edge           imaging.Edge

	snapshot *imaging.Buffer // image: pixels copied at construction
	srcRect  Rect
	dstRect  Rect

	filter *colorFilter
	mode   blend.Mode

	// input is the unary input (offset, blur, color filter); blend
	// uses input=background, input2=foreground; compose uses
	// input=outer, input2=inner. nil means "the source image".
	input  *node
	input2 *node
}

// checkFinite rejects NaN and infinite parameters.
func checkFinite(op, param string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ParamError{Op: op, Param: param, Value: v, Reason: "must be finite"}
	}
	return nil
}

// checkRect rejects rects with non-finite coordinates or no area.
func checkRect(op, param string, rect Rect) error {
	for _, c := range [...]struct {
		name  string
		value float32
	}{
		{".MinX", rect.MinX}, {".MinY", rect.MinY},
		{".MaxX", rect.MaxX}, {".MaxY", rect.MaxY},
	} {
		if err := checkFinite(op, param+c.name, float64(c.value)); err != nil {
			return err
		}
	}
	if rect.Empty() {
		return ErrEmptyRect
	}
	return nil
}

// inputNodeLocked resolves an optional effect input, acquiring a
// reference on its node. A zero handle means "absent" and resolves to
// nil. Caller must hold r.mu for writing.
func (r *Registry) inputNodeLocked(h Handle) (*node, error) {
	if h == 0 {
		return nil, nil
	}
	return r.requiredNodeLocked(h)
}

// requiredNodeLocked resolves a mandatory effect input, acquiring a
// reference on its node. Caller must hold r.mu for writing.
func (r *Registry) requiredNodeLocked(h Handle) (*node, error) {
	s, err := r.lookupLocked(h, KindEffect)
	if err != nil {
		return nil, err
	}
	n := s.node
	n.refs++
	return n, nil
}

// registerNodeLocked places a fresh node (refs already 1) into a new
// slot. Caller must hold r.mu for writing.
func (r *Registry) registerNodeLocked(n *node) Handle {
	h, s := r.allocLocked(KindEffect)
	s.node = n
	Logger().Debug("fx: registered effect", "handle", uint64(h), "op", n.op.String())
	return h
}

// NewOffsetEffect creates an effect that translates its input by
// (dx, dy) pixels. Fractional offsets resample bilinearly; pixels
// shifted in from outside the source are transparent. A zero input
// handle means the effect applies to the source image directly.
func (r *Registry) NewOffsetEffect(dx, dy float32, input Handle) (Handle, error) {
	const op = "NewOffsetEffect"
	if err := checkFinite(op, "dx", float64(dx)); err != nil {
		return 0, err
	}
	if err := checkFinite(op, "dy", float64(dy)); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	in, err := r.inputNodeLocked(input)
	if err != nil {
		return 0, err
	}
	return r.registerNodeLocked(&node{op: opOffset, refs: 1, dx: dx, dy: dy, input: in}), nil
}

// NewBlurEffect creates a Gaussian blur effect. The radii convert to
// sigmas by the fixed mapping sigma = 0.57735*radius + 0.5 for
// positive radii and 0 otherwise; the conversion happens here, once,
// so equal radii always produce identical blurs. edge selects how
// pixels past the input's boundary are read. A zero input handle
// means the effect applies to the source image directly.
func (r *Registry) NewBlurEffect(radiusX, radiusY float32, input Handle, edge EdgeMode) (Handle, error) {
	const op = "NewBlurEffect"
	if err := checkFinite(op, "radiusX", float64(radiusX)); err != nil {
		return 0, err
	}
	if err := checkFinite(op, "radiusY", float64(radiusY)); err != nil {
		return 0, err
	}
	if !edge.valid() {
		return 0, &EnumError{Name: "EdgeMode", Value: int(edge), Max: int(numEdgeModes) - 1}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	in, err := r.inputNodeLocked(input)
	if err != nil {
		return 0, err
	}
	n := &node{
		op:     opBlur,
		refs:   1,
		sigmaX: filter.RadiusToSigma(float64(radiusX)),
		sigmaY: filter.RadiusToSigma(float64(radiusY)),
		edge:   edge.edge(),
		input:  in,
	}
	return r.registerNodeLocked(n), nil
}

// NewBitmapEffect creates an effect that draws the bitmap's src
// rectangle scaled onto the dst rectangle, bilinearly filtered. The
// bitmap's pixels are snapshotted now: mutating the bitmap afterwards
// does not change this effect. The effect replaces its source
// entirely; pixels outside dst are transparent.
func (r *Registry) NewBitmapEffect(bitmap Handle, src, dst Rect) (Handle, error) {
	const op = "NewBitmapEffect"
	if err := checkRect(op, "src", src); err != nil {
		return 0, err
	}
	if err := checkRect(op, "dst", dst); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.lookupLocked(bitmap, KindBitmap)
	if err != nil {
		return 0, err
	}
	snapshot := s.bitmap.buf.Clone()

	n := &node{op: opImage, refs: 1, snapshot: snapshot, srcRect: src, dstRect: dst}
	return r.registerNodeLocked(n), nil
}

// NewColorFilterEffect creates an effect that runs its input through
// a registered color filter. A zero input handle means the filter
// applies to the source image directly.
func (r *Registry) NewColorFilterEffect(colorFilter, input Handle) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sf, err := r.lookupLocked(colorFilter, KindColorFilter)
	if err != nil {
		return 0, err
	}
	cf := sf.filter

	in, err := r.inputNodeLocked(input)
	if err != nil {
		return 0, err
	}
	return r.registerNodeLocked(&node{op: opColorFilter, refs: 1, filter: cf, input: in}), nil
}

// NewBlendEffect creates an effect that composites the foreground
// effect's output over the background effect's output with the given
// blend mode. The operand order is significant for every
// non-commutative mode. Both handles are mandatory.
func (r *Registry) NewBlendEffect(bg, fg Handle, mode BlendMode) (Handle, error) {
	if !mode.valid() {
		return 0, &EnumError{Name: "BlendMode", Value: int(mode), Max: int(numBlendModes) - 1}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	bgNode, err := r.requiredNodeLocked(bg)
	if err != nil {
		return 0, err
	}
	fgNode, err := r.requiredNodeLocked(fg)
	if err != nil {
		bgNode.refs-- // roll back: nothing registers on failure
		return 0, err
	}

	n := &node{op: opBlend, refs: 1, mode: mode.mode(), input: bgNode, input2: fgNode}
	return r.registerNodeLocked(n), nil
}

// NewChainEffect creates the composition outer∘inner: evaluating the
// chain applies inner's effect first and outer's last. Both handles
// are mandatory.
func (r *Registry) NewChainEffect(outer, inner Handle) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	outerNode, err := r.requiredNodeLocked(outer)
	if err != nil {
		return 0, err
	}
	innerNode, err := r.requiredNodeLocked(inner)
	if err != nil {
		outerNode.refs-- // roll back: nothing registers on failure
		return 0, err
	}

	n := &node{op: opCompose, refs: 1, input: outerNode, input2: innerNode}
	return r.registerNodeLocked(n), nil
}
