// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fx

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/fx/internal/blend"
	"github.com/gogpu/fx/internal/filter"
	"github.com/gogpu/fx/internal/imaging"
	"github.com/gogpu/fx/internal/parallel"
)

// Apply evaluates the effect graph rooted at effect against src and
// returns the filtered image as a fresh Pixmap. src is not modified.
// The output always has src's dimensions.
func (r *Registry) Apply(effect Handle, src *Pixmap) (*Pixmap, error) {
	if src == nil || src.width <= 0 || src.height <= 0 {
		return nil, ErrNilPixmap
	}

	r.mu.RLock()
	s, err := r.lookupLocked(effect, KindEffect)
	if err != nil {
		r.mu.RUnlock()
		return nil, err
	}
	root := s.node
	r.mu.RUnlock()

	// Nodes are immutable after registration and stay reachable through
	// the root pointer, so evaluation needs no lock. A concurrent
	// Release only touches reference counts.
	out := evalNode(root, src.buffer(), r.workerPool())
	Logger().Debug("fx: applied effect", "handle", uint64(effect), "width", src.width, "height", src.height)
	return pixmapFromBuffer(out), nil
}

// evalNode runs one graph node against src and returns a new buffer
// with the source's dimensions. A nil node is the identity and
// returns src itself.
func evalNode(n *node, src *imaging.Buffer, pool *parallel.WorkerPool) *imaging.Buffer {
	if n == nil {
		return src
	}
	switch n.op {
	case opOffset:
		return applyOffset(evalNode(n.input, src, pool), n.dx, n.dy)
	case opBlur:
		in := evalNode(n.input, src, pool)
		out := newBuffer(in.W, in.H)
		filter.Blur(out, in, n.sigmaX, n.sigmaY, n.edge, pool)
		return out
	case opImage:
		return applyImage(n.snapshot, n.srcRect, n.dstRect, src.W, src.H)
	case opColorFilter:
		in := evalNode(n.input, src, pool)
		out := newBuffer(in.W, in.H)
		applyColorFilter(n.filter, out, in, pool)
		return out
	case opBlend:
		bg := evalNode(n.input, src, pool)
		fg := evalNode(n.input2, src, pool)
		return applyBlend(bg, fg, n.mode, pool)
	case opCompose:
		// input is the outer effect, input2 the inner: inner runs
		// first and feeds the outer.
		return evalNode(n.input, evalNode(n.input2, src, pool), pool)
	}
	return src
}

// applyOffset translates src by (dx, dy) into a new buffer. Whole
// offsets copy rows directly; fractional ones resample bilinearly.
// Vacated pixels are transparent.
func applyOffset(src *imaging.Buffer, dx, dy float32) *imaging.Buffer {
	out := newBuffer(src.W, src.H)
	if dx <= float32(-src.W) || dx >= float32(src.W) ||
		dy <= float32(-src.H) || dy >= float32(src.H) {
		return out
	}
	if idx, idy := int(dx), int(dy); float32(idx) == dx && float32(idy) == dy {
		shiftCopy(out, src, idx, idy)
		return out
	}
	m := f64.Aff3{
		1, 0, float64(dx),
		0, 1, float64(dy),
	}
	sr := image.Rect(0, 0, src.W, src.H)
	draw.BiLinear.Transform(nrgbaView(out), m, nrgbaView(src), sr, draw.Src, nil)
	return out
}

// shiftCopy copies src into out displaced by whole pixels (dx, dy).
// The caller guarantees the displacement is smaller than the buffer.
func shiftCopy(out, src *imaging.Buffer, dx, dy int) {
	x0 := max(0, -dx)
	x1 := min(src.W, out.W-dx)
	if x0 >= x1 {
		return
	}
	for y := 0; y < src.H; y++ {
		oy := y + dy
		if oy < 0 || oy >= out.H {
			continue
		}
		si := (y*src.W + x0) * 4
		di := (oy*out.W + x0 + dx) * 4
		copy(out.Pix[di:di+(x1-x0)*4], src.Pix[si:si+(x1-x0)*4])
	}
}

// applyImage draws the snapshot's srcRect region scaled onto dstRect
// in a fresh canvas of the source image's dimensions. The bitmap
// content fully replaces the node's input; pixels outside dstRect
// stay transparent.
//
// Fractional srcRect coordinates round outward to whole pixels before
// sampling; the scale factors come from the rounded region.
func applyImage(snapshot *imaging.Buffer, srcRect, dstRect Rect, w, h int) *imaging.Buffer {
	out := newBuffer(w, h)

	sr := image.Rect(
		int(math.Floor(float64(srcRect.MinX))),
		int(math.Floor(float64(srcRect.MinY))),
		int(math.Ceil(float64(srcRect.MaxX))),
		int(math.Ceil(float64(srcRect.MaxY))),
	).Intersect(image.Rect(0, 0, snapshot.W, snapshot.H))
	if sr.Empty() {
		return out
	}

	sx := float64(dstRect.Width()) / float64(sr.Dx())
	sy := float64(dstRect.Height()) / float64(sr.Dy())
	m := f64.Aff3{
		sx, 0, float64(dstRect.MinX) - sx*float64(sr.Min.X),
		0, sy, float64(dstRect.MinY) - sy*float64(sr.Min.Y),
	}
	draw.BiLinear.Transform(nrgbaView(out), m, nrgbaView(snapshot), sr, draw.Src, nil)
	return out
}

// applyBlend composites fg (source operand) against bg (destination
// operand) with the given mode. The operands share dimensions because
// both derive from the same source image.
func applyBlend(bg, fg *imaging.Buffer, mode blend.Mode, pool *parallel.WorkerPool) *imaging.Buffer {
	out := newBuffer(bg.W, bg.H)
	fn := blend.Lookup(mode)
	rowBytes := bg.W * 4
	forRows(bg.H, pool, func(y0, y1 int) {
		for i := y0 * rowBytes; i < y1*rowBytes; i += 4 {
			sr, sg, sb, sa := imaging.Premultiply(fg.Pix[i], fg.Pix[i+1], fg.Pix[i+2], fg.Pix[i+3])
			dr, dg, db, da := imaging.Premultiply(bg.Pix[i], bg.Pix[i+1], bg.Pix[i+2], bg.Pix[i+3])
			pr, pg, pb, pa := fn(sr, sg, sb, sa, dr, dg, db, da)
			out.Pix[i], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = imaging.Unpremultiply(pr, pg, pb, pa)
		}
	})
	return out
}

// applyColorFilter writes src transformed by cf into dst. Composed
// filters recurse: the inner filter runs into a scratch buffer that
// feeds the outer one.
func applyColorFilter(cf *colorFilter, dst, src *imaging.Buffer, pool *parallel.WorkerPool) {
	switch {
	case cf.matrix != nil:
		cf.matrix.Apply(dst, src)
	case cf.isBlend:
		applyBlendColor(dst, src, cf.color, cf.mode, pool)
	default:
		tmp := newBuffer(src.W, src.H)
		applyColorFilter(cf.inner, tmp, src, pool)
		applyColorFilter(cf.outer, dst, tmp, pool)
	}
}

// applyBlendColor blends a constant straight-alpha color, as the
// source operand, against every src pixel as the destination.
func applyBlendColor(dst, src *imaging.Buffer, c [4]uint8, mode blend.Mode, pool *parallel.WorkerPool) {
	fn := blend.Lookup(mode)
	cr, cg, cb, ca := imaging.Premultiply(c[0], c[1], c[2], c[3])
	rowBytes := src.W * 4
	forRows(src.H, pool, func(y0, y1 int) {
		for i := y0 * rowBytes; i < y1*rowBytes; i += 4 {
			dr, dg, db, da := imaging.Premultiply(src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3])
			pr, pg, pb, pa := fn(cr, cg, cb, ca, dr, dg, db, da)
			dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = imaging.Unpremultiply(pr, pg, pb, pa)
		}
	})
}

// parallelMinRows is the image height below which banding costs more
// than it saves.
const parallelMinRows = 64

// forRows runs fn over the row range [0, h) split into bands, in
// parallel when the pool is live and the image is tall enough to pay
// for the fan-out.
func forRows(h int, pool *parallel.WorkerPool, fn func(y0, y1 int)) {
	if pool == nil || !pool.IsRunning() || pool.Workers() < 2 || h < parallelMinRows {
		fn(0, h)
		return
	}
	bands := parallel.SplitBands(h, pool.Workers())
	work := make([]func(), len(bands))
	for i, b := range bands {
		b := b
		work[i] = func() { fn(b.Y0, b.Y1) }
	}
	pool.ExecuteAll(work)
}

// newBuffer allocates a transparent buffer. Evaluation only sizes
// buffers from live inputs, so a dimension error here is a bug.
func newBuffer(w, h int) *imaging.Buffer {
	b, err := imaging.New(w, h)
	if err != nil {
		panic("fx: " + err.Error())
	}
	return b
}

// nrgbaView wraps a buffer's pixels as *image.NRGBA without copying.
func nrgbaView(b *imaging.Buffer) *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.W * 4,
		Rect:   image.Rect(0, 0, b.W, b.H),
	}
}
