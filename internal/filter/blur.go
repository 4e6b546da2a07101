package filter

import (
	"sync"

	"github.com/gogpu/fx/internal/imaging"
	"github.com/gogpu/fx/internal/parallel"
)

// scratchPool recycles the premultiplied float planes used between
// blur passes. Slices are grown on demand and reclaimed by the GC.
var scratchPool = sync.Pool{
	New: func() any {
		buf := make([]float32, 0, 4*64*1024)
		return &buf
	},
}

// Blur applies a two-pass separable Gaussian blur from src into dst.
// dst and src must have identical dimensions and must not alias.
// Samples past the image edge follow the edge mode; for
// imaging.EdgeDecal, outside samples contribute transparent black.
//
// The convolution runs on premultiplied alpha so transparent pixels do
// not bleed their color channels into neighbors. When pool is non-nil,
// rows are processed in parallel bands.
func Blur(dst, src *imaging.Buffer, sigmaX, sigmaY float64, edge imaging.Edge, pool *parallel.WorkerPool) {
	if dst.W != src.W || dst.H != src.H || src.IsEmpty() {
		return
	}
	if sigmaX <= 0 && sigmaY <= 0 {
		copy(dst.Pix, src.Pix)
		return
	}

	w, h := src.W, src.H
	n := w * h * 4

	frontPtr := scratchPool.Get().(*[]float32)
	backPtr := scratchPool.Get().(*[]float32)
	front := grow(*frontPtr, n)
	back := grow(*backPtr, n)

	premultiplyFloat(front, src.Pix)

	if sigmaX > 0 {
		kernel := GaussianKernel(sigmaX)
		forEachBand(h, pool, func(y0, y1 int) {
			convolveRows(back, front, w, kernel, edge, y0, y1)
		})
		front, back = back, front
	}
	if sigmaY > 0 {
		kernel := GaussianKernel(sigmaY)
		forEachBand(h, pool, func(y0, y1 int) {
			convolveCols(back, front, w, h, kernel, edge, y0, y1)
		})
		front, back = back, front
	}

	unpremultiplyFloat(dst.Pix, front)

	*frontPtr = front
	*backPtr = back
	scratchPool.Put(frontPtr)
	scratchPool.Put(backPtr)
}

// forEachBand runs fn over [0, h) split into row bands. Bands are
// disjoint, so fn may write its rows without synchronization.
func forEachBand(h int, pool *parallel.WorkerPool, fn func(y0, y1 int)) {
	if pool == nil || !pool.IsRunning() || pool.Workers() < 2 || h < 64 {
		fn(0, h)
		return
	}

	bands := parallel.SplitBands(h, pool.Workers()*2)
	work := make([]func(), len(bands))
	for i, b := range bands {
		b := b
		work[i] = func() { fn(b.Y0, b.Y1) }
	}
	pool.ExecuteAll(work)
}

// convolveRows convolves rows [y0, y1) horizontally with kernel.
func convolveRows(dst, src []float32, w int, kernel []float32, edge imaging.Edge, y0, y1 int) {
	radius := len(kernel) / 2
	for y := y0; y < y1; y++ {
		row := y * w * 4
		for x := 0; x < w; x++ {
			var r, g, b, a float32
			for k, weight := range kernel {
				sx, ok := imaging.ResolveIndex(x+k-radius, w, edge)
				if !ok {
					continue
				}
				idx := row + sx*4
				r += src[idx] * weight
				g += src[idx+1] * weight
				b += src[idx+2] * weight
				a += src[idx+3] * weight
			}
			idx := row + x*4
			dst[idx], dst[idx+1], dst[idx+2], dst[idx+3] = r, g, b, a
		}
	}
}

// convolveCols convolves output rows [y0, y1) vertically with kernel.
// Reads may touch any source row, writes stay within the band.
func convolveCols(dst, src []float32, w, h int, kernel []float32, edge imaging.Edge, y0, y1 int) {
	radius := len(kernel) / 2
	for y := y0; y < y1; y++ {
		for x := 0; x < w; x++ {
			var r, g, b, a float32
			for k, weight := range kernel {
				sy, ok := imaging.ResolveIndex(y+k-radius, h, edge)
				if !ok {
					continue
				}
				idx := (sy*w + x) * 4
				r += src[idx] * weight
				g += src[idx+1] * weight
				b += src[idx+2] * weight
				a += src[idx+3] * weight
			}
			idx := (y*w + x) * 4
			dst[idx], dst[idx+1], dst[idx+2], dst[idx+3] = r, g, b, a
		}
	}
}

func grow(buf []float32, n int) []float32 {
	if cap(buf) < n {
		return make([]float32, n)
	}
	return buf[:n]
}

// premultiplyFloat converts straight-alpha bytes into premultiplied
// float channels, keeping the 0..255 scale.
func premultiplyFloat(dst []float32, src []uint8) {
	for i := 0; i < len(src); i += 4 {
		a := float32(src[i+3])
		scale := a / 255
		dst[i] = float32(src[i]) * scale
		dst[i+1] = float32(src[i+1]) * scale
		dst[i+2] = float32(src[i+2]) * scale
		dst[i+3] = a
	}
}

// unpremultiplyFloat converts premultiplied float channels back to
// straight-alpha bytes. Fully transparent pixels collapse to zero.
func unpremultiplyFloat(dst []uint8, src []float32) {
	for i := 0; i < len(dst); i += 4 {
		a := src[i+3]
		if a < 0.5 {
			dst[i], dst[i+1], dst[i+2], dst[i+3] = 0, 0, 0, 0
			continue
		}
		inv := 255 / a
		dst[i] = clampUint8(src[i] * inv)
		dst[i+1] = clampUint8(src[i+1] * inv)
		dst[i+2] = clampUint8(src[i+2] * inv)
		dst[i+3] = clampUint8(a)
	}
}

func clampUint8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
