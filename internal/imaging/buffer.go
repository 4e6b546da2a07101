// Package imaging provides the pixel buffer and boundary sampling rules
// shared by the effect evaluation engine.
//
// Buffers hold straight (non-premultiplied) RGBA8 data. Compositing code
// premultiplies on the way in and unpremultiplies on the way out; the
// Premultiply/Unpremultiply helpers here keep those conversions in one place.
package imaging

import "errors"

// Common errors for buffer operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("imaging: invalid dimensions")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("imaging: data buffer too small")
)

// Buffer is a rectangular straight-alpha RGBA8 pixel buffer.
//
// Pixels are stored row-major, 4 bytes per pixel, with no row padding.
// The zero value is an empty buffer.
//
// Thread safety: Buffer is safe for concurrent reads. Writes require
// external synchronization.
type Buffer struct {
	W   int
	H   int
	Pix []uint8
}

// New creates a buffer of the given dimensions filled with transparent black.
func New(w, h int) (*Buffer, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Buffer{W: w, H: h, Pix: make([]uint8, w*h*4)}, nil
}

// Wrap creates a buffer view over existing pixel data without copying.
// The caller keeps ownership of pix; mutations are visible both ways.
func Wrap(pix []uint8, w, h int) (*Buffer, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(pix) < w*h*4 {
		return nil, ErrDataTooSmall
	}
	return &Buffer{W: w, H: h, Pix: pix[: w*h*4 : w*h*4]}, nil
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{W: b.W, H: b.H, Pix: pix}
}

// PixOffset returns the byte offset of pixel (x, y), or -1 when out of bounds.
func (b *Buffer) PixOffset(x, y int) int {
	if x < 0 || x >= b.W || y < 0 || y >= b.H {
		return -1
	}
	return (y*b.W + x) * 4
}

// RGBA returns the straight-alpha color at (x, y).
// Out-of-bounds reads return transparent black.
func (b *Buffer) RGBA(x, y int) (r, g, bl, a uint8) {
	i := b.PixOffset(x, y)
	if i < 0 {
		return 0, 0, 0, 0
	}
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

// SetRGBA writes the straight-alpha color at (x, y).
// Out-of-bounds writes are ignored.
func (b *Buffer) SetRGBA(x, y int, r, g, bl, a uint8) {
	i := b.PixOffset(x, y)
	if i < 0 {
		return
	}
	b.Pix[i] = r
	b.Pix[i+1] = g
	b.Pix[i+2] = bl
	b.Pix[i+3] = a
}

// Clear sets every pixel to transparent black.
func (b *Buffer) Clear() {
	clear(b.Pix)
}

// Fill sets every pixel to the given straight-alpha color.
func (b *Buffer) Fill(r, g, bl, a uint8) {
	for i := 0; i < len(b.Pix); i += 4 {
		b.Pix[i] = r
		b.Pix[i+1] = g
		b.Pix[i+2] = bl
		b.Pix[i+3] = a
	}
}

// IsEmpty reports whether the buffer has zero area.
func (b *Buffer) IsEmpty() bool {
	return b == nil || b.W <= 0 || b.H <= 0
}
