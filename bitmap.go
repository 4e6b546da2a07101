package fx

import (
	"image"

	"github.com/gogpu/fx/internal/imaging"
)

// Bitmap is a mutable pixel resource registered with a Registry.
// Effects built from a bitmap snapshot its pixels at construction, so
// mutating the bitmap afterwards never changes existing effects.
//
// Bitmap accessors are not synchronized with concurrent registry use;
// mutate a bitmap from one goroutine at a time.
type Bitmap struct {
	buf *imaging.Buffer
}

// Width returns the bitmap's width in pixels.
func (b *Bitmap) Width() int { return b.buf.W }

// Height returns the bitmap's height in pixels.
func (b *Bitmap) Height() int { return b.buf.H }

// SetPixel sets the color of a single pixel.
func (b *Bitmap) SetPixel(x, y int, c RGBA) {
	r, g, bl, a := c.bytes()
	b.buf.SetRGBA(x, y, r, g, bl, a)
}

// GetPixel returns the color of a single pixel. Out-of-bounds reads
// return Transparent.
func (b *Bitmap) GetPixel(x, y int) RGBA {
	r, g, bl, a := b.buf.RGBA(x, y)
	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(bl) / 255,
		A: float64(a) / 255,
	}
}

// Fill sets every pixel to the given color.
func (b *Bitmap) Fill(c RGBA) {
	r, g, bl, a := c.bytes()
	b.buf.Fill(r, g, bl, a)
}

// NewBitmap registers an empty (transparent) bitmap of the given size.
func (r *Registry) NewBitmap(w, h int) (Handle, error) {
	const op = "NewBitmap"
	if w <= 0 {
		return 0, &ParamError{Op: op, Param: "w", Value: float64(w), Reason: "must be positive"}
	}
	if h <= 0 {
		return 0, &ParamError{Op: op, Param: "h", Value: float64(h), Reason: "must be positive"}
	}

	buf, err := imaging.New(w, h)
	if err != nil {
		return 0, &ParamError{Op: op, Param: "w*h", Value: float64(w) * float64(h), Reason: "invalid dimensions"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	handle, s := r.allocLocked(KindBitmap)
	s.bitmap = &Bitmap{buf: buf}

	Logger().Debug("fx: registered bitmap", "handle", uint64(handle), "w", w, "h", h)
	return handle, nil
}

// NewBitmapFromImage registers a bitmap holding a copy of img's pixels.
func (r *Registry) NewBitmapFromImage(img image.Image) (Handle, error) {
	const op = "NewBitmapFromImage"
	if img == nil {
		return 0, &ParamError{Op: op, Param: "img", Value: 0, Reason: "must not be nil"}
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return 0, &ParamError{Op: op, Param: "img", Value: 0, Reason: "has empty bounds"}
	}

	pm := FromImage(img)

	r.mu.Lock()
	defer r.mu.Unlock()

	handle, s := r.allocLocked(KindBitmap)
	s.bitmap = &Bitmap{buf: pm.buffer()}

	Logger().Debug("fx: registered bitmap", "handle", uint64(handle), "w", pm.width, "h", pm.height)
	return handle, nil
}

// BitmapAt returns the bitmap behind a live handle, for mutation or
// inspection.
func (r *Registry) BitmapAt(h Handle) (*Bitmap, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, err := r.lookupLocked(h, KindBitmap)
	if err != nil {
		return nil, err
	}
	return s.bitmap, nil
}
