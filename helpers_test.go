package fx

import "math"

// createTestPixmap builds an opaque pixmap whose pixels encode their
// own coordinates (R=x, G=y), so any spatial rearrangement by an
// effect is detectable.
func createTestPixmap(w, h int) *Pixmap {
	p := NewPixmap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p.SetPixel(x, y, RGBA{
				R: float64(x%256) / 255,
				G: float64(y%256) / 255,
				B: 0.25,
				A: 1,
			})
		}
	}
	return p
}

// solidPixmap returns a w×h pixmap filled with c.
func solidPixmap(w, h int, c RGBA) *Pixmap {
	p := NewPixmap(w, h)
	p.Clear(c)
	return p
}

// grayPixmap returns an opaque pixmap with byte value v on every
// color channel.
func grayPixmap(w, h int, v uint8) *Pixmap {
	f := float64(v) / 255
	return solidPixmap(w, h, RGBA{R: f, G: f, B: f, A: 1})
}

// byteColor converts straight-alpha bytes to the float color type.
func byteColor(r, g, b, a uint8) RGBA {
	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}
}

// colorApproxEqual reports whether a and b match within tol on every
// component.
func colorApproxEqual(a, b RGBA, tol float64) bool {
	return math.Abs(a.R-b.R) <= tol &&
		math.Abs(a.G-b.G) <= tol &&
		math.Abs(a.B-b.B) <= tol &&
		math.Abs(a.A-b.A) <= tol
}
