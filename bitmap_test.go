package fx

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNewBitmap_RejectsBadDimensions(t *testing.T) {
	r := New()
	for _, d := range []struct{ w, h int }{{0, 4}, {4, 0}, {-1, 4}, {4, -7}} {
		_, err := r.NewBitmap(d.w, d.h)
		var pe *ParamError
		if !errors.As(err, &pe) {
			t.Errorf("NewBitmap(%d, %d) = %v, want ParamError", d.w, d.h, err)
		}
	}
	if got := r.Count(); got != 0 {
		t.Errorf("Count() = %d, want 0", got)
	}
}

func TestBitmap_PixelRoundTrip(t *testing.T) {
	r := New()
	h, err := r.NewBitmap(8, 8)
	if err != nil {
		t.Fatalf("NewBitmap: %v", err)
	}
	bm, err := r.BitmapAt(h)
	if err != nil {
		t.Fatalf("BitmapAt: %v", err)
	}
	if bm.Width() != 8 || bm.Height() != 8 {
		t.Fatalf("bitmap = %dx%d, want 8x8", bm.Width(), bm.Height())
	}

	want := byteColor(200, 100, 50, 255)
	bm.SetPixel(3, 5, want)
	if got := bm.GetPixel(3, 5); got != want {
		t.Errorf("GetPixel(3,5) = %v, want %v", got, want)
	}
	// A fresh bitmap is transparent elsewhere.
	if got := bm.GetPixel(0, 0); got != Transparent {
		t.Errorf("GetPixel(0,0) = %v, want transparent", got)
	}
}

func TestBitmap_Fill(t *testing.T) {
	r := New()
	h, _ := r.NewBitmap(4, 4)
	bm, _ := r.BitmapAt(h)

	bm.Fill(Cyan)
	for _, p := range []struct{ x, y int }{{0, 0}, {3, 3}, {1, 2}} {
		if got := bm.GetPixel(p.x, p.y); got != Cyan {
			t.Errorf("GetPixel(%d,%d) = %v, want cyan", p.x, p.y, got)
		}
	}
}

func TestNewBitmapFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(2, 1, color.NRGBA{G: 128, B: 64, A: 255})

	r := New()
	h, err := r.NewBitmapFromImage(img)
	if err != nil {
		t.Fatalf("NewBitmapFromImage: %v", err)
	}
	bm, err := r.BitmapAt(h)
	if err != nil {
		t.Fatalf("BitmapAt: %v", err)
	}
	if bm.Width() != 3 || bm.Height() != 2 {
		t.Fatalf("bitmap = %dx%d, want 3x2", bm.Width(), bm.Height())
	}
	if got := bm.GetPixel(0, 0); got != byteColor(255, 0, 0, 255) {
		t.Errorf("GetPixel(0,0) = %v, want red", got)
	}
	if got := bm.GetPixel(2, 1); got != byteColor(0, 128, 64, 255) {
		t.Errorf("GetPixel(2,1) = %v, want (0,128,64,255)", got)
	}
}

// TestNewBitmapFromImage_ConvertsModels feeds a non-NRGBA image
// through the conversion path.
func TestNewBitmapFromImage_ConvertsModels(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.SetGray(1, 1, color.Gray{Y: 200})

	r := New()
	h, err := r.NewBitmapFromImage(img)
	if err != nil {
		t.Fatalf("NewBitmapFromImage: %v", err)
	}
	bm, _ := r.BitmapAt(h)
	if got := bm.GetPixel(1, 1); got != byteColor(200, 200, 200, 255) {
		t.Errorf("GetPixel(1,1) = %v, want opaque gray 200", got)
	}
}

func TestNewBitmapFromImage_RejectsNilAndEmpty(t *testing.T) {
	r := New()

	var pe *ParamError
	if _, err := r.NewBitmapFromImage(nil); !errors.As(err, &pe) {
		t.Errorf("NewBitmapFromImage(nil) = %v, want ParamError", err)
	}
	if _, err := r.NewBitmapFromImage(image.NewNRGBA(image.Rectangle{})); !errors.As(err, &pe) {
		t.Errorf("NewBitmapFromImage(empty) = %v, want ParamError", err)
	}
}

func TestBitmapAt_ChecksKind(t *testing.T) {
	r := New()
	eff, _ := r.NewOffsetEffect(0, 0, 0)

	_, err := r.BitmapAt(eff)
	var ke *KindError
	if !errors.As(err, &ke) {
		t.Fatalf("BitmapAt(effect) = %v, want KindError", err)
	}
	if ke.Want != KindBitmap || ke.Got != KindEffect {
		t.Errorf("KindError = want %v got %v; want bitmap/effect", ke.Want, ke.Got)
	}
}

func TestBitmap_ReleaseAfterEffectCreation(t *testing.T) {
	r := New()
	bmH, _ := r.NewBitmap(4, 4)
	bm, _ := r.BitmapAt(bmH)
	bm.Fill(Green)

	full := RectWH(0, 0, 4, 4)
	eff, err := r.NewBitmapEffect(bmH, full, full)
	if err != nil {
		t.Fatalf("NewBitmapEffect: %v", err)
	}

	// The effect owns a snapshot; the bitmap handle can go away.
	if err := r.Release(bmH); err != nil {
		t.Fatalf("Release(bitmap): %v", err)
	}
	out, err := r.Apply(eff, NewPixmap(4, 4))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := out.GetPixel(2, 2); got != Green {
		t.Errorf("out(2,2) = %v, want green", got)
	}
}
