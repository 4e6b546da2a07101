package filter

import (
	"bytes"
	"testing"

	"github.com/gogpu/fx/internal/imaging"
	"github.com/gogpu/fx/internal/parallel"
)

func newBuffer(tb testing.TB, w, h int) *imaging.Buffer {
	tb.Helper()
	buf, err := imaging.New(w, h)
	if err != nil {
		tb.Fatalf("New(%d, %d): %v", w, h, err)
	}
	return buf
}

func TestBlurZeroSigmaCopies(t *testing.T) {
	src := newBuffer(t, 8, 8)
	dst := newBuffer(t, 8, 8)
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 7)
	}

	Blur(dst, src, 0, 0, imaging.EdgeClamp, nil)

	if !bytes.Equal(dst.Pix, src.Pix) {
		t.Error("zero-sigma blur should copy src into dst unchanged")
	}
}

func TestBlurSolidStaysSolid(t *testing.T) {
	src := newBuffer(t, 32, 32)
	dst := newBuffer(t, 32, 32)
	src.Fill(180, 90, 30, 255)

	Blur(dst, src, 3, 3, imaging.EdgeClamp, nil)

	want := [4]uint8{180, 90, 30, 255}
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			r, g, b, a := dst.RGBA(x, y)
			got := [4]uint8{r, g, b, a}
			for c := 0; c < 3; c++ {
				if absInt(int(got[c])-int(want[c])) > 1 {
					t.Fatalf("pixel (%d,%d) channel %d = %d, want %d +-1", x, y, c, got[c], want[c])
				}
			}
			if a != 255 {
				t.Fatalf("pixel (%d,%d) alpha = %d, want 255", x, y, a)
			}
		}
	}
}

func TestBlurImpulseStaysWhite(t *testing.T) {
	// An opaque white pixel on a transparent background must spread as
	// white with falling alpha. A straight-alpha convolution would
	// wrongly darken the halo toward the background's black.
	src := newBuffer(t, 64, 64)
	dst := newBuffer(t, 64, 64)
	src.SetRGBA(32, 32, 255, 255, 255, 255)

	Blur(dst, src, 2, 2, imaging.EdgeClamp, nil)

	_, _, _, centerA := dst.RGBA(32, 32)
	if centerA < 5 || centerA > 20 {
		t.Errorf("center alpha = %d, want a spread-out peak in [5, 20]", centerA)
	}

	for _, p := range [][2]int{{32, 32}, {33, 32}, {32, 33}, {31, 31}} {
		r, g, b, a := dst.RGBA(p[0], p[1])
		if a == 0 {
			t.Fatalf("pixel %v fully transparent, want part of the halo", p)
		}
		if r != 255 || g != 255 || b != 255 {
			t.Errorf("pixel %v = (%d,%d,%d), want pure white", p, r, g, b)
		}
	}

	// Symmetry around the impulse.
	_, _, _, left := dst.RGBA(30, 32)
	_, _, _, right := dst.RGBA(34, 32)
	_, _, _, up := dst.RGBA(32, 30)
	_, _, _, down := dst.RGBA(32, 34)
	if left != right || up != down || left != up {
		t.Errorf("halo not symmetric: left=%d right=%d up=%d down=%d", left, right, up, down)
	}

	// Beyond the kernel radius nothing changes.
	if _, _, _, a := dst.RGBA(0, 0); a != 0 {
		t.Errorf("far corner alpha = %d, want 0", a)
	}
}

func TestBlurHorizontalOnly(t *testing.T) {
	src := newBuffer(t, 32, 32)
	dst := newBuffer(t, 32, 32)
	src.SetRGBA(16, 16, 255, 255, 255, 255)

	Blur(dst, src, 1.5, 0, imaging.EdgeClamp, nil)

	if _, _, _, a := dst.RGBA(17, 16); a == 0 {
		t.Error("horizontal neighbor not blurred")
	}
	if _, _, _, a := dst.RGBA(16, 17); a != 0 {
		t.Errorf("vertical neighbor alpha = %d, want 0 for sigmaY=0", a)
	}
}

func TestBlurVerticalOnly(t *testing.T) {
	src := newBuffer(t, 32, 32)
	dst := newBuffer(t, 32, 32)
	src.SetRGBA(16, 16, 255, 255, 255, 255)

	Blur(dst, src, 0, 1.5, imaging.EdgeClamp, nil)

	if _, _, _, a := dst.RGBA(16, 17); a == 0 {
		t.Error("vertical neighbor not blurred")
	}
	if _, _, _, a := dst.RGBA(17, 16); a != 0 {
		t.Errorf("horizontal neighbor alpha = %d, want 0 for sigmaX=0", a)
	}
}

func TestBlurDecalFadesEdges(t *testing.T) {
	src := newBuffer(t, 40, 40)
	dst := newBuffer(t, 40, 40)
	src.Fill(255, 255, 255, 255)

	Blur(dst, src, 2, 2, imaging.EdgeDecal, nil)

	_, _, _, corner := dst.RGBA(0, 0)
	_, _, _, center := dst.RGBA(20, 20)
	if corner >= center {
		t.Errorf("corner alpha %d >= center alpha %d, want decal fade", corner, center)
	}
	if center != 255 {
		t.Errorf("center alpha = %d, want 255", center)
	}

	// The faded edge keeps the source color.
	if r, g, b, _ := dst.RGBA(0, 0); r != 255 || g != 255 || b != 255 {
		t.Errorf("corner = (%d,%d,%d), want white", r, g, b)
	}
}

func TestBlurClampKeepsEdgesOpaque(t *testing.T) {
	src := newBuffer(t, 40, 40)
	dst := newBuffer(t, 40, 40)
	src.Fill(255, 255, 255, 255)

	Blur(dst, src, 2, 2, imaging.EdgeClamp, nil)

	for _, p := range [][2]int{{0, 0}, {39, 0}, {0, 39}, {39, 39}, {20, 0}} {
		if _, _, _, a := dst.RGBA(p[0], p[1]); a != 255 {
			t.Errorf("pixel %v alpha = %d, want 255 under clamp", p, a)
		}
	}
}

func TestBlurRepeatPullsOppositeEdge(t *testing.T) {
	// Left half opaque red, right half transparent. Under repeat the
	// left edge samples the transparent right edge, so its alpha drops
	// below the clamped result.
	base := newBuffer(t, 16, 16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 8; x++ {
			base.SetRGBA(x, y, 255, 0, 0, 255)
		}
	}

	clamped := newBuffer(t, 16, 16)
	repeated := newBuffer(t, 16, 16)
	Blur(clamped, base, 2, 0, imaging.EdgeClamp, nil)
	Blur(repeated, base, 2, 0, imaging.EdgeRepeat, nil)

	_, _, _, clampA := clamped.RGBA(0, 8)
	_, _, _, repeatA := repeated.RGBA(0, 8)
	if repeatA >= clampA {
		t.Errorf("repeat edge alpha = %d, clamp edge alpha = %d, want repeat < clamp", repeatA, clampA)
	}
}

func TestBlurParallelMatchesSerial(t *testing.T) {
	src := newBuffer(t, 80, 96)
	for y := 0; y < 96; y++ {
		for x := 0; x < 80; x++ {
			src.SetRGBA(x, y, uint8(x*3), uint8(y*2), uint8(x+y), uint8(255-x))
		}
	}

	serial := newBuffer(t, 80, 96)
	Blur(serial, src, 2.5, 1.5, imaging.EdgeMirror, nil)

	pool := parallel.NewWorkerPool(4)
	defer pool.Close()

	banded := newBuffer(t, 80, 96)
	Blur(banded, src, 2.5, 1.5, imaging.EdgeMirror, pool)

	if !bytes.Equal(serial.Pix, banded.Pix) {
		t.Error("parallel blur differs from serial blur")
	}
}

func TestBlurDimensionMismatch(t *testing.T) {
	src := newBuffer(t, 8, 8)
	dst := newBuffer(t, 4, 4)
	src.Fill(10, 20, 30, 255)

	Blur(dst, src, 2, 2, imaging.EdgeClamp, nil)

	for _, b := range dst.Pix {
		if b != 0 {
			t.Fatal("mismatched dimensions must leave dst untouched")
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func BenchmarkBlur(b *testing.B) {
	src := newBuffer(b, 256, 256)
	dst := newBuffer(b, 256, 256)
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 31)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Blur(dst, src, 4, 4, imaging.EdgeClamp, nil)
	}
}
