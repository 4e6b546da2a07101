package fx

import (
	"errors"
	"math"
	"testing"
)

func TestNewMatrixColorFilter(t *testing.T) {
	r := New()
	h, err := r.NewMatrixColorFilter(GrayscaleMatrix())
	if err != nil {
		t.Fatalf("NewMatrixColorFilter: %v", err)
	}
	if h == 0 {
		t.Fatal("returned the zero handle")
	}
	if k, _ := r.Kind(h); k != KindColorFilter {
		t.Errorf("Kind = %v, want KindColorFilter", k)
	}
}

func TestNewMatrixColorFilter_RejectsNonFinite(t *testing.T) {
	r := New()
	m := IdentityMatrix()
	m[7] = float32(math.NaN())

	_, err := r.NewMatrixColorFilter(m)
	var pe *ParamError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want ParamError", err)
	}
	if pe.Param != "m[7]" {
		t.Errorf("ParamError.Param = %q, want %q", pe.Param, "m[7]")
	}
}

func TestNewBlendColorFilter_RejectsUnknownMode(t *testing.T) {
	r := New()
	_, err := r.NewBlendColorFilter(Red, BlendMode(77))
	var ee *EnumError
	if !errors.As(err, &ee) {
		t.Fatalf("error = %v, want EnumError", err)
	}
	if ee.Name != "BlendMode" || ee.Value != 77 {
		t.Errorf("EnumError = %s %d, want BlendMode 77", ee.Name, ee.Value)
	}
}

func TestNewBlendColorFilter_RejectsNonFiniteColor(t *testing.T) {
	r := New()
	c := Red
	c.G = math.Inf(1)

	_, err := r.NewBlendColorFilter(c, BlendSrcOver)
	var pe *ParamError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want ParamError", err)
	}
	if pe.Param != "c.G" {
		t.Errorf("ParamError.Param = %q, want %q", pe.Param, "c.G")
	}
}

func TestNewComposeColorFilter_Validation(t *testing.T) {
	r := New()
	cf, err := r.NewMatrixColorFilter(SepiaMatrix())
	if err != nil {
		t.Fatalf("NewMatrixColorFilter: %v", err)
	}
	eff, _ := r.NewOffsetEffect(0, 0, 0)

	if _, err := r.NewComposeColorFilter(0, cf); !errors.Is(err, ErrNilHandle) {
		t.Errorf("NewComposeColorFilter(0, cf) = %v, want ErrNilHandle", err)
	}
	if _, err := r.NewComposeColorFilter(cf, 0); !errors.Is(err, ErrNilHandle) {
		t.Errorf("NewComposeColorFilter(cf, 0) = %v, want ErrNilHandle", err)
	}

	var ke *KindError
	if _, err := r.NewComposeColorFilter(eff, cf); !errors.As(err, &ke) {
		t.Errorf("NewComposeColorFilter(effect, cf) = %v, want KindError", err)
	}
}

// TestColorFilter_SurvivesOwnRelease verifies effects keep working
// after the color filter handle that built them is released.
func TestColorFilter_SurvivesOwnRelease(t *testing.T) {
	r := New()
	cf, err := r.NewMatrixColorFilter(InvertMatrix())
	if err != nil {
		t.Fatalf("NewMatrixColorFilter: %v", err)
	}
	eff, err := r.NewColorFilterEffect(cf, 0)
	if err != nil {
		t.Fatalf("NewColorFilterEffect: %v", err)
	}
	if err := r.Release(cf); err != nil {
		t.Fatalf("Release(cf): %v", err)
	}

	out, err := r.Apply(eff, grayPixmap(4, 4, 100))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got, want := out.GetPixel(2, 2), byteColor(155, 155, 155, 255); got != want {
		t.Errorf("out = %v, want %v", got, want)
	}
}

func TestColorMatrix_ConcatOrder(t *testing.T) {
	// Concat applies the receiver after the argument: inverting then
	// doubling differs from doubling then inverting.
	afterBright := InvertMatrix().Concat(BrightnessMatrix(2))
	afterInvert := BrightnessMatrix(2).Concat(InvertMatrix())

	r := New()
	src := grayPixmap(4, 4, 100)

	e1 := matrixEffect(t, r, afterBright, 0)
	out1, err := r.Apply(e1, src)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	// 100 → 200 → 55.
	if got, want := out1.GetPixel(1, 1), byteColor(55, 55, 55, 255); got != want {
		t.Errorf("invert∘brighten = %v, want %v", got, want)
	}

	e2 := matrixEffect(t, r, afterInvert, 0)
	out2, err := r.Apply(e2, src)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	// 100 → 155 → 255 (clamped).
	if got, want := out2.GetPixel(1, 1), byteColor(255, 255, 255, 255); got != want {
		t.Errorf("brighten∘invert = %v, want %v", got, want)
	}
}
