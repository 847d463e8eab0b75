package psf

import (
	"math"
	"testing"

	"qsmcore/pkg/parallel"
	"qsmcore/pkg/volume"
)

func TestToOTFDeltaNormComplex(t *testing.T) {
	pool := parallel.NewPool(2)
	delta := volume.NewVolume3[float64](volume.Shape3{1, 1, 1})
	delta.Set(0, 0, 0, 1)

	res, err := ToOTF(pool, delta, volume.Shape3{4, 4, 4}, false)
	if err != nil {
		t.Fatal(err)
	}
	if res.Complex == nil {
		t.Fatal("expected complex result for rfft=false")
	}

	maxAbs := 0.0
	for _, c := range res.Complex.Data {
		if a := math.Hypot(real(c), imag(c)); a > maxAbs {
			maxAbs = a
		}
	}
	if math.Abs(maxAbs-1) > 1e-9 {
		t.Fatalf("||psf2otf(delta)||_inf = %v, want 1", maxAbs)
	}
}

func TestToOTFRealSuppression(t *testing.T) {
	pool := parallel.NewPool(2)
	delta := volume.NewVolume3[float64](volume.Shape3{1, 1, 1})
	delta.Set(0, 0, 0, 1)

	res, err := ToOTF(pool, delta, volume.Shape3{8, 8, 8}, true)
	if err != nil {
		t.Fatal(err)
	}
	if res.Real == nil {
		t.Fatal("expected real half-complex result for a real delta PSF")
	}
	for _, v := range res.Real.Data {
		if math.Abs(v-1) > 1e-9 {
			t.Fatalf("delta spectrum value = %v, want 1", v)
		}
	}
}

func TestToOTFShapeMismatch(t *testing.T) {
	pool := parallel.NewPool(2)
	k := volume.NewVolume3[float64](volume.Shape3{5, 5, 5})
	if _, err := ToOTF(pool, k, volume.Shape3{4, 4, 4}, true); err == nil {
		t.Fatal("expected ShapeMismatch error")
	}
}
