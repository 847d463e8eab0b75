package pad

import (
	"testing"

	"qsmcore/pkg/parallel"
	"qsmcore/pkg/volume"
)

func TestPadFillScenario(t *testing.T) {
	p := parallel.NewPool(2)
	x := volume.NewVolume3[float64](volume.Shape3{3, 3, 3})
	for i := range x.Data {
		x.Data[i] = 7
	}

	out, err := Pad(p, x, volume.Shape3{5, 5, 5}, Fill, 0)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			for k := 0; k < 5; k++ {
				inInterior := i >= 1 && i <= 3 && j >= 1 && j <= 3 && k >= 1 && k <= 3
				got := out.At(i, j, k)
				if inInterior && got != 7 {
					t.Fatalf("interior (%d,%d,%d) = %v, want 7", i, j, k, got)
				}
				if !inInterior && got != 0 {
					t.Fatalf("border (%d,%d,%d) = %v, want 0", i, j, k, got)
				}
			}
		}
	}
}

func TestPadReflectScenario1D(t *testing.T) {
	p := parallel.NewPool(2)
	x := volume.NewVolume3[float64](volume.Shape3{3, 1, 1})
	x.Set(0, 0, 0, 1) // a
	x.Set(1, 0, 0, 2) // b
	x.Set(2, 0, 0, 3) // c

	out, err := Pad(p, x, volume.Shape3{7, 1, 1}, Reflect, 0)
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{3, 2, 1, 2, 3, 2, 1} // c b a b c b a
	for i, w := range want {
		if got := out.At(i, 0, 0); got != w {
			t.Fatalf("out[%d] = %v, want %v", i, got, w)
		}
	}
}

func TestPadUnpadRoundTrip(t *testing.T) {
	p := parallel.NewPool(4)
	shapes := []volume.Shape3{{4, 5, 6}, {3, 3, 3}}
	policies := []Policy{Fill, Circular, Replicate, Symmetric, Reflect}

	for _, in := range shapes {
		x := volume.NewVolume3[float64](in)
		for i := range x.Data {
			x.Data[i] = float64(i) * 0.5
		}
		out := volume.Shape3{in[0] + 4, in[1] + 3, in[2] + 5}

		for _, pol := range policies {
			padded, err := Pad(p, x, out, pol, -1)
			if err != nil {
				t.Fatalf("Pad policy %v: %v", pol, err)
			}
			back, err := Unpad(p, padded, in)
			if err != nil {
				t.Fatalf("Unpad policy %v: %v", pol, err)
			}
			for i := range x.Data {
				if back.Data[i] != x.Data[i] {
					t.Fatalf("policy %v: round-trip mismatch at %d: got %v want %v", pol, i, back.Data[i], x.Data[i])
				}
			}
		}
	}
}

func TestPadShapeMismatch(t *testing.T) {
	p := parallel.NewPool(2)
	x := volume.NewVolume3[float64](volume.Shape3{4, 4, 4})
	if _, err := Pad(p, x, volume.Shape3{3, 4, 4}, Fill, 0); err == nil {
		t.Fatal("expected ShapeMismatch error")
	}
}

func TestPadInvalidOption(t *testing.T) {
	p := parallel.NewPool(2)
	x := volume.NewVolume3[float64](volume.Shape3{4, 4, 4})
	if _, err := Pad(p, x, volume.Shape3{5, 5, 5}, Policy(99), 0); err == nil {
		t.Fatal("expected InvalidOption error")
	}
}

func TestPadMaskRoundTrip(t *testing.T) {
	p := parallel.NewPool(2)
	m := volume.NewMask3(volume.Shape3{3, 3, 3})
	for i := range m.Data {
		m.Data[i] = i%2 == 0
	}
	out, err := PadMask(p, m, volume.Shape3{7, 7, 7}, Replicate, false)
	if err != nil {
		t.Fatal(err)
	}
	delta := Offset(m.Shape, out.Shape)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				if got, want := out.At(i+delta[0], j+delta[1], k+delta[2]), m.At(i, j, k); got != want {
					t.Fatalf("interior mismatch at (%d,%d,%d): got %v want %v", i, j, k, got, want)
				}
			}
		}
	}
}
