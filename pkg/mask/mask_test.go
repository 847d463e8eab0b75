package mask

import (
	"testing"

	"qsmcore/pkg/parallel"
	"qsmcore/pkg/volume"
)

func allTrueMask(shape volume.Shape3) *volume.Mask3 {
	m := volume.NewMask3(shape)
	for i := range m.Data {
		m.Data[i] = true
	}
	return m
}

func TestErodeScenario(t *testing.T) {
	p := parallel.NewPool(2)
	m := allTrueMask(volume.Shape3{5, 5, 5})
	out := Erode(p, m, 1)

	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			for k := 0; k < 5; k++ {
				want := i >= 1 && i <= 3 && j >= 1 && j <= 3 && k >= 1 && k <= 3
				if got := out.At(i, j, k); got != want {
					t.Fatalf("(%d,%d,%d) = %v, want %v", i, j, k, got, want)
				}
			}
		}
	}
}

func TestErodeZeroIsCopy(t *testing.T) {
	p := parallel.NewPool(2)
	m := allTrueMask(volume.Shape3{4, 4, 4})
	m.Set(0, 0, 0, false)
	out := Erode(p, m, 0)
	for i := range m.Data {
		if out.Data[i] != m.Data[i] {
			t.Fatalf("erode(0) changed data at %d", i)
		}
	}
}

func TestErodeMonotone(t *testing.T) {
	p := parallel.NewPool(4)
	m := allTrueMask(volume.Shape3{9, 9, 9})
	for i := range m.Data {
		m.Data[i] = i%3 != 0
	}

	prev := Erode(p, m, 1)
	for iter := 2; iter <= 4; iter++ {
		cur := Erode(p, m, iter)
		for idx := range cur.Data {
			if cur.Data[idx] && !prev.Data[idx] {
				t.Fatalf("erode(%d) not subset of erode(%d) at index %d", iter, iter-1, idx)
			}
		}
		prev = cur
	}
}

func TestCropIndicesFullBox(t *testing.T) {
	m := volume.NewMask3(volume.Shape3{3, 3, 3})
	lo, hi, found := CropIndices(m, false)
	if found {
		t.Fatal("expected found=false for all-outside mask")
	}
	if lo != (volume.Shape3{0, 0, 0}) || hi != (volume.Shape3{2, 2, 2}) {
		t.Fatalf("got lo=%v hi=%v", lo, hi)
	}
}

func TestCropIndicesBoundingBox(t *testing.T) {
	m := volume.NewMask3(volume.Shape3{10, 10, 10})
	m.Set(2, 3, 4, true)
	m.Set(6, 7, 1, true)

	lo, hi, found := CropIndices(m, false)
	if !found {
		t.Fatal("expected found=true")
	}
	want := struct{ lo, hi volume.Shape3 }{volume.Shape3{2, 3, 1}, volume.Shape3{6, 7, 4}}
	if lo != want.lo || hi != want.hi {
		t.Fatalf("got lo=%v hi=%v, want lo=%v hi=%v", lo, hi, want.lo, want.hi)
	}
}
