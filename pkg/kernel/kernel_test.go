package kernel

import (
	"math"
	"testing"

	"qsmcore/pkg/parallel"
	"qsmcore/pkg/volume"
)

func TestDipoleKZeroAtOrigin(t *testing.T) {
	half := volume.Shape3{17, 32, 32}
	vsz := volume.VoxelSize{1, 1, 1}
	bdir := volume.DirectionVector{0, 0, 1}

	d, err := DipoleK(half, vsz, bdir)
	if err != nil {
		t.Fatal(err)
	}
	if got := d.At(0, 0, 0); got != 0 {
		t.Fatalf("D(0) = %v, want 0", got)
	}
}

func TestDipoleKRange(t *testing.T) {
	half := volume.Shape3{17, 32, 32}
	vsz := volume.VoxelSize{1, 1, 1}
	bdir := volume.DirectionVector{0, 0, 1}

	d, err := DipoleK(half, vsz, bdir)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range d.Data {
		if v < -2.0/3.0-1e-9 || v > 1.0/3.0+1e-9 {
			t.Fatalf("dipole value %v out of theoretical range [-2/3, 1/3]", v)
		}
	}
}

func TestDipoleKInvalidDirection(t *testing.T) {
	half := volume.Shape3{9, 16, 16}
	vsz := volume.VoxelSize{1, 1, 1}
	if _, err := DipoleK(half, vsz, volume.DirectionVector{0, 0, 0}); err == nil {
		t.Fatal("expected InvalidValue error for zero direction vector")
	}
}

func TestLaplacianPSFSymmetric(t *testing.T) {
	p := laplacianPSF(volume.VoxelSize{1, 1, 1}, false)
	if got, want := p.At(1, 1, 1), -6.0; math.Abs(got-want) > 1e-12 {
		t.Fatalf("center = %v, want %v", got, want)
	}
	if got, want := p.At(0, 1, 1), 1.0; math.Abs(got-want) > 1e-12 {
		t.Fatalf("face neighbor = %v, want %v", got, want)
	}
}

func TestGradientKernelNonNegative(t *testing.T) {
	pool := parallel.NewPool(2)
	g, err := Gradient(pool, volume.Shape3{8, 8, 8}, volume.VoxelSize{1, 1, 1}, true)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range g.Data {
		if v < -1e-9 {
			t.Fatalf("gradient magnitude kernel has negative value %v", v)
		}
	}
}
