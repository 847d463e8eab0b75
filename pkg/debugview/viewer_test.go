package debugview

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"testing"

	"qsmcore/pkg/volume"
)

func TestExtractSliceDimensions(t *testing.T) {
	shape := volume.Shape3{10, 10, 5}
	v := volume.NewVolume3[float64](shape)
	for z := 0; z < shape[2]; z++ {
		value := float64(z) / float64(shape[2])
		for y := 0; y < shape[1]; y++ {
			for x := 0; x < shape[0]; x++ {
				v.Set(x, y, z, value)
			}
		}
	}

	viewer := NewViewer(v)

	for z := 0; z < shape[2]; z++ {
		img, err := viewer.ExtractSlice(AxisZ, z)
		if err != nil {
			t.Fatalf("failed to extract Z slice at position %d: %v", z, err)
		}
		bounds := img.Bounds()
		if bounds.Dx() != shape[0] || bounds.Dy() != shape[1] {
			t.Errorf("Z slice dims = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), shape[0], shape[1])
		}
	}

	imgX, err := viewer.ExtractSlice(AxisX, shape[0]/2)
	if err != nil {
		t.Fatalf("failed to extract X slice: %v", err)
	}
	boundsX := imgX.Bounds()
	if boundsX.Dx() != shape[1] || boundsX.Dy() != shape[2] {
		t.Errorf("X slice dims = %dx%d, want %dx%d", boundsX.Dx(), boundsX.Dy(), shape[1], shape[2])
	}

	if _, err := viewer.ExtractSlice(AxisZ, shape[2]+1); err == nil {
		t.Error("expected error for out-of-bounds position, got nil")
	}
}

func TestExtractSliceNormalizesToRange(t *testing.T) {
	shape := volume.Shape3{4, 4, 2}
	v := volume.NewVolume3[float64](shape)
	v.Set(0, 0, 0, -10)
	v.Set(1, 0, 0, 10)

	viewer := NewViewer(v)
	img, err := viewer.ExtractSlice(AxisZ, 0)
	if err != nil {
		t.Fatal(err)
	}
	gray, ok := img.(*image.Gray16)
	if !ok {
		t.Fatalf("expected *image.Gray16, got %T", img)
	}
	if gray.Gray16At(0, 0).Y != 0 {
		t.Errorf("min value did not map to 0, got %d", gray.Gray16At(0, 0).Y)
	}
	if got := gray.Gray16At(1, 0).Y; math.Abs(float64(got)-65535) > 1 {
		t.Errorf("max value did not map to 65535, got %d", got)
	}
}

func TestSaveSliceSequence(t *testing.T) {
	shape := volume.Shape3{5, 5, 3}
	v := volume.NewVolume3[float64](shape)
	for i := range v.Data {
		v.Data[i] = 0.5
	}

	viewer := NewViewer(v)
	outputDir := filepath.Join(t.TempDir(), "slices")

	if err := viewer.SaveSliceSequence(AxisZ, outputDir); err != nil {
		t.Fatalf("failed to save slice sequence: %v", err)
	}

	for z := 0; z < shape[2]; z++ {
		filename := filepath.Join(outputDir, fmt.Sprintf("slice_z_%03d.png", z))
		if _, err := os.Stat(filename); os.IsNotExist(err) {
			t.Errorf("expected slice file does not exist: %s", filename)
		}
	}
}
