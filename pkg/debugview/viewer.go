// Package debugview exports static PNG slices of a susceptibility map
// or field map for visual inspection. It adapts the teacher's
// pkg/visualization.Viewer — which extracted JPEG slices from a
// reconstructed triangle-mesh volume — to read directly from
// pkg/volume.Volume3 and write lossless PNGs instead, since QSM debug
// output is quantitative and JPEG's lossy compression would distort it.
package debugview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"qsmcore/pkg/volume"
)

// Axis selects which plane a slice is extracted along.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "z"
	}
}

// Viewer extracts 2D slices from a 3D volume for debug export.
type Viewer struct {
	v *volume.Volume3[float64]
}

// NewViewer wraps v for slice extraction.
func NewViewer(v *volume.Volume3[float64]) *Viewer {
	return &Viewer{v: v}
}

// ExtractSlice extracts a 2D slice along axis at position, normalizing
// voxel values into the volume's own [min, max] range before mapping to
// 16-bit grayscale.
func (vw *Viewer) ExtractSlice(axis Axis, position int) (image.Image, error) {
	s := vw.v.Shape
	lo, hi := extent(s, axis)
	if position < 0 || position >= lo {
		return nil, fmt.Errorf("position %d out of range [0, %d)", position, lo)
	}

	minV, maxV := minMax(vw.v.Data)
	span := maxV - minV
	if span == 0 {
		span = 1
	}

	img := image.NewGray16(image.Rect(0, 0, hi[0], hi[1]))
	for a := 0; a < hi[0]; a++ {
		for b := 0; b < hi[1]; b++ {
			i, j, k := planeToVolume(axis, position, a, b)
			norm := (vw.v.At(i, j, k) - minV) / span
			value := uint16(math.Max(0, math.Min(65535, norm*65535)))
			img.SetGray16(a, b, color.Gray16{Y: value})
		}
	}

	return img, nil
}

// extent returns the slice count along axis and the (width, height) of
// each slice.
func extent(s volume.Shape3, axis Axis) (int, [2]int) {
	switch axis {
	case AxisX:
		return s[0], [2]int{s[1], s[2]}
	case AxisY:
		return s[1], [2]int{s[0], s[2]}
	default:
		return s[2], [2]int{s[0], s[1]}
	}
}

func planeToVolume(axis Axis, position, a, b int) (i, j, k int) {
	switch axis {
	case AxisX:
		return position, a, b
	case AxisY:
		return a, position, b
	default:
		return a, b, position
	}
}

func minMax(data []float64) (float64, float64) {
	if len(data) == 0 {
		return 0, 0
	}
	minV, maxV := data[0], data[0]
	for _, v := range data[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	return minV, maxV
}

// SaveSlice encodes img as a PNG at filename.
func (vw *Viewer) SaveSlice(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// SaveSliceSequence extracts and saves every slice along axis into
// outputDir.
func (vw *Viewer) SaveSliceSequence(axis Axis, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	count, _ := extent(vw.v.Shape, axis)
	for pos := 0; pos < count; pos++ {
		img, err := vw.ExtractSlice(axis, pos)
		if err != nil {
			return err
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("slice_%s_%03d.png", axis, pos))
		if err := vw.SaveSlice(img, filename); err != nil {
			return err
		}
	}

	return nil
}
