// Package mask implements the region-of-interest operations (C4) that
// surround the solver pipeline: bounding-box crop and 18-connectivity
// binary erosion.
package mask

import (
	"math"

	"qsmcore/pkg/parallel"
	"qsmcore/pkg/volume"
)

// stencilOffsets holds the 19 offsets (center plus the 18 face/edge
// neighbors) of the 3x3x3 cube with its 8 corners removed: every offset
// whose Manhattan norm is at most 2.
var stencilOffsets = buildStencilOffsets()

func buildStencilOffsets() [19][3]int {
	var offsets [19][3]int
	n := 0
	for di := -1; di <= 1; di++ {
		for dj := -1; dj <= 1; dj++ {
			for dk := -1; dk <= 1; dk++ {
				if abs(di)+abs(dj)+abs(dk) > 2 {
					continue // corner of the 3x3x3 cube, excluded
				}
				offsets[n] = [3]int{di, dj, dk}
				n++
			}
		}
	}
	if n != 19 {
		panic("mask: stencil table did not generate 19 offsets")
	}
	return offsets
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// CropIndices scans every voxel and returns the inclusive bounding box
// of voxels not equal to outsideValue, plus whether any such voxel was
// found. When none is found, the full-volume box is returned with
// found=false.
func CropIndices(m *volume.Mask3, outsideValue bool) (lo, hi volume.Shape3, found bool) {
	lo = volume.Shape3{m.Shape[0], m.Shape[1], m.Shape[2]}
	hi = volume.Shape3{-1, -1, -1}

	for i := 0; i < m.Shape[0]; i++ {
		for j := 0; j < m.Shape[1]; j++ {
			for k := 0; k < m.Shape[2]; k++ {
				if m.At(i, j, k) == outsideValue {
					continue
				}
				found = true
				if i < lo[0] {
					lo[0] = i
				}
				if j < lo[1] {
					lo[1] = j
				}
				if k < lo[2] {
					lo[2] = k
				}
				if i > hi[0] {
					hi[0] = i
				}
				if j > hi[1] {
					hi[1] = j
				}
				if k > hi[2] {
					hi[2] = k
				}
			}
		}
	}

	if !found {
		return volume.Shape3{0, 0, 0}, volume.Shape3{m.Shape[0] - 1, m.Shape[1] - 1, m.Shape[2] - 1}, false
	}
	return lo, hi, true
}

// CropIndicesFloat is CropIndices generalized to a real-valued volume,
// using approximate inequality (|v - outsideValue| > eps) instead of
// exact comparison, per spec.md §4.4's "approximate-inequality for float T".
func CropIndicesFloat[T volume.Real](v *volume.Volume3[T], outsideValue T, eps float64) (lo, hi volume.Shape3, found bool) {
	lo = volume.Shape3{v.Shape[0], v.Shape[1], v.Shape[2]}
	hi = volume.Shape3{-1, -1, -1}

	for i := 0; i < v.Shape[0]; i++ {
		for j := 0; j < v.Shape[1]; j++ {
			for k := 0; k < v.Shape[2]; k++ {
				diff := float64(v.At(i, j, k) - outsideValue)
				if math.Abs(diff) <= eps {
					continue
				}
				found = true
				if i < lo[0] {
					lo[0] = i
				}
				if j < lo[1] {
					lo[1] = j
				}
				if k < lo[2] {
					lo[2] = k
				}
				if i > hi[0] {
					hi[0] = i
				}
				if j > hi[1] {
					hi[1] = j
				}
				if k > hi[2] {
					hi[2] = k
				}
			}
		}
	}

	if !found {
		return volume.Shape3{0, 0, 0}, volume.Shape3{v.Shape[0] - 1, v.Shape[1] - 1, v.Shape[2] - 1}, false
	}
	return lo, hi, true
}

// Erode applies 18-connectivity binary erosion iter times. At round t
// (1-indexed), voxel (i, j, k) with t <= i <= Nx-1-t (and likewise for j,
// k, 0-based) becomes the logical AND of the 19-term stencil of the
// previous round's result; voxels within t of any boundary are left at
// the zero value their ping-pong buffer was initialized to. iter <= 0
// returns a copy of m unchanged.
func Erode(p *parallel.Pool, m *volume.Mask3, iter int) *volume.Mask3 {
	if iter <= 0 {
		return m.Clone()
	}

	cur := m.Clone()
	shape := m.Shape

	for t := 1; t <= iter; t++ {
		next := volume.NewMask3(shape)

		lo0, hi0 := t, shape[0]-1-t
		lo1, hi1 := t, shape[1]-1-t
		lo2, hi2 := t, shape[2]-1-t

		if lo0 <= hi0 && lo1 <= hi1 && lo2 <= hi2 {
			n := hi0 - lo0 + 1
			p.ParallelFor(n, func(chunkLo, chunkHi int) {
				for i := lo0 + chunkLo; i < lo0+chunkHi; i++ {
					for j := lo1; j <= hi1; j++ {
						for k := lo2; k <= hi2; k++ {
							next.Set(i, j, k, erodedVoxel(cur, i, j, k))
						}
					}
				}
			})
		}

		cur = next
	}

	return cur
}

func erodedVoxel(m *volume.Mask3, i, j, k int) bool {
	for _, off := range stencilOffsets {
		if !m.At(i+off[0], j+off[1], k+off[2]) {
			return false
		}
	}
	return true
}
