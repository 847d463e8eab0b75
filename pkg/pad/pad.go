// Package pad implements centered padding and unpadding of Volume3
// arrays (C3): a parallel copy of the interior block plus one of five
// boundary policies for the border.
package pad

import (
	"qsmcore/pkg/parallel"
	"qsmcore/pkg/qsmerr"
	"qsmcore/pkg/volume"
)

// Policy selects how the border outside the centered interior block is
// filled. It is a closed variant: values outside the five declared
// constants are rejected with qsmerr.InvalidOption rather than dispatched
// stringly.
type Policy int

const (
	// Fill writes a constant value into the border.
	Fill Policy = iota
	// Circular wraps the source periodically.
	Circular
	// Replicate clamps to the nearest edge voxel.
	Replicate
	// Symmetric mirrors with the edge voxel repeated.
	Symmetric
	// Reflect mirrors without repeating the edge voxel.
	Reflect
)

func (p Policy) valid() bool {
	return p >= Fill && p <= Reflect
}

// Offset returns the centered placement offset ΔI = (M - N + 1) div 2
// for padding shape in up to out.
func Offset(in, out volume.Shape3) volume.Shape3 {
	var d volume.Shape3
	for i := 0; i < 3; i++ {
		d[i] = (out[i] - in[i] + 1) / 2
	}
	return d
}

// clampIndex1D implements the Replicate policy for one axis.
func clampIndex1D(local, n int) int {
	if local < 0 {
		return 0
	}
	if local >= n {
		return n - 1
	}
	return local
}

// wrapIndex1D implements the Circular policy for one axis.
func wrapIndex1D(local, n int) int {
	m := local % n
	if m < 0 {
		m += n
	}
	return m
}

// mirrorIndex1D implements Symmetric (includeEdge=true) and Reflect
// (includeEdge=false) for one axis, operating on the 1-based coordinate
// Ix = local + 1 per spec.md §4.3.
func mirrorIndex1D(local, n int, includeEdge bool) int {
	ix := local + 1
	// Padding amounts in this core are always small relative to n, but
	// guard against pathological inputs rather than looping forever.
	for iter := 0; (ix < 1 || ix > n) && iter < 10000; iter++ {
		if ix < 1 {
			if includeEdge {
				ix = 1 - ix
			} else {
				ix = 2 - ix
			}
		} else {
			if includeEdge {
				ix = 2*n + 1 - ix
			} else {
				ix = 2*n - ix
			}
		}
	}
	return ix - 1
}

// sourceIndex1D maps a padded-array local coordinate (Ip - offset) back
// to a source coordinate in [0, n) for every policy except Fill, which
// has no source mapping.
func sourceIndex1D(policy Policy, local, n int) int {
	switch policy {
	case Circular:
		return wrapIndex1D(local, n)
	case Replicate:
		return clampIndex1D(local, n)
	case Symmetric:
		return mirrorIndex1D(local, n, true)
	case Reflect:
		return mirrorIndex1D(local, n, false)
	default:
		return clampIndex1D(local, n)
	}
}

// Pad writes a centered copy of x into a freshly allocated volume of
// shape out, filling the border per policy. It fails with ShapeMismatch
// if out is smaller than shape(x) on any axis, and InvalidOption if
// policy is unrecognized.
func Pad[T volume.Real](p *parallel.Pool, x *volume.Volume3[T], out volume.Shape3, policy Policy, fillValue T) (*volume.Volume3[T], error) {
	if !policy.valid() {
		return nil, qsmerr.Option("policy", "unrecognized padding policy")
	}
	if !out.GE(x.Shape) {
		return nil, qsmerr.Shape("out", "out shape must be >= input shape on every axis")
	}

	in := x.Shape
	delta := Offset(in, out)
	dst := volume.NewVolume3[T](out)

	copyInterior(p, dst, x, delta)
	fillBorder(p, dst, x, delta, policy, fillValue)

	return dst, nil
}

// copyInterior writes x into dst's centered interior block, row by row,
// parallelized over the outer axis via the pool's ParallelFor (C1).
func copyInterior[T volume.Real](p *parallel.Pool, dst, x *volume.Volume3[T], delta volume.Shape3) {
	n := x.Shape
	m := dst.Shape

	p.ParallelFor(n[0], func(lo, hi int) {
		for i := lo; i < hi; i++ {
			di := i + delta[0]
			for j := 0; j < n[1]; j++ {
				dj := j + delta[1]
				srcOff := x.Index(i, j, 0)
				dstOff := dst.Index(di, dj, delta[2])
				copy(dst.Data[dstOff:dstOff+n[2]], x.Data[srcOff:srcOff+n[2]])
			}
		}
		_ = m
	})
}

// fillBorder enumerates every padded-cube index outside the centered
// interior and writes its border value. Each policy's write is
// deterministic and never reads from dst, so this is safe to parallelize
// over the outer axis.
func fillBorder[T volume.Real](p *parallel.Pool, dst, x *volume.Volume3[T], delta volume.Shape3, policy Policy, fillValue T) {
	m := dst.Shape
	n := x.Shape

	inInterior := func(i, lo, hi int) bool { return i >= lo && i < hi }

	p.ParallelFor(m[0], func(lo0, hi0 int) {
		for i := lo0; i < hi0; i++ {
			iInInterior := inInterior(i, delta[0], delta[0]+n[0])
			for j := 0; j < m[1]; j++ {
				jInInterior := inInterior(j, delta[1], delta[1]+n[1])
				if iInInterior && jInInterior {
					// Only the k-axis border within this (i, j) row is
					// outside the interior; skip the already-copied
					// middle span.
					writeRowBorder(dst, x, delta, i, j, n, m, policy, fillValue, true)
					continue
				}
				writeRowBorder(dst, x, delta, i, j, n, m, policy, fillValue, false)
			}
		}
	})
}

// writeRowBorder fills one (i, j) row of the padded cube. When
// skipInterior is true, only the k range outside [delta[2], delta[2]+n[2])
// is written (the rest was already copied by copyInterior); otherwise
// the entire row is a border row and is written in full.
func writeRowBorder[T volume.Real](dst, x *volume.Volume3[T], delta volume.Shape3, i, j int, n, m volume.Shape3, policy Policy, fillValue T, skipInterior bool) {
	for k := 0; k < m[2]; k++ {
		if skipInterior && k >= delta[2] && k < delta[2]+n[2] {
			continue
		}
		dst.Set(i, j, k, borderValue(x, delta, i, j, k, n, policy, fillValue))
	}
}

func borderValue[T volume.Real](x *volume.Volume3[T], delta volume.Shape3, i, j, k int, n volume.Shape3, policy Policy, fillValue T) T {
	if policy == Fill {
		return fillValue
	}
	si := sourceIndex1D(policy, i-delta[0], n[0])
	sj := sourceIndex1D(policy, j-delta[1], n[1])
	sk := sourceIndex1D(policy, k-delta[2], n[2])
	return x.At(si, sj, sk)
}

// Unpad reads the centered in-shape block out of y into a freshly
// allocated volume, using the same offsets Pad would have used.
func Unpad[T volume.Real](p *parallel.Pool, y *volume.Volume3[T], in volume.Shape3) (*volume.Volume3[T], error) {
	if !y.Shape.GE(in) {
		return nil, qsmerr.Shape("in", "unpad target shape must be <= padded shape on every axis")
	}

	delta := Offset(in, y.Shape)
	dst := volume.NewVolume3[T](in)

	p.ParallelFor(in[0], func(lo, hi int) {
		for i := lo; i < hi; i++ {
			si := i + delta[0]
			for j := 0; j < in[1]; j++ {
				sj := j + delta[1]
				srcOff := y.Index(si, sj, delta[2])
				dstOff := dst.Index(i, j, 0)
				copy(dst.Data[dstOff:dstOff+in[2]], y.Data[srcOff:srcOff+in[2]])
			}
		}
	})

	return dst, nil
}

// PadMask is Pad specialized to boolean masks, used to pad the mask with
// the same centering Pad uses for the field so the two line up in the
// solver's post-multiply step.
func PadMask(p *parallel.Pool, m *volume.Mask3, out volume.Shape3, policy Policy, fillValue bool) (*volume.Mask3, error) {
	if !policy.valid() {
		return nil, qsmerr.Option("policy", "unrecognized padding policy")
	}
	if !out.GE(m.Shape) {
		return nil, qsmerr.Shape("out", "out shape must be >= input shape on every axis")
	}

	in := m.Shape
	delta := Offset(in, out)
	dst := volume.NewMask3(out)

	p.ParallelFor(in[0], func(lo, hi int) {
		for i := lo; i < hi; i++ {
			di := i + delta[0]
			for j := 0; j < in[1]; j++ {
				dj := j + delta[1]
				for k := 0; k < in[2]; k++ {
					dst.Set(di, dj, k+delta[2], m.At(i, j, k))
				}
			}
		}
	})

	mOut := out
	p.ParallelFor(mOut[0], func(lo0, hi0 int) {
		for i := lo0; i < hi0; i++ {
			iInInterior := i >= delta[0] && i < delta[0]+in[0]
			for j := 0; j < mOut[1]; j++ {
				jInInterior := iInInterior && j >= delta[1] && j < delta[1]+in[1]
				for k := 0; k < mOut[2]; k++ {
					if jInInterior && k >= delta[2] && k < delta[2]+in[2] {
						continue
					}
					if policy == Fill {
						dst.Set(i, j, k, fillValue)
						continue
					}
					si := sourceIndex1D(policy, i-delta[0], in[0])
					sj := sourceIndex1D(policy, j-delta[1], in[1])
					sk := sourceIndex1D(policy, k-delta[2], in[2])
					dst.Set(i, j, k, m.At(si, sj, sk))
				}
			}
		}
	})

	return dst, nil
}
