// Package fftplan implements FFT plan orchestration (C8): selecting
// real-vs-complex transforms for a padded volume shape and composing the
// three per-axis 1D transforms into a separable forward/inverse N-D FFT.
//
// The per-axis transforms are gonum.org/v1/gonum/dsp/fourier's FFT
// (real<->half-complex) and CmplxFFT (complex<->complex) — the same
// package the teacher already imports for pkg/shearlet/fft.go's 2D
// row-then-column transform, generalized here from two axes to three and
// from a hand-rolled recursive complex FFT (the teacher's complexFFT) to
// gonum's mixed-radix CmplxFFT so every axis supports the {2,3,5,7}
// composite sizes pkg/fftsize produces, not just powers of two.
package fftplan

import (
	"gonum.org/v1/gonum/dsp/fourier"

	"qsmcore/pkg/parallel"
	"qsmcore/pkg/volume"
)

// Plan is a scoped FFT plan over one padded shape. Plans are created per
// solve and released at scope exit; they are never cached in package
// state (spec.md §4.8, §9: "treat plans as scoped acquisitions tied to
// the solve").
//
// gonum's FFT and CmplxFFT values carry internal scratch state and are
// not safe for concurrent reuse across goroutines, so Plan constructs a
// fresh transform object inside each parallel chunk rather than sharing
// one across the pool; the pool still governs how many chunks run
// concurrently, which is this implementation's mapping of "set the
// back-end's thread count to the configured worker pool size" (spec.md
// §4.8) onto a library with no thread-count knob of its own.
type Plan struct {
	pool *parallel.Pool

	shape volume.Shape3 // padded (Mx, My, Mz)
	half  volume.Shape3 // half-complex (Mx/2+1, My, Mz)
}

// New creates a plan for a real-FFT pipeline over the padded shape. shape
// must have already been rounded by pkg/fftsize with rfft=true (Mx even).
func New(pool *parallel.Pool, shape volume.Shape3) *Plan {
	return &Plan{pool: pool, shape: shape, half: shape.HalfComplex()}
}

// Shape returns the padded real-space shape.
func (pl *Plan) Shape() volume.Shape3 { return pl.shape }

// HalfComplexShape returns the (Mx/2+1, My, Mz) spectrum shape.
func (pl *Plan) HalfComplexShape() volume.Shape3 { return pl.half }

// Forward computes the real-to-half-complex forward FFT of x, whose
// shape must equal pl.Shape().
func (pl *Plan) Forward(x *volume.Volume3[float64]) *volume.CVolume3 {
	mx, my, mz := pl.shape[0], pl.shape[1], pl.shape[2]
	half := pl.half

	spec := volume.NewCVolume3(half)

	// Axis 0: real -> half-complex, one line per (j, k).
	pl.pool.ParallelFor(my*mz, func(lo, hi int) {
		fft := fourier.NewFFT(mx)
		line := make([]float64, mx)
		out := make([]complex128, half[0])

		for idx := lo; idx < hi; idx++ {
			j, k := idx/mz, idx%mz
			for i := 0; i < mx; i++ {
				line[i] = x.At(i, j, k)
			}
			fft.Coefficients(out, line)
			for kx := 0; kx < half[0]; kx++ {
				spec.Set(kx, j, k, out[kx])
			}
		}
	})

	// Axis 1: complex -> complex, one line per (kx, k).
	pl.pool.ParallelFor(half[0]*mz, func(lo, hi int) {
		cfft := fourier.NewCmplxFFT(my)
		line := make([]complex128, my)
		out := make([]complex128, my)

		for idx := lo; idx < hi; idx++ {
			kx, k := idx/mz, idx%mz
			for j := 0; j < my; j++ {
				line[j] = spec.At(kx, j, k)
			}
			cfft.Coefficients(out, line)
			for j := 0; j < my; j++ {
				spec.Set(kx, j, k, out[j])
			}
		}
	})

	// Axis 2: complex -> complex, contiguous within each (kx, ky) row.
	pl.pool.ParallelFor(half[0]*my, func(lo, hi int) {
		cfft := fourier.NewCmplxFFT(mz)
		out := make([]complex128, mz)

		for idx := lo; idx < hi; idx++ {
			kx, ky := idx/my, idx%my
			off := spec.Index(kx, ky, 0)
			row := spec.Data[off : off+mz]
			cfft.Coefficients(out, row)
			copy(row, out)
		}
	})

	return spec
}

// Inverse computes the half-complex-to-real inverse FFT of spec, whose
// shape must equal pl.HalfComplexShape(), normalizing by 1/(Mx*My*Mz) so
// Inverse(Forward(x)) reconstructs x.
func (pl *Plan) Inverse(spec *volume.CVolume3) *volume.Volume3[float64] {
	mx, my, mz := pl.shape[0], pl.shape[1], pl.shape[2]
	half := pl.half

	work := spec.Clone()

	// Axis 2 inverse: contiguous within each (kx, ky) row.
	pl.pool.ParallelFor(half[0]*my, func(lo, hi int) {
		cfft := fourier.NewCmplxFFT(mz)
		out := make([]complex128, mz)

		for idx := lo; idx < hi; idx++ {
			kx, ky := idx/my, idx%my
			off := work.Index(kx, ky, 0)
			row := work.Data[off : off+mz]
			cfft.Sequence(out, row)
			copy(row, out)
		}
	})

	// Axis 1 inverse: one line per (kx, k).
	pl.pool.ParallelFor(half[0]*mz, func(lo, hi int) {
		cfft := fourier.NewCmplxFFT(my)
		line := make([]complex128, my)
		out := make([]complex128, my)

		for idx := lo; idx < hi; idx++ {
			kx, k := idx/mz, idx%mz
			for j := 0; j < my; j++ {
				line[j] = work.At(kx, j, k)
			}
			cfft.Sequence(out, line)
			for j := 0; j < my; j++ {
				work.Set(kx, j, k, out[j])
			}
		}
	})

	result := volume.NewVolume3[float64](pl.shape)
	scale := 1.0 / float64(mx*my*mz)

	// Axis 0 inverse: half-complex -> real, one line per (j, k).
	pl.pool.ParallelFor(my*mz, func(lo, hi int) {
		fft := fourier.NewFFT(mx)
		line := make([]complex128, half[0])
		out := make([]float64, mx)

		for idx := lo; idx < hi; idx++ {
			j, k := idx/mz, idx%mz
			for kx := 0; kx < half[0]; kx++ {
				line[kx] = work.At(kx, j, k)
			}
			fft.Sequence(out, line)
			for i := 0; i < mx; i++ {
				result.Set(i, j, k, out[i]*scale)
			}
		}
	})

	return result
}
