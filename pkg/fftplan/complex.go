package fftplan

import (
	"gonum.org/v1/gonum/dsp/fourier"

	"qsmcore/pkg/parallel"
	"qsmcore/pkg/volume"
)

// ForwardComplex computes a full complex-to-complex 3D FFT of src,
// used by C5's psf2otf when rfft is false (or T is already complex):
// unlike Plan.Forward, no axis is reduced to half-complex layout.
func ForwardComplex(pool *parallel.Pool, src *volume.CVolume3) *volume.CVolume3 {
	return transformComplex3D(pool, src, false)
}

// InverseComplex computes the full complex-to-complex inverse 3D FFT,
// normalized by 1/(Mx*My*Mz).
func InverseComplex(pool *parallel.Pool, src *volume.CVolume3) *volume.CVolume3 {
	return transformComplex3D(pool, src, true)
}

func transformComplex3D(pool *parallel.Pool, src *volume.CVolume3, inverse bool) *volume.CVolume3 {
	shape := src.Shape
	mx, my, mz := shape[0], shape[1], shape[2]

	dst := src.Clone()

	step := func(cfft *fourier.CmplxFFT, dst, src []complex128) {
		if inverse {
			cfft.Sequence(dst, src)
		} else {
			cfft.Coefficients(dst, src)
		}
	}

	// Axis 0.
	pool.ParallelFor(my*mz, func(lo, hi int) {
		cfft := fourier.NewCmplxFFT(mx)
		line := make([]complex128, mx)
		out := make([]complex128, mx)

		for idx := lo; idx < hi; idx++ {
			j, k := idx/mz, idx%mz
			for i := 0; i < mx; i++ {
				line[i] = dst.At(i, j, k)
			}
			step(cfft, out, line)
			for i := 0; i < mx; i++ {
				dst.Set(i, j, k, out[i])
			}
		}
	})

	// Axis 1.
	pool.ParallelFor(mx*mz, func(lo, hi int) {
		cfft := fourier.NewCmplxFFT(my)
		line := make([]complex128, my)
		out := make([]complex128, my)

		for idx := lo; idx < hi; idx++ {
			i, k := idx/mz, idx%mz
			for j := 0; j < my; j++ {
				line[j] = dst.At(i, j, k)
			}
			step(cfft, out, line)
			for j := 0; j < my; j++ {
				dst.Set(i, j, k, out[j])
			}
		}
	})

	// Axis 2: contiguous.
	pool.ParallelFor(mx*my, func(lo, hi int) {
		cfft := fourier.NewCmplxFFT(mz)
		out := make([]complex128, mz)

		for idx := lo; idx < hi; idx++ {
			i, j := idx/my, idx%my
			off := dst.Index(i, j, 0)
			row := dst.Data[off : off+mz]
			step(cfft, out, row)
			copy(row, out)
		}
	})

	if inverse {
		scale := 1.0 / complex(float64(mx*my*mz), 0)
		pool.ParallelFor(len(dst.Data), func(lo, hi int) {
			for i := lo; i < hi; i++ {
				dst.Data[i] *= scale
			}
		})
	}

	return dst
}
