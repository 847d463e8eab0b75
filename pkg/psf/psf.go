// Package psf implements PSF -> OTF conversion (C5): zero-pad a small
// point-spread function, circular-shift its center to the origin, run
// the forward transform, and clean up roundoff-level imaginary residue
// when the source is real.
package psf

import (
	"math"

	"qsmcore/pkg/fftplan"
	"qsmcore/pkg/parallel"
	"qsmcore/pkg/qsmerr"
	"qsmcore/pkg/volume"
)

// Result holds the optical transfer function produced by ToOTF. Exactly
// one of Real or Complex is non-nil: Real is populated when T is real,
// rfft was requested, and the transform's imaginary part was
// indistinguishable from roundoff; Complex otherwise.
type Result[T volume.Real] struct {
	Real    *volume.Volume3[T]
	Complex *volume.CVolume3
}

// ToOTF implements spec.md §4.5. k is the point-spread function; out is
// the target FFT shape. rfft selects a real-to-complex transform (Real
// result when suppression succeeds) over a full complex-to-complex
// transform.
func ToOTF[T volume.Real](pool *parallel.Pool, k *volume.Volume3[T], out volume.Shape3, rfft bool) (Result[T], error) {
	if !out.GE(k.Shape) {
		return Result[T]{}, qsmerr.Shape("out", "out shape must be >= psf shape on every axis")
	}

	shifted := shiftedPlacement(pool, k, out)

	if rfft {
		buf64 := toFloat64(shifted)
		plan := fftplan.New(pool, out)
		spec := plan.Forward(buf64)

		if suppressImaginary(spec, out, epsilonFor[T]()) {
			return Result[T]{Real: realPartAs[T](spec)}, nil
		}
		return Result[T]{Complex: spec}, nil
	}

	cbuf := toComplex(shifted)
	spec := fftplan.ForwardComplex(pool, cbuf)
	return Result[T]{Complex: spec}, nil
}

// shiftedPlacement zero-pads k into shape out, places it at the origin,
// then circular-shifts by (-floor(Sx/2), -floor(Sy/2), -floor(Sz/2)) so
// the PSF's conceptual center lands at index (0, 0, 0), as required by
// DFT convolution semantics.
func shiftedPlacement[T volume.Real](pool *parallel.Pool, k *volume.Volume3[T], out volume.Shape3) *volume.Volume3[T] {
	s := k.Shape
	shift := volume.Shape3{s[0] / 2, s[1] / 2, s[2] / 2}

	buf := volume.NewVolume3[T](out)
	pool.ParallelFor(s[0], func(lo, hi int) {
		for i := lo; i < hi; i++ {
			for j := 0; j < s[1]; j++ {
				for kk := 0; kk < s[2]; kk++ {
					buf.Set(i, j, kk, k.At(i, j, kk))
				}
			}
		}
	})

	shifted := volume.NewVolume3[T](out)
	pool.ParallelFor(out[0], func(lo, hi int) {
		for i := lo; i < hi; i++ {
			si := mod(i+shift[0], out[0])
			for j := 0; j < out[1]; j++ {
				sj := mod(j+shift[1], out[1])
				for kk := 0; kk < out[2]; kk++ {
					sk := mod(kk+shift[2], out[2])
					shifted.Set(i, j, kk, buf.At(si, sj, sk))
				}
			}
		}
	})

	return shifted
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

func toFloat64[T volume.Real](v *volume.Volume3[T]) *volume.Volume3[float64] {
	out := volume.NewVolume3[float64](v.Shape)
	for i, x := range v.Data {
		out.Data[i] = float64(x)
	}
	return out
}

func toComplex[T volume.Real](v *volume.Volume3[T]) *volume.CVolume3 {
	out := volume.NewCVolume3(v.Shape)
	for i, x := range v.Data {
		out.Data[i] = complex(float64(x), 0)
	}
	return out
}

func realPartAs[T volume.Real](spec *volume.CVolume3) *volume.Volume3[T] {
	out := volume.NewVolume3[T](spec.Shape)
	for i, c := range spec.Data {
		out.Data[i] = T(real(c))
	}
	return out
}

func epsilonFor[T volume.Real]() float64 {
	var zero T
	switch any(zero).(type) {
	case float32:
		return 1.1920929e-07
	default:
		return 2.220446049250313e-16
	}
}

// suppressImaginary implements the criterion of spec.md §4.5 step 5 /
// §3's invariant: max|Im(K)| <= (N . sum(log2 Mi)) . epsT . max|K|^2.
// Per spec.md §9's open question, this intentionally mixes magnitude and
// squared magnitude (max|K| then squared, equivalently max|K|^2 taken
// elementwise) rather than "fixing" the criterion.
func suppressImaginary(spec *volume.CVolume3, shape volume.Shape3, epsT float64) bool {
	var maxIm, maxAbs float64
	for _, c := range spec.Data {
		if im := math.Abs(imag(c)); im > maxIm {
			maxIm = im
		}
		if a := cabs(c); a > maxAbs {
			maxAbs = a
		}
	}

	n := float64(shape.Len())
	sumLog2 := math.Log2(float64(shape[0])) + math.Log2(float64(shape[1])) + math.Log2(float64(shape[2]))
	threshold := n * sumLog2 * epsT * maxAbs * maxAbs

	return maxIm <= threshold
}

func cabs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}
