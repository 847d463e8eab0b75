// Package kernel builds the differential kernels (C6) the direct
// solvers invert: the magnetic dipole kernel (k-space or i-space form),
// the Laplacian kernel, and the gradient-magnitude kernel.
package kernel

import (
	"math"

	"qsmcore/pkg/parallel"
	"qsmcore/pkg/psf"
	"qsmcore/pkg/qsmerr"
	"qsmcore/pkg/volume"
)

// freq1D returns the DFT frequency of bin idx for an axis of length m
// spaced by voxel size v, with the standard wraparound for bins past the
// Nyquist index (idx > m/2 maps to idx-m).
func freq1D(idx, m int, v float64) float64 {
	signed := idx
	if idx > m/2 {
		signed = idx - m
	}
	return float64(signed) / (v * float64(m))
}

// DipoleK builds the dipole kernel directly on the half-complex grid
// (spec.md §4.6's k-space method): D(K) = 1/3 - (K.b)^2/|K|^2, D(0) = 0.
func DipoleK(half volume.Shape3, vsz volume.VoxelSize, bdir volume.DirectionVector) (*volume.Volume3[float64], error) {
	if !vsz.Valid() {
		return nil, qsmerr.Value("vsz", "voxel size must be positive and finite")
	}
	if !bdir.Valid() {
		return nil, qsmerr.Value("bdir", "direction vector must be non-zero and finite")
	}
	b := bdir.Normalized()

	out := volume.NewVolume3[float64](half)
	mx, my, mz := half[0], half[1], half[2]
	fullMx := 2 * (mx - 1)

	for kx := 0; kx < mx; kx++ {
		kxf := float64(kx) / (vsz[0] * float64(fullMx))
		for ky := 0; ky < my; ky++ {
			kyf := freq1D(ky, my, vsz[1])
			for kz := 0; kz < mz; kz++ {
				kzf := freq1D(kz, mz, vsz[2])

				normSq := kxf*kxf + kyf*kyf + kzf*kzf
				var d float64
				if normSq > 0 {
					kdotb := kxf*b[0] + kyf*b[1] + kzf*b[2]
					d = 1.0/3.0 - (kdotb*kdotb)/normSq
				}
				out.Set(kx, ky, kz, d)
			}
		}
	}

	return out, nil
}

// DipoleI builds the dipole kernel in i-space (spec.md §4.6's i/ispace
// method): the spatial PSF d(r) = (3(r.b)^2 - |r|^2) / (4*pi*|r|^5) is
// synthesized on a small cube and converted via psf.ToOTF. The cube
// half-width is fixed at 2 voxels per axis (a 5x5x5 support), the
// smallest odd cube commonly used for the dipole's near-field response
// in the corpus's shearlet-generator sizing style
// (pkg/shearlet/transform.go builds its generators on a small fixed
// grid rather than deriving a size from scale parameters); see
// DESIGN.md for the open-question rationale.
func DipoleI(pool *parallel.Pool, out volume.Shape3, vsz volume.VoxelSize, bdir volume.DirectionVector, rfft bool) (psf.Result[float64], error) {
	if !vsz.Valid() {
		return psf.Result[float64]{}, qsmerr.Value("vsz", "voxel size must be positive and finite")
	}
	if !bdir.Valid() {
		return psf.Result[float64]{}, qsmerr.Value("bdir", "direction vector must be non-zero and finite")
	}
	b := bdir.Normalized()

	const hw = 2
	size := 2*hw + 1
	p := volume.NewVolume3[float64](volume.Shape3{size, size, size})

	for i := 0; i < size; i++ {
		rx := float64(i-hw) * vsz[0]
		for j := 0; j < size; j++ {
			ry := float64(j-hw) * vsz[1]
			for k := 0; k < size; k++ {
				rz := float64(k-hw) * vsz[2]

				r2 := rx*rx + ry*ry + rz*rz
				if r2 == 0 {
					p.Set(i, j, k, 0)
					continue
				}
				rdotb := rx*b[0] + ry*b[1] + rz*b[2]
				r5 := r2 * r2 * math.Sqrt(r2)
				p.Set(i, j, k, (3*rdotb*rdotb-r2)/(4*math.Pi*r5))
			}
		}
	}

	return psf.ToOTF(pool, p, out, rfft)
}

// laplacianPSF assembles the combined 3x3x3 spatial PSF {1,-2,1}/v^2 per
// axis (spec.md §4.6), superposed into one kernel before transforming.
// negative negates the PSF before the caller transforms it.
func laplacianPSF(vsz volume.VoxelSize, negative bool) *volume.Volume3[float64] {
	p := volume.NewVolume3[float64](volume.Shape3{3, 3, 3})
	sign := 1.0
	if negative {
		sign = -1.0
	}

	center := -2.0 * (1/(vsz[0]*vsz[0]) + 1/(vsz[1]*vsz[1]) + 1/(vsz[2]*vsz[2]))
	p.Set(1, 1, 1, sign*center)
	p.Set(0, 1, 1, sign/(vsz[0]*vsz[0]))
	p.Set(2, 1, 1, sign/(vsz[0]*vsz[0]))
	p.Set(1, 0, 1, sign/(vsz[1]*vsz[1]))
	p.Set(1, 2, 1, sign/(vsz[1]*vsz[1]))
	p.Set(1, 1, 0, sign/(vsz[2]*vsz[2]))
	p.Set(1, 1, 2, sign/(vsz[2]*vsz[2]))

	return p
}

// Laplacian builds the Laplacian kernel via PSF->OTF.
func Laplacian(pool *parallel.Pool, out volume.Shape3, vsz volume.VoxelSize, negative, rfft bool) (psf.Result[float64], error) {
	if !vsz.Valid() {
		return psf.Result[float64]{}, qsmerr.Value("vsz", "voxel size must be positive and finite")
	}
	return psf.ToOTF(pool, laplacianPSF(vsz, negative), out, rfft)
}

// gradientAxisPSF returns the 2-tap forward-difference PSF {-1, 1}/v for
// one axis, embedded in a shape-1 cube along the other two axes.
func gradientAxisPSF(axis int, v float64) *volume.Volume3[float64] {
	shape := volume.Shape3{1, 1, 1}
	shape[axis] = 2
	p := volume.NewVolume3[float64](shape)
	switch axis {
	case 0:
		p.Set(0, 0, 0, -1/v)
		p.Set(1, 0, 0, 1/v)
	case 1:
		p.Set(0, 0, 0, -1/v)
		p.Set(0, 1, 0, 1/v)
	default:
		p.Set(0, 0, 0, -1/v)
		p.Set(0, 0, 1, 1/v)
	}
	return p
}

// Gradient builds the gradient-magnitude kernel Sum_i |G_i|^2 on the
// spectral grid (spec.md §4.6), where each G_i is the forward
// first-difference kernel along axis i.
func Gradient(pool *parallel.Pool, out volume.Shape3, vsz volume.VoxelSize, rfft bool) (*volume.Volume3[float64], error) {
	if !vsz.Valid() {
		return nil, qsmerr.Value("vsz", "voxel size must be positive and finite")
	}

	gridShape := out
	if rfft {
		gridShape = out.HalfComplex()
	}
	mag := volume.NewVolume3[float64](gridShape)

	for axis := 0; axis < 3; axis++ {
		res, err := psf.ToOTF(pool, gradientAxisPSF(axis, vsz[axis]), out, rfft)
		if err != nil {
			return nil, err
		}
		addAbsSq(mag, res)
	}

	return mag, nil
}

func addAbsSq(mag *volume.Volume3[float64], res psf.Result[float64]) {
	if res.Real != nil {
		for i, v := range res.Real.Data {
			mag.Data[i] += v * v
		}
		return
	}
	for i, c := range res.Complex.Data {
		re, im := real(c), imag(c)
		mag.Data[i] += re*re + im*im
	}
}
