package qsm

import (
	"qsmcore/pkg/fftplan"
	"qsmcore/pkg/fftsize"
	"qsmcore/pkg/kernel"
	"qsmcore/pkg/pad"
	"qsmcore/pkg/parallel"
	"qsmcore/pkg/psf"
	"qsmcore/pkg/volume"
)

// Solve3 runs the direct-solver pipeline (C7) on a single field map.
func Solve3(pool *parallel.Pool, f *volume.Volume3[float64], mask *volume.Mask3, vsz volume.VoxelSize, opts Options) (*volume.Volume3[float64], error) {
	if err := validateShapes(f.Shape, mask, vsz, opts); err != nil {
		return nil, err
	}

	core, err := newCore(pool, f.Shape, mask, vsz, opts)
	if err != nil {
		return nil, err
	}
	return core.solveEcho(f), nil
}

// Solve4 runs Solve3's pipeline independently over every echo of a 4D
// field map, sharing one padded plan, dipole kernel, and inverse-kernel
// assembly across echoes (spec.md §4.7: "the kernel and its inverse are
// built once per call, not once per echo").
func Solve4(pool *parallel.Pool, f *volume.Volume4[float64], mask *volume.Mask3, vsz volume.VoxelSize, opts Options) (*volume.Volume4[float64], error) {
	if err := validateShapes(f.Shape, mask, vsz, opts); err != nil {
		return nil, err
	}

	core, err := newCore(pool, f.Shape, mask, vsz, opts)
	if err != nil {
		return nil, err
	}

	out := volume.NewVolume4[float64](f.Shape, f.Echoes)
	for t := 0; t < f.Echoes; t++ {
		rec := core.solveEcho(f.Echo(t))
		copy(out.Echo(t).Data, rec.Data)
	}
	return out, nil
}

// solverCore holds the shared, echo-independent state of one solve: the
// padded FFT plan, the padded mask, and the assembled inverse kernel.
type solverCore struct {
	pool   *parallel.Pool
	plan   *fftplan.Plan
	mask   *volume.Mask3
	iD     []float64
	inputS volume.Shape3
}

func newCore(pool *parallel.Pool, fieldShape volume.Shape3, mask *volume.Mask3, vsz volume.VoxelSize, opts Options) (*solverCore, error) {
	padded := volume.Shape3(fftsize.FastFFTSize([3]int(fieldShape), opts.Pad, true))
	plan := fftplan.New(pool, padded)

	d, err := dipoleKernel(pool, plan, vsz, opts)
	if err != nil {
		return nil, err
	}

	var gamma []float64
	if opts.Method == Tikh && opts.Reg != RegIdentity {
		gamma, err = regularizerGamma(pool, padded, vsz, opts.Reg)
		if err != nil {
			return nil, err
		}
	}

	strength := opts.Thr
	if opts.Method == Tikh {
		strength = opts.Lambda
	}
	iD := invertKernel(d, opts.Method, opts.Reg, strength, gamma)

	paddedMask, err := pad.PadMask(pool, mask, padded, pad.Fill, false)
	if err != nil {
		return nil, err
	}

	return &solverCore{pool: pool, plan: plan, mask: paddedMask, iD: iD, inputS: fieldShape}, nil
}

// dipoleKernel builds D on the plan's half-complex grid per opts.DKernel.
func dipoleKernel(pool *parallel.Pool, plan *fftplan.Plan, vsz volume.VoxelSize, opts Options) ([]float64, error) {
	half := plan.HalfComplexShape()
	bdir := volume.DirectionVector(opts.BDir)

	if opts.DKernel == DKernelK {
		d, err := kernel.DipoleK(half, vsz, bdir)
		if err != nil {
			return nil, err
		}
		return d.Data, nil
	}

	res, err := kernel.DipoleI(pool, plan.Shape(), vsz, bdir, true)
	if err != nil {
		return nil, err
	}
	return toRealKernel(res), nil
}

// regularizerGamma builds Γ on the half-complex grid for the Tikhonov
// gradient and laplacian regularizers. Gamma is read as |ΓK|^2: for
// RegGradient, kernel.Gradient already returns Sum_i |G_i|^2 (the
// div-of-grad identity means that sum is itself the squared-magnitude
// term spec.md §4.7 calls for), so it is used directly; for
// RegLaplacian, the Laplacian kernel's own spectrum is squared
// elementwise.
func regularizerGamma(pool *parallel.Pool, padded volume.Shape3, vsz volume.VoxelSize, reg Reg) ([]float64, error) {
	if reg == RegGradient {
		g, err := kernel.Gradient(pool, padded, vsz, true)
		if err != nil {
			return nil, err
		}
		return g.Data, nil
	}

	res, err := kernel.Laplacian(pool, padded, vsz, false, true)
	if err != nil {
		return nil, err
	}
	lk := toRealKernel(res)
	out := make([]float64, len(lk))
	for i, v := range lk {
		out[i] = v * v
	}
	return out, nil
}

func toRealKernel(res psf.Result[float64]) []float64 {
	if res.Real != nil {
		return res.Real.Data
	}
	out := make([]float64, len(res.Complex.Data))
	for i, c := range res.Complex.Data {
		out[i] = real(c)
	}
	return out
}

// solveEcho runs one field map through the padded plan: forward FFT,
// pointwise multiply by the inverse kernel, inverse FFT, mask, unpad.
func (c *solverCore) solveEcho(f *volume.Volume3[float64]) *volume.Volume3[float64] {
	padded, _ := pad.Pad(c.pool, f, c.plan.Shape(), pad.Fill, 0)

	spec := c.plan.Forward(padded)
	c.pool.ParallelFor(len(spec.Data), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			spec.Data[i] *= complex(c.iD[i], 0)
		}
	})

	rec := c.plan.Inverse(spec)
	c.pool.ParallelFor(len(rec.Data), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if !c.mask.Data[i] {
				rec.Data[i] = 0
			}
		}
	})

	out, _ := pad.Unpad(c.pool, rec, c.inputS)
	return out
}
