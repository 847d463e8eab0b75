// Package qsm implements the direct deconvolution solvers (C7) and the
// shape/option validation (C9) that gate them: truncated-k-division,
// truncated-SVD, and Tikhonov (identity/gradient/laplacian) variants
// sharing one pad -> FFT -> invert -> FFT -> unpad pipeline.
package qsm

import "qsmcore/pkg/qsmerr"

// DKernel selects how the dipole kernel is synthesized.
type DKernel int

const (
	// DKernelK builds the dipole kernel directly on the k-space grid.
	DKernelK DKernel = iota
	// DKernelI synthesizes the dipole as a small spatial PSF and
	// converts it via PSF->OTF.
	DKernelI
)

func (d DKernel) valid() bool { return d == DKernelK || d == DKernelI }

// Method selects the inverse-kernel assembly strategy.
type Method int

const (
	// TKD is truncated k-division.
	TKD Method = iota
	// TSVD is truncated-SVD thresholding.
	TSVD
	// Tikh is Tikhonov regularization.
	Tikh
)

func (m Method) valid() bool { return m == TKD || m == TSVD || m == Tikh }

// Reg selects the Tikhonov regularizer; only meaningful when Method ==
// Tikh.
type Reg int

const (
	// RegIdentity is plain Tikhonov: iD = D / (D^2 + lambda).
	RegIdentity Reg = iota
	// RegGradient regularizes by the gradient-magnitude kernel.
	RegGradient
	// RegLaplacian regularizes by the squared Laplacian kernel.
	RegLaplacian
)

func (r Reg) valid() bool { return r == RegIdentity || r == RegGradient || r == RegLaplacian }

// Options configures a solve. Pad[i] >= 0 pads axis i to at least
// N[i] + max(Pad[i], 1) - 1 voxels before fast-FFT rounding, so Pad[i]
// of 0 or 1 adds no extra voxels; Pad[i] < 0 requests no padding on that
// axis (spec.md §4.2's ksz[i] < 0).
type Options struct {
	Pad     [3]int
	BDir    [3]float64
	DKernel DKernel
	Method  Method

	// Thr is the threshold used by TKD and TSVD.
	Thr float64

	// Lambda and Reg are used by Tikh.
	Lambda float64
	Reg    Reg
}

func (o Options) validate() error {
	if !o.DKernel.valid() {
		return qsmerr.Option("Dkernel", "must be one of {k, kspace, i, ispace}")
	}
	if !o.Method.valid() {
		return qsmerr.Option("method", "must be one of {tkd, tsvd, tikh}")
	}
	if o.Method == Tikh && !o.Reg.valid() {
		return qsmerr.Option("reg", "must be one of {identity, gradient, laplacian}")
	}
	return nil
}
