package qsm

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"qsmcore/pkg/qsmerr"
	"qsmcore/pkg/volume"
)

// RMSE computes the root-mean-square error between two volumes of equal
// shape (spec.md §6.2's supplemental validation metric for synthetic
// round-trip tests and cmd/qsmdemo's report).
func RMSE(a, b *volume.Volume3[float64]) (float64, error) {
	if a.Shape != b.Shape {
		return 0, qsmerr.Shape("b", "RMSE operands must share a shape")
	}
	n := float64(len(a.Data))
	if n == 0 {
		return 0, nil
	}
	d := floats.Distance(a.Data, b.Data, 2)
	return d / math.Sqrt(n), nil
}

// RelativeError computes ||a - b|| / ||b|| in the L2 norm, 0 when b is
// identically zero.
func RelativeError(a, b *volume.Volume3[float64]) (float64, error) {
	if a.Shape != b.Shape {
		return 0, qsmerr.Shape("b", "RelativeError operands must share a shape")
	}
	denom := floats.Norm(b.Data, 2)
	if denom == 0 {
		return 0, nil
	}
	return floats.Distance(a.Data, b.Data, 2) / denom, nil
}
