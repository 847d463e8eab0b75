package qsm

import "math"

// invertKernel assembles iD(D) per spec.md §4.7. gamma is only read when
// method == Tikh and reg != RegIdentity, and must be the same length as
// d. strength is Thr for TKD/TSVD, Lambda for Tikh.
func invertKernel(d []float64, method Method, reg Reg, strength float64, gamma []float64) []float64 {
	if strength == 0 {
		return pseudoInverse(d)
	}

	switch method {
	case TKD:
		return tkdInverse(d, strength)
	case TSVD:
		return tsvdInverse(d, strength)
	default:
		if reg == RegIdentity {
			return tikhIdentityInverse(d, strength)
		}
		return tikhRegInverse(d, gamma, strength)
	}
}

// pseudoInverse is iD = 1/D where D != 0, else 0 — the lambda == 0 path
// shared by every method.
func pseudoInverse(d []float64) []float64 {
	out := make([]float64, len(d))
	for i, v := range d {
		if v != 0 {
			out[i] = 1 / v
		}
	}
	return out
}

// tkdInverse: iD = 1/D where |D| > lambda; elsewhere iD = sign(D)/lambda.
func tkdInverse(d []float64, lambda float64) []float64 {
	out := make([]float64, len(d))
	for i, v := range d {
		if math.Abs(v) > lambda {
			out[i] = 1 / v
		} else {
			out[i] = math.Copysign(1/lambda, v)
		}
	}
	return out
}

// tsvdInverse: iD = 1/D where |D| > lambda; elsewhere iD = 0.
func tsvdInverse(d []float64, lambda float64) []float64 {
	out := make([]float64, len(d))
	for i, v := range d {
		if math.Abs(v) > lambda {
			out[i] = 1 / v
		}
	}
	return out
}

// tikhIdentityInverse: iD = D / (D^2 + lambda).
func tikhIdentityInverse(d []float64, lambda float64) []float64 {
	out := make([]float64, len(d))
	for i, v := range d {
		denom := v*v + lambda
		if denom != 0 {
			out[i] = v / denom
		}
	}
	return out
}

// tikhRegInverse: iD = D / (D^2 + lambda*Gamma), with iD = 0 wherever the
// denominator is zero.
func tikhRegInverse(d, gamma []float64, lambda float64) []float64 {
	out := make([]float64, len(d))
	for i, v := range d {
		denom := v*v + lambda*gamma[i]
		if denom != 0 {
			out[i] = v / denom
		}
	}
	return out
}
