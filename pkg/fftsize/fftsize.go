// Package fftsize computes "fast" FFT sizes: composites of only the
// primes 2, 3, 5, and 7, which every mixed-radix FFT back-end in the
// corpus (and the one this core wires in pkg/fftplan) runs fastest on.
package fftsize

// fastFactors are the only primes a fast FFT size may factor over.
var fastFactors = [4]int{2, 3, 5, 7}

// IsFast reports whether n factors entirely over {2, 3, 5, 7}.
func IsFast(n int) bool {
	if n < 1 {
		return false
	}
	for _, f := range fastFactors {
		for n%f == 0 {
			n /= f
		}
	}
	return n == 1
}

// NextFast returns the smallest fast size >= n. n < 1 returns 1.
func NextFast(n int) int {
	if n < 1 {
		return 1
	}
	for !IsFast(n) {
		n++
	}
	return n
}

// nextFastEven returns the smallest even fast size >= n.
func nextFastEven(n int) int {
	c := NextFast(n)
	if c%2 == 0 {
		return c
	}
	// Retry up to three increments looking for an even fast size before
	// forcing evenness and re-rounding, per spec.md §4.2.
	for i := 0; i < 3; i++ {
		c = NextFast(c + 1)
		if c%2 == 0 {
			return c
		}
	}
	return NextFast(c + 1)
}

// FastFFTSize computes, for each axis i, the smallest fast size >=
// sz[i] + max(ksz[i], 1) - 1. An axis with ksz[i] < 0 passes sz[i]
// through unchanged. If rfft is true and at least one axis was padded,
// the first such axis is additionally rounded up to the next even fast
// size (real-FFT back-ends require or strongly prefer an even leading
// axis). Returns sz unchanged when every ksz[i] < 0.
func FastFFTSize(sz, ksz [3]int, rfft bool) [3]int {
	out := sz
	firstPadded := -1

	for i := 0; i < 3; i++ {
		if ksz[i] < 0 {
			continue
		}
		k := ksz[i]
		if k < 1 {
			k = 1
		}
		out[i] = NextFast(sz[i] + k - 1)
		if firstPadded < 0 {
			firstPadded = i
		}
	}

	if rfft && firstPadded >= 0 {
		out[firstPadded] = nextFastEven(out[firstPadded])
	}

	return out
}
