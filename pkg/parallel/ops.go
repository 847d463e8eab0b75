package parallel

// Fill sets every element of y to v using p's ParallelFor.
func Fill[T any](p *Pool, y []T, v T) {
	p.ParallelFor(len(y), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			y[i] = v
		}
	})
}

// Copy copies x into y elementwise. len(y) must be >= len(x); only
// len(x) elements are copied.
func Copy[T any](p *Pool, y, x []T) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	p.ParallelFor(n, func(lo, hi int) {
		copy(y[lo:hi], x[lo:hi])
	})
}

// Map writes y[i] = f(x[i]) for every index. len(y) must be >= len(x).
func Map[T any](p *Pool, y, x []T, f func(T) T) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	p.ParallelFor(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			y[i] = f(x[i])
		}
	})
}

// MapInto writes y[i] = f(x[i]) where x and y range over different
// element types, e.g. the pointwise multiply of a complex spectrum by a
// real inverse kernel.
func MapInto[S, T any](p *Pool, y []T, x []S, f func(S) T) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	p.ParallelFor(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			y[i] = f(x[i])
		}
	})
}
