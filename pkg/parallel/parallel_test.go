package parallel

import "testing"

func TestFillSmall(t *testing.T) {
	p := NewPool(4)
	y := make([]int, 10)
	Fill(p, y, 7)
	for i, v := range y {
		if v != 7 {
			t.Fatalf("y[%d] = %d, want 7", i, v)
		}
	}
}

func TestFillLarge(t *testing.T) {
	p := NewPool(4)
	y := make([]int, 4096)
	Fill(p, y, 3)
	for i, v := range y {
		if v != 3 {
			t.Fatalf("y[%d] = %d, want 3", i, v)
		}
	}
}

func TestCopy(t *testing.T) {
	p := NewPool(4)
	x := make([]float64, 2048)
	for i := range x {
		x[i] = float64(i)
	}
	y := make([]float64, 2048)
	Copy(p, y, x)
	for i := range x {
		if y[i] != x[i] {
			t.Fatalf("y[%d] = %v, want %v", i, y[i], x[i])
		}
	}
}

func TestMap(t *testing.T) {
	p := NewPool(4)
	x := make([]int, 3000)
	for i := range x {
		x[i] = i
	}
	y := make([]int, 3000)
	Map(p, y, x, func(v int) int { return v * 2 })
	for i := range x {
		if y[i] != x[i]*2 {
			t.Fatalf("y[%d] = %d, want %d", i, y[i], x[i]*2)
		}
	}
}

func TestParallelForEmpty(t *testing.T) {
	p := NewPool(4)
	called := false
	p.ParallelFor(0, func(lo, hi int) { called = true })
	if called {
		t.Fatal("ParallelFor(0, ...) should not invoke fn")
	}
}

func TestParallelForCoversWholeRange(t *testing.T) {
	p := NewPool(8)
	const n = 10000
	seen := make([]int, n)
	p.ParallelFor(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			seen[i]++
		}
	})
	for i, c := range seen {
		if c != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, c)
		}
	}
}

func TestResizeAndReset(t *testing.T) {
	p := NewPool(2)
	p.Resize(8)
	if p.Size() != 8 {
		t.Fatalf("Size() = %d, want 8", p.Size())
	}
	p.Reset()
	if p.Size() != 8 {
		t.Fatalf("Reset changed Size() to %d, want 8", p.Size())
	}
	p.Resize(0)
	if p.Size() != 1 {
		t.Fatalf("Resize(0) clamped to %d, want 1", p.Size())
	}
}
