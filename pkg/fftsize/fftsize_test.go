package fftsize

import "testing"

func TestIsFast(t *testing.T) {
	cases := map[int]bool{
		1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true,
		9: true, 10: true, 11: false, 13: false, 35: true, 210: true,
	}
	for n, want := range cases {
		if got := IsFast(n); got != want {
			t.Errorf("IsFast(%d) = %v, want %v", n, got, want)
		}
	}
}

func TestFastFFTSizeScenarios(t *testing.T) {
	if got := FastFFTSize([3]int{7, 0, 0}, [3]int{0, -1, -1}, false); got != [3]int{7, 0, 0} {
		t.Errorf("got %v, want {7,0,0}", got)
	}
	if got := FastFFTSize([3]int{7, 0, 0}, [3]int{3, -1, -1}, false); got != [3]int{9, 0, 0} {
		t.Errorf("got %v, want {9,0,0}", got)
	}
	if got := FastFFTSize([3]int{7, 0, 0}, [3]int{3, -1, -1}, true); got != [3]int{10, 0, 0} {
		t.Errorf("got %v, want {10,0,0}", got)
	}
}

func TestFastFFTSizePassthroughAllNegative(t *testing.T) {
	sz := [3]int{5, 6, 7}
	got := FastFFTSize(sz, [3]int{-1, -1, -1}, true)
	if got != sz {
		t.Errorf("got %v, want %v", got, sz)
	}
}

func TestFastFFTSizeMonotoneAndFactored(t *testing.T) {
	sz := [3]int{13, 17, 23}
	ksz := [3]int{5, 4, 6}
	got := FastFFTSize(sz, ksz, true)
	for i := 0; i < 3; i++ {
		want := sz[i] + ksz[i] - 1
		if got[i] < want {
			t.Errorf("axis %d: got %d < minimum %d", i, got[i], want)
		}
		if !IsFast(got[i]) {
			t.Errorf("axis %d: %d is not a fast size", i, got[i])
		}
	}
	if got[0]%2 != 0 {
		t.Errorf("first padded axis %d should be even, got %d", 0, got[0])
	}
}
