// Package volume defines the array types that flow through the QSM
// numerical core: row-major 3D/4D scalar volumes, boolean masks, voxel
// sizes, and direction vectors. It is the Go-native rework of the
// teacher's internal/models.Volume, widened from a single concrete
// []float64 field to a small generic family so the core can serve both
// float32 field maps and float64 test fixtures.
package volume

import "math"

// Real is the scalar type constraint accepted by Volume3/Volume4.
type Real interface {
	~float32 | ~float64
}

// Shape3 is a 3-tuple of extents (Nx, Ny, Nz).
type Shape3 [3]int

// Len returns the total element count Nx*Ny*Nz.
func (s Shape3) Len() int { return s[0] * s[1] * s[2] }

// GE reports whether s is componentwise >= other.
func (s Shape3) GE(other Shape3) bool {
	return s[0] >= other[0] && s[1] >= other[1] && s[2] >= other[2]
}

// Eq reports componentwise equality.
func (s Shape3) Eq(other Shape3) bool { return s == other }

// HalfComplex returns the (Mx/2+1, My, Mz) half-complex shape derived
// from a real-FFT of a volume with this shape.
func (s Shape3) HalfComplex() Shape3 {
	return Shape3{s[0]/2 + 1, s[1], s[2]}
}

// Volume3 is an ordered, row-major logical array of a real scalar type T
// with extents (Nx, Ny, Nz). Index (i, j, k) is stored at
// i*Ny*Nz + j*Nz + k.
type Volume3[T Real] struct {
	Data  []T
	Shape Shape3
}

// NewVolume3 allocates a zero-filled volume of the given shape.
func NewVolume3[T Real](shape Shape3) *Volume3[T] {
	return &Volume3[T]{Data: make([]T, shape.Len()), Shape: shape}
}

// At returns the value at logical index (i, j, k).
func (v *Volume3[T]) At(i, j, k int) T {
	return v.Data[v.Index(i, j, k)]
}

// Set writes the value at logical index (i, j, k).
func (v *Volume3[T]) Set(i, j, k int, val T) {
	v.Data[v.Index(i, j, k)] = val
}

// Index converts a logical (i, j, k) index into a flat offset into Data.
func (v *Volume3[T]) Index(i, j, k int) int {
	return (i*v.Shape[1]+j)*v.Shape[2] + k
}

// Clone returns a deep copy.
func (v *Volume3[T]) Clone() *Volume3[T] {
	out := &Volume3[T]{Data: make([]T, len(v.Data)), Shape: v.Shape}
	copy(out.Data, v.Data)
	return out
}

// Volume4 extends Volume3 with an echo axis of extent Ne. Echo t selects
// a contiguous Volume3 view over Data[t*stride : (t+1)*stride].
type Volume4[T Real] struct {
	Data   []T
	Shape  Shape3
	Echoes int
}

// NewVolume4 allocates a zero-filled 4D volume.
func NewVolume4[T Real](shape Shape3, echoes int) *Volume4[T] {
	return &Volume4[T]{Data: make([]T, shape.Len()*echoes), Shape: shape, Echoes: echoes}
}

// Echo returns a Volume3 view over echo t's contiguous slab. The
// returned volume shares storage with v.
func (v *Volume4[T]) Echo(t int) *Volume3[T] {
	stride := v.Shape.Len()
	return &Volume3[T]{Data: v.Data[t*stride : (t+1)*stride], Shape: v.Shape}
}

// Mask3 is a row-major boolean volume sharing Volume3's index layout.
type Mask3 struct {
	Data  []bool
	Shape Shape3
}

// NewMask3 allocates an all-false mask of the given shape.
func NewMask3(shape Shape3) *Mask3 {
	return &Mask3{Data: make([]bool, shape.Len()), Shape: shape}
}

// At returns the value at logical index (i, j, k).
func (m *Mask3) At(i, j, k int) bool { return m.Data[m.Index(i, j, k)] }

// Set writes the value at logical index (i, j, k).
func (m *Mask3) Set(i, j, k int, val bool) { m.Data[m.Index(i, j, k)] = val }

// Index converts a logical (i, j, k) index into a flat offset into Data.
func (m *Mask3) Index(i, j, k int) int { return (i*m.Shape[1]+j)*m.Shape[2] + k }

// Clone returns a deep copy.
func (m *Mask3) Clone() *Mask3 {
	out := &Mask3{Data: make([]bool, len(m.Data)), Shape: m.Shape}
	copy(out.Data, m.Data)
	return out
}

// CVolume3 is a row-major complex128 volume sharing Volume3's index
// layout. It is used for FFT spectra: the full-complex (Mx, My, Mz)
// grid produced by a complex-to-complex transform, or the half-complex
// (Mx/2+1, My, Mz) grid produced by a real-to-complex transform.
type CVolume3 struct {
	Data  []complex128
	Shape Shape3
}

// NewCVolume3 allocates a zero-filled complex volume of the given shape.
func NewCVolume3(shape Shape3) *CVolume3 {
	return &CVolume3{Data: make([]complex128, shape.Len()), Shape: shape}
}

// At returns the value at logical index (i, j, k).
func (v *CVolume3) At(i, j, k int) complex128 { return v.Data[v.Index(i, j, k)] }

// Set writes the value at logical index (i, j, k).
func (v *CVolume3) Set(i, j, k int, val complex128) { v.Data[v.Index(i, j, k)] = val }

// Index converts a logical (i, j, k) index into a flat offset into Data.
func (v *CVolume3) Index(i, j, k int) int { return (i*v.Shape[1]+j)*v.Shape[2] + k }

// Clone returns a deep copy.
func (v *CVolume3) Clone() *CVolume3 {
	out := &CVolume3{Data: make([]complex128, len(v.Data)), Shape: v.Shape}
	copy(out.Data, v.Data)
	return out
}

// VoxelSize is the physical extent of one voxel (vx, vy, vz), in
// millimetres; all three components must be positive and finite.
type VoxelSize [3]float64

// Valid reports whether every component is positive and finite.
func (v VoxelSize) Valid() bool {
	for _, c := range v {
		if c <= 0 || math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// DirectionVector is the (bx, by, bz) main-field direction. The zero
// vector is invalid; Normalized returns a unit-length copy of a non-zero
// vector and SqMag its square magnitude. Neither caches its result.
type DirectionVector [3]float64

// SqMag returns bx^2 + by^2 + bz^2.
func (b DirectionVector) SqMag() float64 {
	return b[0]*b[0] + b[1]*b[1] + b[2]*b[2]
}

// Valid reports whether b is non-zero and finite.
func (b DirectionVector) Valid() bool {
	for _, c := range b {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return b.SqMag() > 0
}

// Normalized returns b scaled to unit length. Callers must check Valid
// first; Normalized panics on the zero vector.
func (b DirectionVector) Normalized() DirectionVector {
	m := math.Sqrt(b.SqMag())
	if m == 0 {
		panic("volume: Normalized called on zero DirectionVector")
	}
	return DirectionVector{b[0] / m, b[1] / m, b[2] / m}
}
