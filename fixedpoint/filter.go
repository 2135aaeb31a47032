package fixedpoint

// Arith is the method set every Q-format type above implements. The
// recursive filter evaluator is written once against it instead of
// once per width — the three Q-format types are otherwise identical
// in shape and differ only in how Mul shifts its intermediate.
type Arith[T any] interface {
	Add(T) T
	Mul(T) T
}

// RecursiveFilter holds the per-call state of a generalized biquad-style
// IIR: NB input taps and NA output taps. Axes that run the same
// coefficient set share B/A but each has its own instance, and so its
// own state. StateX/StateY are shift registers —
// index 0 is the most recent sample — sized to len(B) and len(A).
//
// This is the one state shape both the band-pass PIM filter (5 input
// taps, 4 output taps, §4.3) and any future filter with a different
// tap count reuse; coefficients are supplied by the caller and never
// mutated here.
type RecursiveFilter[T Arith[T]] struct {
	B []T
	A []T

	StateX []T
	StateY []T
}

// NewRecursiveFilter allocates zeroed state sized to the coefficient
// vectors. B and A are retained by reference; callers pass immutable,
// package-level coefficient tables.
func NewRecursiveFilter[T Arith[T]](b, a []T) *RecursiveFilter[T] {
	return &RecursiveFilter[T]{
		B:      b,
		A:      a,
		StateX: make([]T, len(b)),
		StateY: make([]T, len(a)),
	}
}

// Eval shifts x into StateX, computes y = Σ b[i]*StateX[i] + Σ a[i]*StateY[i],
// shifts y into StateY, and returns y. One call processes one sample.
func (f *RecursiveFilter[T]) Eval(x T) T {
	shiftIn(f.StateX, x)

	var y T
	for i, b := range f.B {
		y = y.Add(b.Mul(f.StateX[i]))
	}
	for i, a := range f.A {
		y = y.Add(a.Mul(f.StateY[i]))
	}

	shiftIn(f.StateY, y)
	return y
}

// Reset zeroes both state vectors without reallocating, for reuse
// across engine resets (time-travel, enable/disable toggles).
func (f *RecursiveFilter[T]) Reset() {
	var zero T
	for i := range f.StateX {
		f.StateX[i] = zero
	}
	for i := range f.StateY {
		f.StateY[i] = zero
	}
}

// shiftIn shifts state right by one element and inserts v at index 0.
func shiftIn[T any](state []T, v T) {
	for i := len(state) - 1; i > 0; i-- {
		state[i] = state[i-1]
	}
	if len(state) > 0 {
		state[0] = v
	}
}
