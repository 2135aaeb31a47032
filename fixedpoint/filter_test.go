package fixedpoint

import "testing"

// TestRecursiveFilterPassthrough verifies that a trivial filter with
// b=[1] a=[] reproduces its input exactly, i.e. the tap-shifting and
// summation plumbing is wired correctly independent of coefficients.
func TestRecursiveFilterPassthrough(t *testing.T) {
	f := NewRecursiveFilter[Q31_32]([]Q31_32{Q31_32FromInt(1)}, nil)
	for _, n := range []int32{1, 2, 3, -4, 0} {
		in := Q31_32FromInt(n)
		if got := f.Eval(in); got != in {
			t.Fatalf("Eval(%v) = %v, want %v", in, got, in)
		}
	}
}

// TestRecursiveFilterDelay verifies a one-sample-delay filter, b=[0,1],
// confirms state shifting happens before the weighted sum.
func TestRecursiveFilterDelay(t *testing.T) {
	f := NewRecursiveFilter[Q31_32]([]Q31_32{Q31_32FromInt(0), Q31_32FromInt(1)}, nil)
	inputs := []int32{5, 6, 7}
	var prev Q31_32
	for _, n := range inputs {
		in := Q31_32FromInt(n)
		got := f.Eval(in)
		if got != prev {
			t.Fatalf("Eval(%v) = %v, want delayed %v", in, got, prev)
		}
		prev = in
	}
}

func TestRecursiveFilterReset(t *testing.T) {
	f := NewRecursiveFilter[Q31_32]([]Q31_32{Q31_32FromInt(0), Q31_32FromInt(1)}, nil)
	f.Eval(Q31_32FromInt(9))
	f.Reset()
	if got := f.Eval(Q31_32FromInt(0)); got != 0 {
		t.Fatalf("after Reset, delayed tap = %v, want 0", got)
	}
}
