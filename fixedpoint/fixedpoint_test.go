package fixedpoint

import "testing"

func TestQ13_3RoundTrip(t *testing.T) {
	// -1.125 = integer -2, fraction 7/8 -> raw = -2*8 + 7 = -9
	v := Q13_3(-9)
	intPart := int16(v) >> q13_3Frac
	if intPart != -2 {
		t.Fatalf("integer part = %d, want -2", intPart)
	}
	fracPart := int16(v) & ((1 << q13_3Frac) - 1)
	if fracPart != 7 {
		t.Fatalf("fraction part = %d, want 7", fracPart)
	}
}

func TestQ13_3Mul(t *testing.T) {
	half := Q13_3FromInt(0) + Q13_3(1<<(q13_3Frac-1)) // 0.5
	two := Q13_3FromInt(2)
	got := half.Mul(two)
	want := Q13_3FromInt(1)
	if got != want {
		t.Fatalf("0.5 * 2 = %v, want %v", got, want)
	}
}

func TestQ15_16MulNegative(t *testing.T) {
	negTwo := Q15_16FromInt(-2)
	three := Q15_16FromInt(3)
	got := negTwo.Mul(three)
	want := Q15_16FromInt(-6)
	if got != want {
		t.Fatalf("-2 * 3 = %v, want %v", got, want)
	}
}

func TestQ31_32MulIdentity(t *testing.T) {
	one := Q31_32FromInt(1)
	v := Q31_32FromInt(12345)
	if got := v.Mul(one); got != v {
		t.Fatalf("v * 1 = %v, want %v", got, v)
	}
}

func TestQ31_32MulNegativeNegative(t *testing.T) {
	a := Q31_32FromInt(-7)
	b := Q31_32FromInt(-6)
	want := Q31_32FromInt(42)
	if got := a.Mul(b); got != want {
		t.Fatalf("-7 * -6 = %v, want %v", got, want)
	}
}

func TestQ31_32MulFraction(t *testing.T) {
	// 1.5 * 1.5 = 2.25, using raw halves instead of FromInt helpers.
	oneAndHalf := Q31_32FromInt(1) + Q31_32(1<<(q31_32Frac-1))
	got := oneAndHalf.Mul(oneAndHalf)
	want := Q31_32FromInt(2) + Q31_32(1<<(q31_32Frac-2))
	if got != want {
		t.Fatalf("1.5 * 1.5 = %v, want %v", got, want)
	}
}
