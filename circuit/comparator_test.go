package circuit

import (
	"math/rand"
	"testing"
)

func bitsOf(v int64, n int) []Bit {
	bits := make([]Bit, n)
	for i := 0; i < n; i++ {
		bits[i] = (v>>uint(i))&1 != 0
	}
	return bits
}

func referenceVerdict(a, b int64) (gt, ne bool) {
	return b > a, a != b
}

func TestComparatorExhaustive4Bit(t *testing.T) {
	const n = 4
	c, err := NewComparator(n)
	if err != nil {
		t.Fatalf("NewComparator: %v", err)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	lo := int64(-(1 << (n - 1)))
	hi := int64(1<<(n-1)) - 1

	for a := lo; a <= hi; a++ {
		for b := lo; b <= hi; b++ {
			out, err := c.ComputeOutputs(bitsOf(a, n), bitsOf(b, n))
			if err != nil {
				t.Fatalf("ComputeOutputs(%d,%d): %v", a, b, err)
			}
			wantGt, wantNe := referenceVerdict(a, b)
			if bool(out[0]) != wantGt || bool(out[1]) != wantNe {
				t.Errorf("a=%d b=%d: got (gt=%v,ne=%v), want (gt=%v,ne=%v)",
					a, b, out[0], out[1], wantGt, wantNe)
			}
		}
	}
}

func TestComparatorRandom32Bit(t *testing.T) {
	const n = 32
	c, err := NewComparator(n)
	if err != nil {
		t.Fatalf("NewComparator: %v", err)
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		a := int64(int32(rng.Uint32()))
		b := int64(int32(rng.Uint32()))

		out, err := c.ComputeOutputs(bitsOf(a, n), bitsOf(b, n))
		if err != nil {
			t.Fatalf("ComputeOutputs(%d,%d): %v", a, b, err)
		}
		wantGt, wantNe := referenceVerdict(a, b)
		if bool(out[0]) != wantGt || bool(out[1]) != wantNe {
			t.Errorf("a=%d b=%d: got (gt=%v,ne=%v), want (gt=%v,ne=%v)",
				a, b, out[0], out[1], wantGt, wantNe)
		}
	}
}

func TestComparatorBoundaryValues(t *testing.T) {
	const n = 32
	c, err := NewComparator(n)
	if err != nil {
		t.Fatalf("NewComparator: %v", err)
	}

	maxVal := int64(1<<(n-1)) - 1
	minVal := -int64(1 << (n - 1))

	cases := []struct{ a, b int64 }{
		{minVal, maxVal},
		{maxVal, minVal},
		{maxVal, maxVal},
		{minVal, minVal},
		{-1, 0},
		{0, -1},
	}
	for _, tc := range cases {
		out, err := c.ComputeOutputs(bitsOf(tc.a, n), bitsOf(tc.b, n))
		if err != nil {
			t.Fatalf("ComputeOutputs(%d,%d): %v", tc.a, tc.b, err)
		}
		wantGt, wantNe := referenceVerdict(tc.a, tc.b)
		if bool(out[0]) != wantGt || bool(out[1]) != wantNe {
			t.Errorf("a=%d b=%d: got (gt=%v,ne=%v), want (gt=%v,ne=%v)",
				tc.a, tc.b, out[0], out[1], wantGt, wantNe)
		}
	}
}
