package circuit

import "testing"

func TestValidateAcceptsComparator(t *testing.T) {
	c, err := NewComparator(8)
	if err != nil {
		t.Fatalf("NewComparator: %v", err)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidateRejectsDanglingInput(t *testing.T) {
	c := &Circuit{
		AliceInputs: []WireID{0},
		BobInputs:   []WireID{1},
		Outputs:     []WireID{2},
		Gates: []Gate{
			{ID: 2, Op: AND, Inputs: []WireID{0, 99}},
		},
	}
	if err := c.Validate(); err == nil {
		t.Errorf("expected error for gate referencing undefined wire")
	}
}

func TestValidateRejectsOutOfOrderGates(t *testing.T) {
	c := &Circuit{
		AliceInputs: []WireID{0},
		BobInputs:   []WireID{1},
		Outputs:     []WireID{3},
		Gates: []Gate{
			{ID: 2, Op: AND, Inputs: []WireID{0, 3}},
			{ID: 3, Op: XOR, Inputs: []WireID{0, 1}},
		},
	}
	if err := c.Validate(); err == nil {
		t.Errorf("expected error for gate referencing a not-yet-defined later wire")
	}
}

func TestValidateRejectsUndeclaredOutput(t *testing.T) {
	c := &Circuit{
		AliceInputs: []WireID{0},
		BobInputs:   []WireID{1},
		Outputs:     []WireID{5},
		Gates: []Gate{
			{ID: 2, Op: AND, Inputs: []WireID{0, 1}},
		},
	}
	if err := c.Validate(); err == nil {
		t.Errorf("expected error for output wire that no gate produces")
	}
}

func TestOperationEval(t *testing.T) {
	cases := []struct {
		op   Operation
		in   []Bit
		want Bit
	}{
		{XOR, []Bit{false, true}, true},
		{XNOR, []Bit{false, true}, false},
		{AND, []Bit{true, true}, true},
		{AND, []Bit{true, false}, false},
		{OR, []Bit{false, false}, false},
		{NAND, []Bit{true, true}, false},
		{NOT, []Bit{false}, true},
	}
	for _, tc := range cases {
		got := tc.op.Eval(tc.in)
		if got != tc.want {
			t.Errorf("%v%v: got %v, want %v", tc.op, tc.in, got, tc.want)
		}
	}
}

func TestComputeMatchesOutputs(t *testing.T) {
	c, err := NewComparator(4)
	if err != nil {
		t.Fatalf("NewComparator: %v", err)
	}
	aBits := []Bit{true, false, true, false}
	bBits := []Bit{false, true, false, true}

	full, err := c.Compute(aBits, bBits)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	outs, err := c.ComputeOutputs(aBits, bBits)
	if err != nil {
		t.Fatalf("ComputeOutputs: %v", err)
	}
	for i, id := range c.Outputs {
		if full[id] != outs[i] {
			t.Errorf("output %d: Compute gave %v, ComputeOutputs gave %v", id, full[id], outs[i])
		}
	}
}
