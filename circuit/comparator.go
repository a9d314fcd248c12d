package circuit

import "fmt"

// comparatorBuilder assigns wire ids in emission order and appends
// gates as they are built, so that Gates ends up topologically
// ordered by construction.
type comparatorBuilder struct {
	next  WireID
	gates []Gate
}

func (b *comparatorBuilder) wire() WireID {
	id := b.next
	b.next++
	return id
}

func (b *comparatorBuilder) gate(op Operation, inputs ...WireID) WireID {
	out := b.wire()
	b.gates = append(b.gates, Gate{ID: out, Op: op, Inputs: inputs})
	return out
}

// NewComparator builds the N-bit signed two's-complement comparator
// of §4.1: on inputs a (Alice's bits) and b (Bob's bits), the circuit
// outputs (gt, ne) where gt = 1 iff b > a and ne = 1 iff a != b. Bit
// 0 of each operand is the least significant bit; bit n-1 is the
// sign bit. n must be at least 1.
func NewComparator(n int) (*Circuit, error) {
	if n < 1 {
		return nil, fmt.Errorf("circuit: comparator width must be positive, got %d", n)
	}

	b := &comparatorBuilder{}

	a := make([]WireID, n)
	for i := range a {
		a[i] = b.wire()
	}
	bob := make([]WireID, n)
	for i := range bob {
		bob[i] = b.wire()
	}

	msb := n - 1
	signDiff := b.gate(XOR, a[msb], bob[msb])
	signEq := b.gate(XNOR, a[msb], bob[msb])
	notAMsb := b.gate(NOT, a[msb])
	unsignedGtMsb := b.gate(AND, notAMsb, bob[msb])
	diffWins := b.gate(AND, signDiff, a[msb])
	eqWins := b.gate(AND, signEq, unsignedGtMsb)
	gt := b.gate(OR, diffWins, eqWins)

	neAcc := signDiff
	eqPrefix := signEq

	for i := msb - 1; i >= 0; i-- {
		bitDiff := b.gate(XOR, a[i], bob[i])
		notA := b.gate(NOT, a[i])
		cond := b.gate(AND, notA, bob[i])
		term := b.gate(AND, eqPrefix, cond)
		gt = b.gate(OR, gt, term)

		neAcc = b.gate(OR, neAcc, bitDiff)

		if i > 0 {
			bitEq := b.gate(NOT, bitDiff)
			eqPrefix = b.gate(AND, eqPrefix, bitEq)
		}
	}

	ne := neAcc

	return &Circuit{
		Name:        fmt.Sprintf("signed-max-comparator-%d", n),
		NBits:       n,
		AliceInputs: a,
		BobInputs:   bob,
		Outputs:     []WireID{gt, ne},
		Gates:       b.gates,
	}, nil
}
