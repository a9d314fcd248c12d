package circuit

import "fmt"

// Compute evaluates the circuit in the clear given a full bit
// assignment for Alice's and Bob's input wires. It is the reference
// used by -verify mode and by the garble/evaluate round-trip tests; it
// never touches labels or ciphertexts.
func (c *Circuit) Compute(aliceBits, bobBits []Bit) (map[WireID]Bit, error) {
	if len(aliceBits) != len(c.AliceInputs) {
		return nil, fmt.Errorf("circuit: got %d alice input bits, want %d",
			len(aliceBits), len(c.AliceInputs))
	}
	if len(bobBits) != len(c.BobInputs) {
		return nil, fmt.Errorf("circuit: got %d bob input bits, want %d",
			len(bobBits), len(c.BobInputs))
	}

	values := make(map[WireID]Bit, c.NumWires())
	for i, id := range c.AliceInputs {
		values[id] = aliceBits[i]
	}
	for i, id := range c.BobInputs {
		values[id] = bobBits[i]
	}

	for _, g := range c.Gates {
		in := make([]Bit, len(g.Inputs))
		for i, w := range g.Inputs {
			v, ok := values[w]
			if !ok {
				return nil, fmt.Errorf("circuit: gate %d references undefined wire %d", g.ID, w)
			}
			in[i] = v
		}
		values[g.ID] = g.Op.Eval(in)
	}

	return values, nil
}

// ComputeOutputs is Compute restricted to the circuit's declared
// output wires, in output order.
func (c *Circuit) ComputeOutputs(aliceBits, bobBits []Bit) ([]Bit, error) {
	values, err := c.Compute(aliceBits, bobBits)
	if err != nil {
		return nil, err
	}
	out := make([]Bit, len(c.Outputs))
	for i, w := range c.Outputs {
		out[i] = values[w]
	}
	return out, nil
}
