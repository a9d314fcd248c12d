package circuit

import (
	"fmt"

	"github.com/oksanen/maxgc/ot"
)

// ErrCrypto reports an authenticated-decryption failure while
// evaluating a garbled gate — a protocol corruption signal (§7,
// error kind Crypto). It is never retried.
type ErrCrypto struct {
	Gate WireID
}

func (e *ErrCrypto) Error() string {
	return fmt.Sprintf("circuit: gate %d: garbled row failed to authenticate", e.Gate)
}

// Evaluate walks gc's gates in topological order given the labels the
// evaluator holds for every input wire, and returns exactly one
// label per wire it reaches (§4.5 step 5, §8 invariant 3).
func (gc *GarbledCircuit) Evaluate(aliceLabels, bobLabels map[WireID]ot.Label) (map[WireID]ot.Label, error) {
	c := gc.Circuit

	held := make(map[WireID]ot.Label, c.NumWires())
	for id, l := range aliceLabels {
		held[id] = l
	}
	for id, l := range bobLabels {
		held[id] = l
	}

	for gi, g := range c.Gates {
		in := make([]ot.Label, len(g.Inputs))
		for i, w := range g.Inputs {
			l, ok := held[w]
			if !ok {
				return nil, fmt.Errorf("circuit: gate %d: no label held for input wire %d", g.ID, w)
			}
			in[i] = l
		}

		switch g.Op {
		case XOR, XNOR:
			out := in[0]
			out.Xor(in[1])
			held[g.ID] = out

		default:
			row := gc.Gates[gi].Rows
			index := 0
			for i, l := range in {
				if l.S() {
					index |= 1 << uint(len(in)-1-i)
				}
			}
			if index >= len(row) || row[index] == nil {
				return nil, &ErrCrypto{Gate: g.ID}
			}

			key := gateRowKey(g.ID, in)
			plain, err := openGateLabel(key, row[index])
			if err != nil {
				return nil, &ErrCrypto{Gate: g.ID}
			}
			var out ot.Label
			if err := out.SetBytes(plain); err != nil {
				return nil, &ErrCrypto{Gate: g.ID}
			}
			held[g.ID] = out
		}
	}

	return held, nil
}

// DecodeOutputs resolves the labels the evaluator holds for the
// circuit's output wires into plaintext bits, using the garbler's
// OutputDecodingTable (§4.5 step 6).
func (gc *GarbledCircuit) DecodeOutputs(held map[WireID]ot.Label) ([]Bit, error) {
	out := make([]Bit, len(gc.Circuit.Outputs))
	for i, w := range gc.Circuit.Outputs {
		l, ok := held[w]
		if !ok {
			return nil, fmt.Errorf("circuit: output wire %d has no held label", w)
		}
		entry, ok := gc.Output[w]
		if !ok {
			return nil, fmt.Errorf("circuit: output wire %d missing from decoding table", w)
		}
		switch l.S() {
		case entry.Select0:
			out[i] = false
		case entry.Select1:
			out[i] = true
		default:
			return nil, fmt.Errorf("circuit: output wire %d: held label's select bit matches neither decoding entry", w)
		}
	}
	return out, nil
}
