package circuit

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/oksanen/maxgc/ot"
)

// OutputEntry records, for one output wire, which select bit the
// garbler assigned to the logical value 0 and which to 1. It is the
// only information the evaluator needs to turn a held label back
// into a plaintext bit (§3, OutputDecodingTable).
type OutputEntry struct {
	Select0 bool
	Select1 bool
}

// OutputDecodingTable maps each output wire to its OutputEntry.
type OutputDecodingTable map[WireID]OutputEntry

// GarbledGate holds, for one circuit gate, the ordered ciphertexts
// indexed by the concatenation of its input wires' select bits. XOR
// and XNOR gates are garbled for free and carry no rows.
type GarbledGate struct {
	Rows [][]byte
}

// GarbledCircuit is the topology of a Circuit together with its
// garbled gate tables and output decoding table — everything the
// garbler sends the evaluator (§3, §4.2).
type GarbledCircuit struct {
	Circuit *Circuit
	Gates   []GarbledGate
	Output  OutputDecodingTable
}

// WireLabelTable is the garbler's private map from wire id to both of
// its labels. It must never be sent over the wire.
type WireLabelTable map[WireID]ot.Wire

// Garble constructs the garbled form of c. It returns the
// WireLabelTable the garbler keeps and the GarbledCircuit it sends to
// the evaluator.
func (c *Circuit) Garble(rnd io.Reader) (WireLabelTable, *GarbledCircuit, error) {
	r, err := ot.NewLabel(rnd)
	if err != nil {
		return nil, nil, err
	}
	r.SetS(true)

	wires := make(WireLabelTable, c.NumWires())

	for _, id := range c.AliceInputs {
		w, err := ot.NewRandomPair(rnd, r)
		if err != nil {
			return nil, nil, err
		}
		wires[id] = w
	}
	for _, id := range c.BobInputs {
		w, err := ot.NewRandomPair(rnd, r)
		if err != nil {
			return nil, nil, err
		}
		wires[id] = w
	}

	gates := make([]GarbledGate, len(c.Gates))

	for gi, g := range c.Gates {
		switch g.Op {
		case XOR, XNOR:
			out, err := freeXOR(wires, g)
			if err != nil {
				return nil, nil, err
			}
			wires[g.ID] = out
			gates[gi] = GarbledGate{}

		default:
			out, err := ot.NewRandomPair(rnd, r)
			if err != nil {
				return nil, nil, err
			}
			wires[g.ID] = out

			rows, err := garbleGate(g, wires, out)
			if err != nil {
				return nil, nil, err
			}
			gates[gi] = GarbledGate{Rows: rows}
		}
	}

	decode := make(OutputDecodingTable, len(c.Outputs))
	for _, id := range c.Outputs {
		w := wires[id]
		decode[id] = OutputEntry{Select0: w.L0.S(), Select1: w.L1.S()}
	}

	return wires, &GarbledCircuit{Circuit: c, Gates: gates, Output: decode}, nil
}

// freeXOR computes a gate's output wire without any ciphertext: for
// XOR, L0 is the XOR of the inputs' L0 labels and L1 = L0 XOR R; XNOR
// swaps which label corresponds to which logical value.
func freeXOR(wires WireLabelTable, g Gate) (ot.Wire, error) {
	a, ok := wires[g.Inputs[0]]
	if !ok {
		return ot.Wire{}, fmt.Errorf("circuit: gate %d: input wire %d has no label", g.ID, g.Inputs[0])
	}
	b, ok := wires[g.Inputs[1]]
	if !ok {
		return ot.Wire{}, fmt.Errorf("circuit: gate %d: input wire %d has no label", g.ID, g.Inputs[1])
	}

	l0 := a.L0
	l0.Xor(b.L0)
	l1 := l0
	l1.Xor(xorOffset(a))

	if g.Op == XNOR {
		return ot.Wire{L0: l1, L1: l0}, nil
	}
	return ot.Wire{L0: l0, L1: l1}, nil
}

// xorOffset recovers the wire's global free-XOR offset R as w.L0 XOR w.L1.
func xorOffset(w ot.Wire) ot.Label {
	r := w.L0
	r.Xor(w.L1)
	return r
}

// garbleGate builds the 2^k-row ciphertext table for a non-free gate.
func garbleGate(g Gate, wires WireLabelTable, out ot.Wire) ([][]byte, error) {
	k := len(g.Inputs)
	inWires := make([]ot.Wire, k)
	for i, id := range g.Inputs {
		w, ok := wires[id]
		if !ok {
			return nil, fmt.Errorf("circuit: gate %d: input wire %d has no label", g.ID, id)
		}
		inWires[i] = w
	}

	rows := make([][]byte, 1<<uint(k))
	bits := make([]Bit, k)
	labels := make([]ot.Label, k)

	for combo := 0; combo < len(rows); combo++ {
		row := 0
		for i := 0; i < k; i++ {
			bit := (combo >> uint(k-1-i)) & 1
			bits[i] = bit != 0
			labels[i] = inWires[i].ForBit(byte(bit))
			if labels[i].S() {
				row |= 1 << uint(k-1-i)
			}
		}

		outBit := g.Op.Eval(bits)
		outLabel := out.ForBit(boolToByte(outBit))

		key := gateRowKey(g.ID, labels)
		var buf ot.LabelData
		ct, err := sealGateLabel(key, outLabel.Bytes(&buf))
		if err != nil {
			return nil, err
		}
		rows[row] = ct
	}
	return rows, nil
}

func boolToByte(b Bit) byte {
	if b {
		return 1
	}
	return 0
}

// gateRowKey derives the AEAD key for one garbled-table row from the
// gate's id (so the same input labels never produce the same key at
// two different gates) and the concatenation of the row's input
// labels, per §4.2 step 2.
func gateRowKey(gate WireID, labels []ot.Label) []byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	var idBuf [4]byte
	binary.BigEndian.PutUint32(idBuf[:], uint32(gate))
	h.Write(idBuf[:])

	var buf ot.LabelData
	for _, l := range labels {
		h.Write(l.Bytes(&buf))
	}
	return h.Sum(nil)
}

func sealGateLabel(key, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20poly1305.NonceSize)
	return aead.Seal(nil, nonce, plaintext, nil), nil
}

func openGateLabel(key, ciphertext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20poly1305.NonceSize)
	return aead.Open(nil, nonce, ciphertext, nil)
}
