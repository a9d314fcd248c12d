package circuit

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/oksanen/maxgc/ot"
)

// magic tags the start of a marshaled GarbledCircuit so a decoder can
// fail fast on a misframed or foreign payload instead of reading
// garbage lengths.
const magic = 0x6d617867 // "maxg"

// MarshalBinary encodes the garbled circuit canonically: topology,
// then one row-table per gate, then the output decoding table. The
// encoding is deterministic so hashes over it are reproducible (§6).
func (gc *GarbledCircuit) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer

	if err := writeCircuitTopology(&buf, gc.Circuit); err != nil {
		return nil, err
	}

	if err := binary.Write(&buf, binary.BigEndian, uint32(len(gc.Gates))); err != nil {
		return nil, err
	}
	for _, gg := range gc.Gates {
		if err := binary.Write(&buf, binary.BigEndian, uint32(len(gg.Rows))); err != nil {
			return nil, err
		}
		for _, row := range gg.Rows {
			if err := binary.Write(&buf, binary.BigEndian, uint32(len(row))); err != nil {
				return nil, err
			}
			buf.Write(row)
		}
	}

	if err := binary.Write(&buf, binary.BigEndian, uint32(len(gc.Output))); err != nil {
		return nil, err
	}
	for _, id := range gc.Circuit.Outputs {
		entry := gc.Output[id]
		if err := binary.Write(&buf, binary.BigEndian, uint32(id)); err != nil {
			return nil, err
		}
		if err := binary.Write(&buf, binary.BigEndian, boolToByte(entry.Select0)); err != nil {
			return nil, err
		}
		if err := binary.Write(&buf, binary.BigEndian, boolToByte(entry.Select1)); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// UnmarshalGarbledCircuit decodes a payload produced by
// GarbledCircuit.MarshalBinary and validates the resulting topology.
func UnmarshalGarbledCircuit(data []byte) (*GarbledCircuit, error) {
	r := bytes.NewReader(data)

	c, err := readCircuitTopology(r)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var numGates uint32
	if err := binary.Read(r, binary.BigEndian, &numGates); err != nil {
		return nil, fmt.Errorf("circuit: truncated gate table count: %w", err)
	}
	if int(numGates) != len(c.Gates) {
		return nil, &ErrMalformed{Reason: fmt.Sprintf(
			"gate table count %d does not match topology gate count %d", numGates, len(c.Gates))}
	}

	gates := make([]GarbledGate, numGates)
	for i := range gates {
		var numRows uint32
		if err := binary.Read(r, binary.BigEndian, &numRows); err != nil {
			return nil, fmt.Errorf("circuit: truncated row count: %w", err)
		}
		rows := make([][]byte, numRows)
		for j := range rows {
			var rowLen uint32
			if err := binary.Read(r, binary.BigEndian, &rowLen); err != nil {
				return nil, fmt.Errorf("circuit: truncated row length: %w", err)
			}
			row := make([]byte, rowLen)
			if _, err := io.ReadFull(r, row); err != nil {
				return nil, fmt.Errorf("circuit: truncated row data: %w", err)
			}
			rows[j] = row
		}
		gates[i] = GarbledGate{Rows: rows}
	}

	var numOutputs uint32
	if err := binary.Read(r, binary.BigEndian, &numOutputs); err != nil {
		return nil, fmt.Errorf("circuit: truncated output table count: %w", err)
	}
	decode := make(OutputDecodingTable, numOutputs)
	for i := uint32(0); i < numOutputs; i++ {
		var id uint32
		var s0, s1 byte
		if err := binary.Read(r, binary.BigEndian, &id); err != nil {
			return nil, fmt.Errorf("circuit: truncated output wire id: %w", err)
		}
		if err := binary.Read(r, binary.BigEndian, &s0); err != nil {
			return nil, fmt.Errorf("circuit: truncated output select bit: %w", err)
		}
		if err := binary.Read(r, binary.BigEndian, &s1); err != nil {
			return nil, fmt.Errorf("circuit: truncated output select bit: %w", err)
		}
		decode[WireID(id)] = OutputEntry{Select0: s0 != 0, Select1: s1 != 0}
	}

	return &GarbledCircuit{Circuit: c, Gates: gates, Output: decode}, nil
}

func writeCircuitTopology(w io.Writer, c *Circuit) error {
	fields := []uint32{
		magic,
		uint32(c.NBits),
		uint32(len(c.AliceInputs)),
		uint32(len(c.BobInputs)),
		uint32(len(c.Outputs)),
		uint32(len(c.Gates)),
	}
	for _, v := range fields {
		if err := binary.Write(w, binary.BigEndian, v); err != nil {
			return err
		}
	}
	for _, id := range c.AliceInputs {
		if err := binary.Write(w, binary.BigEndian, uint32(id)); err != nil {
			return err
		}
	}
	for _, id := range c.BobInputs {
		if err := binary.Write(w, binary.BigEndian, uint32(id)); err != nil {
			return err
		}
	}
	for _, id := range c.Outputs {
		if err := binary.Write(w, binary.BigEndian, uint32(id)); err != nil {
			return err
		}
	}
	for _, g := range c.Gates {
		if err := binary.Write(w, binary.BigEndian, uint32(g.ID)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.BigEndian, byte(g.Op)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.BigEndian, uint32(len(g.Inputs))); err != nil {
			return err
		}
		for _, in := range g.Inputs {
			if err := binary.Write(w, binary.BigEndian, uint32(in)); err != nil {
				return err
			}
		}
	}
	return nil
}

func readCircuitTopology(r io.Reader) (*Circuit, error) {
	var got [6]uint32
	for i := range got {
		if err := binary.Read(r, binary.BigEndian, &got[i]); err != nil {
			return nil, fmt.Errorf("circuit: truncated topology header: %w", err)
		}
	}
	if got[0] != magic {
		return nil, &ErrMalformed{Reason: fmt.Sprintf("bad magic %#x", got[0])}
	}
	nBits, numAlice, numBob, numOutputs, numGates := got[1], got[2], got[3], got[4], got[5]

	readIDs := func(n uint32) ([]WireID, error) {
		ids := make([]WireID, n)
		for i := range ids {
			var v uint32
			if err := binary.Read(r, binary.BigEndian, &v); err != nil {
				return nil, fmt.Errorf("circuit: truncated wire id list: %w", err)
			}
			ids[i] = WireID(v)
		}
		return ids, nil
	}

	aliceInputs, err := readIDs(numAlice)
	if err != nil {
		return nil, err
	}
	bobInputs, err := readIDs(numBob)
	if err != nil {
		return nil, err
	}
	outputs, err := readIDs(numOutputs)
	if err != nil {
		return nil, err
	}

	gates := make([]Gate, numGates)
	for i := range gates {
		var id uint32
		var op byte
		var numInputs uint32
		if err := binary.Read(r, binary.BigEndian, &id); err != nil {
			return nil, fmt.Errorf("circuit: truncated gate id: %w", err)
		}
		if err := binary.Read(r, binary.BigEndian, &op); err != nil {
			return nil, fmt.Errorf("circuit: truncated gate op: %w", err)
		}
		if err := binary.Read(r, binary.BigEndian, &numInputs); err != nil {
			return nil, fmt.Errorf("circuit: truncated gate input count: %w", err)
		}
		if Operation(op) > NOT {
			return nil, &ErrMalformed{Reason: fmt.Sprintf("gate %d: unknown operation %d", id, op)}
		}
		inputs, err := readIDs(numInputs)
		if err != nil {
			return nil, err
		}
		gates[i] = Gate{ID: WireID(id), Op: Operation(op), Inputs: inputs}
	}

	return &Circuit{
		NBits:       int(nBits),
		AliceInputs: aliceInputs,
		BobInputs:   bobInputs,
		Outputs:     outputs,
		Gates:       gates,
	}, nil
}

// LabelSet is a canonical (wireId, label) list, used for the garbler's
// direct transfer of its own input labels (§4.4 step 4). The
// evaluator's reply of decoded output bits uses OutputBits instead.
type LabelSet struct {
	IDs    []WireID
	Labels []ot.Label
}

// MarshalBinary encodes ls as a count followed by (id, 16-byte label)
// pairs in IDs order.
func (ls LabelSet) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.BigEndian, uint32(len(ls.IDs))); err != nil {
		return nil, err
	}
	var data ot.LabelData
	for i, id := range ls.IDs {
		if err := binary.Write(&buf, binary.BigEndian, uint32(id)); err != nil {
			return nil, err
		}
		buf.Write(ls.Labels[i].Bytes(&data))
	}
	return buf.Bytes(), nil
}

// UnmarshalLabelSet decodes a payload produced by LabelSet.MarshalBinary.
func UnmarshalLabelSet(data []byte) (LabelSet, error) {
	r := bytes.NewReader(data)
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return LabelSet{}, fmt.Errorf("circuit: truncated label set count: %w", err)
	}
	ls := LabelSet{IDs: make([]WireID, n), Labels: make([]ot.Label, n)}
	for i := uint32(0); i < n; i++ {
		var id uint32
		if err := binary.Read(r, binary.BigEndian, &id); err != nil {
			return LabelSet{}, fmt.Errorf("circuit: truncated label set wire id: %w", err)
		}
		raw := make([]byte, 16)
		if _, err := io.ReadFull(r, raw); err != nil {
			return LabelSet{}, fmt.Errorf("circuit: truncated label set data: %w", err)
		}
		var l ot.Label
		if err := l.SetBytes(raw); err != nil {
			return LabelSet{}, err
		}
		ls.IDs[int(i)] = WireID(id)
		ls.Labels[int(i)] = l
	}
	return ls, nil
}

// OutputBits is the canonical encoding of the evaluator's final
// message: the plaintext bit recovered for each output wire, in
// circuit output order (§6, message "last-1").
type OutputBits struct {
	IDs  []WireID
	Bits []Bit
}

// MarshalBinary encodes ob as a count followed by (id, bit) pairs.
func (ob OutputBits) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.BigEndian, uint32(len(ob.IDs))); err != nil {
		return nil, err
	}
	for i, id := range ob.IDs {
		if err := binary.Write(&buf, binary.BigEndian, uint32(id)); err != nil {
			return nil, err
		}
		if err := binary.Write(&buf, binary.BigEndian, boolToByte(ob.Bits[i])); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// UnmarshalOutputBits decodes a payload produced by OutputBits.MarshalBinary.
func UnmarshalOutputBits(data []byte) (OutputBits, error) {
	r := bytes.NewReader(data)
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return OutputBits{}, fmt.Errorf("circuit: truncated output bits count: %w", err)
	}
	ob := OutputBits{IDs: make([]WireID, n), Bits: make([]Bit, n)}
	for i := uint32(0); i < n; i++ {
		var id uint32
		var bit byte
		if err := binary.Read(r, binary.BigEndian, &id); err != nil {
			return OutputBits{}, fmt.Errorf("circuit: truncated output bits wire id: %w", err)
		}
		if err := binary.Read(r, binary.BigEndian, &bit); err != nil {
			return OutputBits{}, fmt.Errorf("circuit: truncated output bits value: %w", err)
		}
		ob.IDs[int(i)] = WireID(id)
		ob.Bits[int(i)] = bit != 0
	}
	return ob, nil
}
