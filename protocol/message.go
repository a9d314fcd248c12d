package protocol

import (
	"fmt"

	"github.com/oksanen/maxgc/circuit"
	"github.com/oksanen/maxgc/transport"
)

// sendMessage writes one tagged, length-framed message and flushes it
// onto the wire (§6 framing: 4-byte length prefix per message).
func sendMessage(conn *transport.Conn, tag transport.Tag, payload []byte) error {
	if err := conn.SendTag(tag); err != nil {
		return err
	}
	if err := conn.SendData(payload); err != nil {
		return err
	}
	return conn.Flush()
}

// receiveMessage reads one tagged, length-framed message, rejecting
// anything but the expected tag.
func receiveMessage(conn *transport.Conn, expected transport.Tag) (transport.Tag, []byte, error) {
	tag, err := conn.ReceiveTag(expected)
	if err != nil {
		return 0, nil, err
	}
	data, err := conn.ReceiveData()
	if err != nil {
		return 0, nil, err
	}
	return tag, data, nil
}

// expectSameShape rejects a received garbled circuit whose topology
// doesn't match the comparator the evaluator was configured to run,
// before any label is touched (§7, error kind Malformed).
func expectSameShape(want, got *circuit.Circuit) error {
	if got.NBits != want.NBits {
		return fmt.Errorf("protocol: circuit width %d does not match configured width %d", got.NBits, want.NBits)
	}
	if len(got.AliceInputs) != len(want.AliceInputs) {
		return fmt.Errorf("protocol: circuit has %d alice input wires, want %d", len(got.AliceInputs), len(want.AliceInputs))
	}
	if len(got.BobInputs) != len(want.BobInputs) {
		return fmt.Errorf("protocol: circuit has %d bob input wires, want %d", len(got.BobInputs), len(want.BobInputs))
	}
	if len(got.Outputs) != len(want.Outputs) {
		return fmt.Errorf("protocol: circuit has %d output wires, want %d", len(got.Outputs), len(want.Outputs))
	}
	return nil
}

// verdictFromOutputBits matches the evaluator's returned (wireId, bit)
// pairs against the circuit's declared output order and builds the
// two-bit Verdict (§1: gt, ne).
func verdictFromOutputBits(circ *circuit.Circuit, ob circuit.OutputBits) (Verdict, error) {
	if len(circ.Outputs) != 2 {
		return Verdict{}, fmt.Errorf("protocol: expected 2 output wires, circuit declares %d", len(circ.Outputs))
	}
	byID := make(map[circuit.WireID]circuit.Bit, len(ob.IDs))
	for i, id := range ob.IDs {
		byID[id] = ob.Bits[i]
	}
	bits := make([]circuit.Bit, 2)
	for i, id := range circ.Outputs {
		b, ok := byID[id]
		if !ok {
			return Verdict{}, fmt.Errorf("protocol: output wire %d missing from evaluator's reply", id)
		}
		bits[i] = b
	}
	return verdictFromBits(bits), nil
}
