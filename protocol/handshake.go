package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/oksanen/maxgc/circuit"
)

// marshalHandshake encodes the circuit handshake payload: the
// fixed-point scale the sender used on its inputs, followed by the
// garbled circuit (§6, message 1; SPEC_FULL §5 makes scale a
// handshake field instead of a wire-format constant).
func marshalHandshake(scale int64, gc *circuit.GarbledCircuit) ([]byte, error) {
	circData, err := gc.MarshalBinary()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.BigEndian, scale); err != nil {
		return nil, err
	}
	buf.Write(circData)
	return buf.Bytes(), nil
}

func parseHandshake(data []byte) (int64, *circuit.GarbledCircuit, error) {
	if len(data) < 8 {
		return 0, nil, fmt.Errorf("protocol: handshake payload too short")
	}
	scale := int64(binary.BigEndian.Uint64(data[:8]))
	gc, err := circuit.UnmarshalGarbledCircuit(data[8:])
	if err != nil {
		return 0, nil, err
	}
	return scale, gc, nil
}
