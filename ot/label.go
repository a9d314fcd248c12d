// Package ot implements the 1-out-of-2 oblivious transfer subprotocol
// and the wire-label primitives shared with the garbling engine.
package ot

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Wire carries the two labels of a circuit wire, the zero label and
// the one label.
type Wire struct {
	L0 Label
	L1 Label
}

func (w Wire) String() string {
	return fmt.Sprintf("%s/%s", w.L0, w.L1)
}

// Label is a 128 bit wire label. The most significant bit of D0 is
// the label's select (point-and-permute) bit; it is exposed to
// whoever holds the label and is otherwise uncorrelated with the
// logical value the label encodes.
type Label struct {
	D0 uint64
	D1 uint64
}

// LabelData is the raw 16 byte encoding of a Label.
type LabelData [16]byte

func (l Label) String() string {
	return fmt.Sprintf("%016x%016x", l.D0, l.D1)
}

// Equal tests whether two labels carry the same bits.
func (l Label) Equal(o Label) bool {
	return l.D0 == o.D0 && l.D1 == o.D1
}

// NewLabel draws a fresh random label from rand.
func NewLabel(rand io.Reader) (Label, error) {
	var buf LabelData
	var label Label

	if _, err := rand.Read(buf[:]); err != nil {
		return label, err
	}
	label.SetData(&buf)
	return label, nil
}

// NewTweak builds a label-sized value from a gate or OT index, with
// the index in D1 and D0 zero. Nothing in this module calls it: the
// garbled-row key derivation binds each key to its gate by hashing
// the gate id directly.
func NewTweak(tweak uint64) Label {
	return Label{D1: tweak}
}

// S returns the label's select bit.
func (l Label) S() bool {
	return (l.D0 & 0x8000000000000000) != 0
}

// SetS sets the label's select bit.
func (l *Label) SetS(set bool) {
	if set {
		l.D0 |= 0x8000000000000000
	} else {
		l.D0 &= 0x7fffffffffffffff
	}
}

// Xor xors the label with o in place.
func (l *Label) Xor(o Label) {
	l.D0 ^= o.D0
	l.D1 ^= o.D1
}

// GetData writes the label into buf.
func (l Label) GetData(buf *LabelData) {
	binary.BigEndian.PutUint64(buf[0:8], l.D0)
	binary.BigEndian.PutUint64(buf[8:16], l.D1)
}

// SetData reads the label from buf.
func (l *Label) SetData(buf *LabelData) {
	l.D0 = binary.BigEndian.Uint64(buf[0:8])
	l.D1 = binary.BigEndian.Uint64(buf[8:16])
}

// Bytes returns the label's 16 byte encoding using buf as scratch
// space.
func (l Label) Bytes(buf *LabelData) []byte {
	l.GetData(buf)
	return buf[:]
}

// SetBytes sets the label from a 16 byte slice.
func (l *Label) SetBytes(data []byte) error {
	if len(data) != 16 {
		return fmt.Errorf("ot: invalid label length %d", len(data))
	}
	l.D0 = binary.BigEndian.Uint64(data[0:8])
	l.D1 = binary.BigEndian.Uint64(data[8:16])
	return nil
}

// NewRandomPair draws a fresh L0 and derives L1 = L0 XOR r, so the two
// labels share the free-XOR offset r. The select bits of L0 and L1
// are complementary by construction because r's select bit is fixed
// to one.
func NewRandomPair(rand io.Reader, r Label) (Wire, error) {
	l0, err := NewLabel(rand)
	if err != nil {
		return Wire{}, err
	}
	l1 := l0
	l1.Xor(r)
	return Wire{L0: l0, L1: l1}, nil
}

// ForBit returns the label of w that encodes bit.
func (w Wire) ForBit(bit byte) Label {
	if bit != 0 {
		return w.L1
	}
	return w.L0
}

// BitFromLabel resolves a label held for this wire back into the bit
// it encodes. It fails if the label matches neither of the wire's two
// labels.
func (w Wire) BitFromLabel(l Label) (byte, error) {
	switch {
	case l.Equal(w.L0):
		return 0, nil
	case l.Equal(w.L1):
		return 1, nil
	default:
		return 0, fmt.Errorf("ot: label does not belong to wire %v", w)
	}
}
