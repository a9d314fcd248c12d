package transport

import "fmt"

// Tag identifies the kind of a framed protocol message. The evaluator
// and garbler each expect a fixed sequence of tags (§6); receiving an
// unexpected one is a framing violation, not a protocol decision
// point, and aborts the session.
type Tag byte

const (
	// TagHandshake carries the circuit topology, garbled gate tables
	// and output decoding table, garbler to evaluator.
	TagHandshake Tag = iota + 1

	// TagInputLabels carries the garbler's own input labels, garbler
	// to evaluator.
	TagInputLabels

	// TagOTSetup and TagOTReply carry the Diffie-Hellman OT messages
	// for one evaluator input wire.
	TagOTSetup
	TagOTReply

	// TagOutputs carries the decoded output bits, evaluator to
	// garbler.
	TagOutputs
)

func (t Tag) String() string {
	switch t {
	case TagHandshake:
		return "handshake"
	case TagInputLabels:
		return "input-labels"
	case TagOTSetup:
		return "ot-setup"
	case TagOTReply:
		return "ot-reply"
	case TagOutputs:
		return "outputs"
	default:
		return fmt.Sprintf("tag(%d)", byte(t))
	}
}

// SendTag writes a message tag as the first byte of a message.
func (c *Conn) SendTag(t Tag) error {
	return c.SendByte(byte(t))
}

// ReceiveTag reads a message tag and fails if it is not one of the
// expected tags, rejecting decoders that don't know how to fall back.
func (c *Conn) ReceiveTag(expected ...Tag) (Tag, error) {
	b, err := c.ReceiveByte()
	if err != nil {
		return 0, err
	}
	got := Tag(b)
	for _, e := range expected {
		if got == e {
			return got, nil
		}
	}
	return got, fmt.Errorf("transport: unexpected message tag %s", got)
}
