package protocol

import (
	"io"
	"time"

	"github.com/oksanen/maxgc/circuit"
	"github.com/oksanen/maxgc/numio"
	"github.com/oksanen/maxgc/ot"
	"github.com/oksanen/maxgc/transport"
)

// RunAsGarbler drives the session as role A (§4.4): it garbles circ,
// sends the garbled form and its own input labels, transfers B's
// input labels over oblivious transfer, and waits for the decoded
// verdict.
func (s *Session) RunAsGarbler(inputs []int64, circ *circuit.Circuit, rnd io.Reader) (Verdict, error) {
	start := time.Now()

	mA := numio.Max(inputs)
	if err := numio.CheckRange(mA, s.NBits); err != nil {
		s.fsm.abort()
		return Verdict{}, newError(KindInputOutOfRange, err)
	}

	if err := circ.Validate(); err != nil {
		s.fsm.abort()
		return Verdict{}, newError(KindMalformed, err)
	}

	garbleStart := time.Now()
	table, gc, err := circ.Garble(rnd)
	if err != nil {
		s.fsm.abort()
		return Verdict{}, classify(err)
	}
	s.Timing.Garble = time.Since(garbleStart)

	payload, err := marshalHandshake(s.Scale, gc)
	if err != nil {
		s.fsm.abort()
		return Verdict{}, newError(KindTransport, err)
	}
	if err := sendMessage(s.Conn, transport.TagHandshake, payload); err != nil {
		s.fsm.abort()
		return Verdict{}, newError(KindTransport, err)
	}
	if err := s.fsm.advance(); err != nil {
		s.fsm.abort()
		return Verdict{}, newError(KindTransport, err)
	}

	aBits := numio.Bits(mA, s.NBits)
	ls := circuit.LabelSet{IDs: make([]circuit.WireID, len(circ.AliceInputs)), Labels: make([]ot.Label, len(circ.AliceInputs))}
	for i, id := range circ.AliceInputs {
		ls.IDs[i] = id
		ls.Labels[i] = table[id].ForBit(boolToByte(aBits[i]))
	}
	lsData, err := ls.MarshalBinary()
	if err != nil {
		s.fsm.abort()
		return Verdict{}, newError(KindTransport, err)
	}
	if err := sendMessage(s.Conn, transport.TagInputLabels, lsData); err != nil {
		s.fsm.abort()
		return Verdict{}, newError(KindTransport, err)
	}

	transferStart := time.Now()
	sender := ot.NewSender(s.Group)
	for _, id := range circ.BobInputs {
		wire := table[id]
		if err := sender.Transfer(s.senderChannel(), wire.L0, wire.L1); err != nil {
			s.fsm.abort()
			return Verdict{}, classify(err)
		}
	}
	s.Timing.Transfer = time.Since(transferStart)

	if err := s.fsm.advance(); err != nil {
		s.fsm.abort()
		return Verdict{}, newError(KindTransport, err)
	}
	if err := s.fsm.advance(); err != nil {
		s.fsm.abort()
		return Verdict{}, newError(KindTransport, err)
	}

	_, data, err := receiveMessage(s.Conn, transport.TagOutputs)
	if err != nil {
		s.fsm.abort()
		return Verdict{}, newError(KindTransport, err)
	}
	ob, err := circuit.UnmarshalOutputBits(data)
	if err != nil {
		s.fsm.abort()
		return Verdict{}, newError(KindTransport, err)
	}
	if err := s.fsm.advance(); err != nil {
		s.fsm.abort()
		return Verdict{}, newError(KindTransport, err)
	}

	v, err := verdictFromOutputBits(circ, ob)
	if err != nil {
		s.fsm.abort()
		return Verdict{}, newError(KindMalformed, err)
	}

	if err := s.fsm.advance(); err != nil {
		s.fsm.abort()
		return Verdict{}, newError(KindTransport, err)
	}
	s.Timing.Total = time.Since(start)
	return v, nil
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
