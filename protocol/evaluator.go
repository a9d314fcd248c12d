package protocol

import (
	"io"
	"time"

	"github.com/oksanen/maxgc/circuit"
	"github.com/oksanen/maxgc/numio"
	"github.com/oksanen/maxgc/ot"
	"github.com/oksanen/maxgc/transport"
)

// RunAsEvaluator drives the session as role B (§4.5): it receives the
// garbled circuit and the garbler's input labels, transfers its own
// labels over oblivious transfer, evaluates the gates, decodes the
// output bits and reports them back.
func (s *Session) RunAsEvaluator(inputs []int64, circ *circuit.Circuit, rnd io.Reader) (Verdict, error) {
	start := time.Now()

	mB := numio.Max(inputs)
	if err := numio.CheckRange(mB, s.NBits); err != nil {
		s.fsm.abort()
		return Verdict{}, newError(KindInputOutOfRange, err)
	}

	_, handshakeData, err := receiveMessage(s.Conn, transport.TagHandshake)
	if err != nil {
		s.fsm.abort()
		return Verdict{}, newError(KindTransport, err)
	}
	scale, gc, err := parseHandshake(handshakeData)
	if err != nil {
		s.fsm.abort()
		return Verdict{}, classify(err)
	}
	s.Scale = scale
	if err := expectSameShape(circ, gc.Circuit); err != nil {
		s.fsm.abort()
		return Verdict{}, newError(KindMalformed, err)
	}
	if err := s.fsm.advance(); err != nil {
		s.fsm.abort()
		return Verdict{}, newError(KindTransport, err)
	}

	_, labelData, err := receiveMessage(s.Conn, transport.TagInputLabels)
	if err != nil {
		s.fsm.abort()
		return Verdict{}, newError(KindTransport, err)
	}
	ls, err := circuit.UnmarshalLabelSet(labelData)
	if err != nil {
		s.fsm.abort()
		return Verdict{}, newError(KindTransport, err)
	}
	aliceLabels := make(map[circuit.WireID]ot.Label, len(ls.IDs))
	for i, id := range ls.IDs {
		aliceLabels[id] = ls.Labels[i]
	}

	bBits := numio.Bits(mB, s.NBits)
	bobLabels := make(map[circuit.WireID]ot.Label, len(gc.Circuit.BobInputs))

	transferStart := time.Now()
	receiver := ot.NewReceiver(s.Group)
	for i, id := range gc.Circuit.BobInputs {
		choice := boolToByte(bBits[i])
		label, err := receiver.Transfer(s.receiverChannel(), choice)
		if err != nil {
			s.fsm.abort()
			return Verdict{}, classify(err)
		}
		bobLabels[id] = label
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

	evalStart := time.Now()
	held, err := gc.Evaluate(aliceLabels, bobLabels)
	if err != nil {
		s.fsm.abort()
		return Verdict{}, classify(err)
	}
	outBits, err := gc.DecodeOutputs(held)
	if err != nil {
		s.fsm.abort()
		return Verdict{}, newError(KindCrypto, err)
	}
	s.Timing.Evaluate = time.Since(evalStart)

	ob := circuit.OutputBits{IDs: gc.Circuit.Outputs, Bits: outBits}
	obData, err := ob.MarshalBinary()
	if err != nil {
		s.fsm.abort()
		return Verdict{}, newError(KindTransport, err)
	}
	if err := sendMessage(s.Conn, transport.TagOutputs, obData); err != nil {
		s.fsm.abort()
		return Verdict{}, newError(KindTransport, err)
	}
	if err := s.fsm.advance(); err != nil {
		s.fsm.abort()
		return Verdict{}, newError(KindTransport, err)
	}
	if err := s.fsm.advance(); err != nil {
		s.fsm.abort()
		return Verdict{}, newError(KindTransport, err)
	}

	s.Timing.Total = time.Since(start)
	return verdictFromBits(outBits), nil
}
