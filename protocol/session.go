// Package protocol implements the two-role session manager: the
// garbler (A) and evaluator (B) state machines that drive a circuit
// and oblivious-transfer library through one maximum-comparison run
// (§4.4, §4.5, §4.6).
package protocol

import (
	"time"

	"github.com/oksanen/maxgc/ot"
	"github.com/oksanen/maxgc/transport"
)

// Timing collects per-phase wall-clock durations for diagnostics,
// the successor to the teacher's tabulated timing report: a session
// prints it with -v instead of rendering a table, since there is
// nothing left here to tabulate across multiple runs.
type Timing struct {
	Garble   time.Duration
	Transfer time.Duration
	Evaluate time.Duration
	Total    time.Duration
}

// Session carries the state of a single protocol run: the transport
// connection, the agreed circuit width and fixed-point scale, and the
// OT group. The label RNG is passed to RunAsGarbler/RunAsEvaluator
// rather than stored here; the OT subprotocol draws from crypto/rand.
type Session struct {
	Conn  *transport.Conn
	NBits int
	Scale int64
	Group *ot.Group

	fsm    fsm
	Timing Timing
}

// NewSession creates a session bound to conn with the given circuit
// width and fixed-point scale. Scale is exchanged in the handshake
// (SPEC_FULL §5 Open Question) rather than fixed at compile time.
func NewSession(conn *transport.Conn, nBits int, scale int64) *Session {
	return &Session{
		Conn:  conn,
		NBits: nBits,
		Scale: scale,
		Group: ot.DefaultGroup(),
	}
}

// State reports the session's current FSM state.
func (s *Session) State() State {
	return s.fsm.state
}

// otChannel adapts a tagged transport.Conn leg into the ot.Channel
// interface the oblivious-transfer subprotocol expects, so ot stays
// decoupled from the wire-tagging scheme (§9, tagged-union messages).
type otChannel struct {
	conn    *transport.Conn
	sendTag transport.Tag
	recvTag transport.Tag
}

func (c *otChannel) SendData(val []byte) error {
	if err := c.conn.SendTag(c.sendTag); err != nil {
		return err
	}
	return c.conn.SendData(val)
}

func (c *otChannel) Flush() error {
	return c.conn.Flush()
}

func (c *otChannel) ReceiveData() ([]byte, error) {
	if _, err := c.conn.ReceiveTag(c.recvTag); err != nil {
		return nil, err
	}
	return c.conn.ReceiveData()
}

// senderChannel is the garbler's side of one wire's OT: it sends
// under TagOTSetup and expects the evaluator's reply under TagOTReply.
func (s *Session) senderChannel() *otChannel {
	return &otChannel{conn: s.Conn, sendTag: transport.TagOTSetup, recvTag: transport.TagOTReply}
}

// receiverChannel is the evaluator's side of one wire's OT: it sends
// under TagOTReply and expects the garbler's offer under TagOTSetup.
func (s *Session) receiverChannel() *otChannel {
	return &otChannel{conn: s.Conn, sendTag: transport.TagOTReply, recvTag: transport.TagOTSetup}
}
