package protocol

import (
	"errors"
	"fmt"
	"net"

	"github.com/oksanen/maxgc/circuit"
	"github.com/oksanen/maxgc/numio"
	"github.com/oksanen/maxgc/ot"
)

// ErrorKind classifies a fatal protocol failure (§7). Every kind maps
// to a fixed process exit code (§6) and a single user-visible line
// naming it.
type ErrorKind int

const (
	// KindInputOutOfRange: a value is not representable in the
	// circuit's signed bit width.
	KindInputOutOfRange ErrorKind = iota
	// KindMalformed: circuit topology fails its structural invariants.
	KindMalformed
	// KindCrypto: authenticated decryption failed at either endpoint.
	KindCrypto
	// KindOtGroup: an OT peer sent a group element outside the
	// expected subgroup.
	KindOtGroup
	// KindTimeout: a blocking send or receive exceeded its deadline.
	KindTimeout
	// KindTransport: connection closed, framing violation, or decode
	// error.
	KindTransport
)

func (k ErrorKind) String() string {
	switch k {
	case KindInputOutOfRange:
		return "input-out-of-range"
	case KindMalformed:
		return "malformed"
	case KindCrypto:
		return "crypto"
	case KindOtGroup:
		return "ot-group"
	case KindTimeout:
		return "timeout"
	case KindTransport:
		return "transport"
	default:
		return fmt.Sprintf("error-kind(%d)", int(k))
	}
}

// ExitCode returns the process exit code §6 assigns to k.
func (k ErrorKind) ExitCode() int {
	switch k {
	case KindInputOutOfRange:
		return 2
	case KindMalformed, KindCrypto, KindOtGroup, KindTimeout:
		return 3
	case KindTransport:
		return 4
	default:
		return 1
	}
}

// Error wraps a failure with the kind the session aborted for, so
// callers can report a single line naming the kind and pick the right
// exit code without inspecting the error chain.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, err error) *Error {
	var ne net.Error
	if kind == KindTransport && errors.As(err, &ne) && ne.Timeout() {
		kind = KindTimeout
	}
	return &Error{Kind: kind, Err: err}
}

// classify maps an error surfacing from the ot or circuit packages to
// the error kind that names it, for the single code path that reports
// a session's failure to the user (§7).
func classify(err error) *Error {
	if err == nil {
		return nil
	}
	if pe, ok := err.(*Error); ok {
		return pe
	}
	if _, ok := err.(*ot.ErrOtGroup); ok {
		return newError(KindOtGroup, err)
	}
	if _, ok := err.(*circuit.ErrCrypto); ok {
		return newError(KindCrypto, err)
	}
	if _, ok := err.(*circuit.ErrMalformed); ok {
		return newError(KindMalformed, err)
	}
	if _, ok := err.(*numio.ErrOutOfRange); ok {
		return newError(KindInputOutOfRange, err)
	}
	return newError(KindTransport, err)
}
