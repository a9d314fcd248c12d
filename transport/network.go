package transport

import (
	"log"
	"net"
	"time"
)

// Listen opens addr and blocks until exactly one peer connects,
// returning a framed Conn for that single session. Either role may be
// the listener; retrying accepts here would only matter for a
// long-lived server, which a single-shot two-party session is not.
func Listen(addr string) (*Conn, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	defer ln.Close()

	log.Printf("transport: listening on %s", addr)
	nc, err := ln.Accept()
	if err != nil {
		return nil, err
	}
	log.Printf("transport: accepted connection from %s", nc.RemoteAddr())
	return NewConn(nc), nil
}

// DialRetry connects to addr, retrying with backoff until it
// succeeds or the deadline elapses, waiting backoff between attempts,
// so the dialing party may start before the listening party.
func DialRetry(addr string, deadline time.Duration, backoff time.Duration) (*Conn, error) {
	start := time.Now()
	for {
		nc, err := net.Dial("tcp", addr)
		if err == nil {
			log.Printf("transport: connected to %s", addr)
			return NewConn(nc), nil
		}
		if deadline > 0 && time.Since(start) > deadline {
			return nil, err
		}
		log.Printf("transport: connect to %s failed (%s), retrying in %s",
			addr, err, backoff)
		time.Sleep(backoff)
	}
}
