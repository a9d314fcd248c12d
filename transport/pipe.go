package transport

import (
	"io"
)

// Pipe returns two connected in-memory Conns: anything sent on one is
// received on the other. It is used to drive both protocol roles in
// the same process for tests, without touching a real socket.
func Pipe() (*Conn, *Conn) {
	var p0, p1 pipe

	p0.r, p1.w = io.Pipe()
	p1.r, p0.w = io.Pipe()

	c0 := NewConn(&p0)
	c1 := NewConn(&p1)
	c0.Timeout = 0
	c1.Timeout = 0
	return c0, c1
}

type pipe struct {
	r *io.PipeReader
	w *io.PipeWriter
}

func (p *pipe) Close() error {
	if err := p.r.Close(); err != nil {
		return err
	}
	return p.w.Close()
}

func (p *pipe) Read(data []byte) (n int, err error) {
	return p.r.Read(data)
}

func (p *pipe) Write(data []byte) (n int, err error) {
	return p.w.Write(data)
}
