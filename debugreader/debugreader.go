// Package debugreader implements an io.Reader that
// logs information about the Reads it receives.
package debugreader

import (
	"io"
	"log"
)

type debugReader struct {
	r   io.Reader
	l   *log.Logger
	off int64
}

// NewReader constructs a new io.Reader that will log to l.
func NewReader(r io.Reader, l *log.Logger) io.Reader {
	return &debugReader{r: r, l: l}
}

func (r *debugReader) Read(buf []byte) (n int, err error) {
	n, err = r.r.Read(buf)
	r.l.Printf("read at %d: asked %d, got %d, err %v", r.off, len(buf), n, err)
	if n > 0 {
		r.l.Printf("data: % x", buf[:n])
	}
	r.off += int64(n)
	return
}
