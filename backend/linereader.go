package backend

import (
	"bufio"
	"errors"
	"io"
)

// lineReader yields only newline-terminated data. An interval file that is
// still being appended to can then be parsed without ever seeing half a row:
// an unterminated tail reads as io.EOF until its newline arrives.
type lineReader struct {
	r *bufio.Reader
	// partial is the unterminated tail read so far.
	partial []byte
	// ready is a complete line not yet handed out.
	ready []byte
}

var _ io.Reader = (*lineReader)(nil)

func NewLineReader(r io.Reader) io.Reader {
	return &lineReader{
		r: bufio.NewReader(r),
	}
}

func (l *lineReader) Read(b []byte) (int, error) {
	if len(l.ready) == 0 {
		data, err := l.r.ReadBytes('\n')
		l.partial = append(l.partial, data...)
		if errors.Is(err, io.EOF) {
			return 0, io.EOF
		} else if err != nil {
			return 0, err
		}
		l.ready, l.partial = l.partial, nil
	}
	n := copy(b, l.ready)
	l.ready = l.ready[n:]
	return n, nil
}
