package colcsv

import (
	"bytes"
	"io"
	"unsafe"
)

// lineSource reads newline-terminated lines from src through a fixed chunk buffer.
// A trailing "\r" is dropped, and a final line without terminator is still returned.
type lineSource struct {
	src io.Reader

	// reuse returns lines that alias the internal buffer instead of fresh strings.
	reuse bool

	buf    []byte
	bufPos int
	bufLen int
	bufErr error

	line     []byte
	pending  bool
	finished bool
	lineNo   int
}

func newLineSource(src io.Reader, size int, reuse bool) *lineSource {
	return &lineSource{
		src:   src,
		reuse: reuse,
		buf:   make([]byte, size),
		line:  make([]byte, 0, size),
	}
}

// readLine returns the next line, or io.EOF once the source is drained.
// Errors other than io.EOF are returned as they occur.
func (l *lineSource) readLine() (string, error) {
	if l.finished {
		return "", io.EOF
	}

	l.line = l.line[:0]
	l.pending = false

	for {
		// Ensure the working buffer has data before scanning for the terminator.
		if l.bufPos >= l.bufLen {
			if l.bufErr != nil {
				err := l.bufErr
				l.bufErr = nil
				if err != io.EOF {
					return "", err
				}
				l.finished = true
				// Flush a trailing line if data ended without a newline.
				if l.pending {
					return l.emit(), nil
				}
				return "", io.EOF
			}

			n, err := l.src.Read(l.buf)
			l.bufPos = 0
			l.bufLen = n
			l.bufErr = err
			continue
		}

		data := l.buf[l.bufPos:l.bufLen]
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			l.line = append(l.line, data...)
			l.bufPos = l.bufLen
			l.pending = true
			continue
		}

		l.line = append(l.line, data[:idx]...)
		l.bufPos += idx + 1
		return l.emit(), nil
	}
}

func (l *lineSource) emit() string {
	l.lineNo++
	line := l.line
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	if len(line) == 0 {
		return ""
	}
	if l.reuse {
		// Zero-copy string; valid until the next readLine.
		return unsafe.String(unsafe.SliceData(line), len(line))
	}
	return string(line)
}
