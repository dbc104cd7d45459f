package colcsv

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Writer emits a header of column names followed by one line per row.
//
// The header is written by the first WriteRow or NewRow. Column names can no longer be
// changed after that.
type Writer struct {
	cfg    *Config
	logger log.Logger
	path   string

	dst     *bufio.Writer
	closers []io.Closer

	names         []string
	headerWritten bool
	open          *RowBuilder
	line          []byte
	rows          int
	closed        bool

	err error
}

// Create creates or truncates the file at path. A .gz or .zst extension compresses the
// output unless cfg.Compression says otherwise. A nil cfg uses DefaultConfig.
func Create(path string, cfg *Config) (*Writer, error) {
	c, err := mergeConfig(cfg)
	if err != nil {
		return nil, err
	}
	codec := codecForPath(path, c.Compression)
	if err := c.checkLevel(codec); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("colcsv: create %s: %w", path, err)
	}
	zw, zc, err := compress(f, codec, c)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w := newWriter(zw, c)
	w.path = path
	if zc != nil {
		w.closers = append(w.closers, zc)
	}
	w.closers = append(w.closers, f)
	return w, nil
}

// NewWriter creates a Writer on dst. Only an explicit cfg.Compression of gzip or zstd
// compresses the output. Close finishes the compressed stream but never closes dst.
// NewWriter panics if dst is nil or cfg is invalid.
func NewWriter(dst io.Writer, cfg *Config) *Writer {
	if dst == nil {
		panic(errWriterNoTarget.Error())
	}
	c, err := mergeConfig(cfg)
	if err != nil {
		panic(err.Error())
	}
	zw, zc, err := compress(dst, c.Compression, c)
	if err != nil {
		panic(err.Error())
	}
	w := newWriter(zw, c)
	if zc != nil {
		w.closers = append(w.closers, zc)
	}
	return w
}

var errWriterNoTarget = errors.New("colcsv: writer destination cannot be nil")

func newWriter(dst io.Writer, c *Config) *Writer {
	return &Writer{
		cfg:    c,
		logger: c.Logger,
		dst:    bufio.NewWriterSize(dst, c.BufferSize),
		line:   make([]byte, 0, 128),
	}
}

// IsOpen reports whether the writer has not been closed.
func (w *Writer) IsOpen() bool {
	return !w.closed
}

// Comma returns the field delimiter.
func (w *Writer) Comma() byte {
	return w.cfg.Comma
}

// ColumnNames returns the configured column names.
func (w *Writer) ColumnNames() []string {
	return w.names
}

// SetColumnNames sets the header. It fails once the header has been written.
func (w *Writer) SetColumnNames(names ...string) error {
	if w.closed {
		return ErrClosed
	}
	if w.headerWritten {
		return ErrHeaderWritten
	}
	for _, name := range names {
		if !validField([]byte(name), w.cfg.Comma) {
			return fmt.Errorf("%w: column name %q", ErrInvalidField, name)
		}
	}
	w.names = append([]string(nil), names...)
	return nil
}

// WriteRow writes one line holding values, which must match the column names in number.
// The line is formatted completely before anything is written, so a failing value leaves
// the output untouched.
func (w *Writer) WriteRow(values ...any) error {
	if err := w.check(); err != nil {
		return err
	}
	if w.open != nil {
		return ErrRowOpen
	}
	if len(values) != len(w.names) {
		return fmt.Errorf("%w: %d values for %d columns", ErrArity, len(values), len(w.names))
	}

	line := w.line[:0]
	for i, v := range values {
		if i > 0 {
			line = append(line, w.cfg.Comma)
		}
		var err error
		if line, err = appendField(line, v, w.cfg.Comma); err != nil {
			return fmt.Errorf("column %q: %w", w.names[i], err)
		}
	}
	line = w.terminate(line)
	w.line = line

	if err := w.writeHeader(); err != nil {
		return err
	}
	return w.writeLine(line)
}

// NewRow writes the header if needed and returns a builder for the next line. Only one
// builder may be open at a time; Flush releases it.
func (w *Writer) NewRow() (*RowBuilder, error) {
	if err := w.check(); err != nil {
		return nil, err
	}
	if w.open != nil {
		return nil, ErrRowOpen
	}
	if err := w.writeHeader(); err != nil {
		return nil, err
	}
	w.open = &RowBuilder{w: w, buf: make([]byte, 0, 128)}
	return w.open, nil
}

// Flush flushes pending buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w.closed {
		return ErrClosed
	}
	if w.err != nil {
		return w.err
	}
	if err := w.dst.Flush(); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Error reports the first error encountered by the writer.
func (w *Writer) Error() error {
	return w.err
}

// Close flushes an open RowBuilder, writes the header if no row has, flushes buffered
// data, finishes any compressed stream and closes the file opened by Create. It is safe
// to call more than once.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	// Failures below are recorded in w.err and reported once.
	if w.open != nil {
		_ = w.open.Flush()
	}
	if w.err == nil && len(w.names) > 0 {
		// A file with no rows still carries its header.
		_ = w.writeHeader()
	}
	if w.err == nil {
		_ = w.Flush()
	}
	var errs []error
	if w.err != nil {
		errs = append(errs, w.err)
	}
	for _, c := range w.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	w.closers = nil
	w.closed = true
	level.Debug(w.logger).Log("msg", "writer closed", "path", w.path, "rows", w.rows)
	return errors.Join(errs...)
}

// Reopen closes the current output and creates path with the same configuration. The
// column names are kept and the header is written again by the first row.
func (w *Writer) Reopen(path string) error {
	if err := w.Close(); err != nil {
		return err
	}
	nw, err := Create(path, w.cfg)
	if err != nil {
		return err
	}
	nw.names = w.names
	*w = *nw
	return nil
}

func (w *Writer) check() error {
	if w.closed {
		return ErrClosed
	}
	if w.err != nil {
		return w.err
	}
	if len(w.names) == 0 {
		return ErrNoColumns
	}
	return nil
}

func (w *Writer) writeHeader() error {
	if w.headerWritten {
		return nil
	}
	var line []byte
	for i, name := range w.names {
		if i > 0 {
			line = append(line, w.cfg.Comma)
		}
		line = append(line, name...)
	}
	if _, err := w.dst.Write(w.terminate(line)); err != nil {
		w.err = err
		return err
	}
	w.headerWritten = true
	level.Debug(w.logger).Log("msg", "header written", "path", w.path, "columns", len(w.names))
	return nil
}

func (w *Writer) writeLine(line []byte) error {
	if _, err := w.dst.Write(line); err != nil {
		w.err = err
		return err
	}
	w.rows++
	return nil
}

func (w *Writer) terminate(line []byte) []byte {
	if w.cfg.UseCRLF {
		return append(line, '\r', '\n')
	}
	return append(line, '\n')
}

// RowBuilder accumulates the fields of one line. Each column is followed by a delimiter;
// Flush turns the last delimiter into the line terminator.
type RowBuilder struct {
	w       *Writer
	buf     []byte
	columns int
	done    bool
}

// WriteColumn appends one value.
func (b *RowBuilder) WriteColumn(v any) error {
	if b.done {
		return ErrRowClosed
	}
	buf, err := appendField(b.buf, v, b.w.cfg.Comma)
	if err != nil {
		return err
	}
	b.buf = append(buf, b.w.cfg.Comma)
	b.columns++
	return nil
}

// WriteColumns appends values in order, stopping at the first failure.
func (b *RowBuilder) WriteColumns(values ...any) error {
	for _, v := range values {
		if err := b.WriteColumn(v); err != nil {
			return err
		}
	}
	return nil
}

// Columns returns the number of values written so far.
func (b *RowBuilder) Columns() int {
	return b.columns
}

// Flush terminates the line, hands it to the Writer and releases the builder. A builder
// with no columns produces an empty line.
func (b *RowBuilder) Flush() error {
	if b.done {
		return ErrRowClosed
	}
	b.done = true
	b.w.open = nil

	line := b.buf
	if b.columns > 0 {
		// Drop the trailing delimiter.
		line = line[:len(line)-1]
	}
	line = b.w.terminate(line)
	if b.w.err != nil {
		return b.w.err
	}
	return b.w.writeLine(line)
}
