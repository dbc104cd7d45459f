package colcsv

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

type readerState int

const (
	readerClosed readerState = iota
	readerOpened
	readerIterating
	readerExhausted
)

// Reader reads a header line and then data lines, decoding only the selected columns.
//
// A freshly opened Reader selects every column. Selections may be changed at any time
// and apply to lines read afterwards.
type Reader struct {
	cfg    *Config
	logger log.Logger
	path   string

	src     *lineSource
	closers []io.Closer

	sel   selection
	row   Row
	state readerState
	err   error
}

// Open opens the file at path, reads its header and selects every column. A nil cfg uses
// DefaultConfig. Compressed files are detected by extension unless cfg.Compression says
// otherwise. On error no file handle is left open.
func Open(path string, cfg *Config) (*Reader, error) {
	c, err := mergeConfig(cfg)
	if err != nil {
		return nil, err
	}
	r := &Reader{cfg: c, logger: c.Logger}
	if err := r.open(path); err != nil {
		return nil, err
	}
	return r, nil
}

// NewReader reads the header from src and selects every column. Only an explicit
// cfg.Compression of gzip or zstd decompresses src. NewReader panics if src is nil.
// Close releases the decompressor but never closes src.
func NewReader(src io.Reader, cfg *Config) (*Reader, error) {
	if src == nil {
		panic("colcsv: reader source cannot be nil")
	}
	c, err := mergeConfig(cfg)
	if err != nil {
		return nil, err
	}
	r := &Reader{cfg: c, logger: c.Logger}
	if err := r.attach(src, c.Compression); err != nil {
		return nil, err
	}
	return r, nil
}

// Reopen closes the current file, if any, and opens path with the same configuration.
// Header, selection and position all start over.
func (r *Reader) Reopen(path string) error {
	if err := r.Close(); err != nil {
		return err
	}
	return r.open(path)
}

func (r *Reader) open(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("colcsv: open %s: %w", path, err)
	}
	r.path = path
	r.closers = append(r.closers, f)
	if err := r.attach(f, codecForPath(path, r.cfg.Compression)); err != nil {
		return err
	}
	return nil
}

// attach wires src through the decompressor and reads the header. On failure every
// closer collected so far is released.
func (r *Reader) attach(src io.Reader, codec string) (err error) {
	defer func() {
		if err != nil {
			_ = r.release()
		}
	}()

	zr, zc, err := decompress(src, codec)
	if err != nil {
		return err
	}
	if zc != nil {
		// Decompressor must be released before the file underneath it.
		r.closers = append([]io.Closer{zc}, r.closers...)
	}

	r.src = newLineSource(zr, r.cfg.BufferSize, r.cfg.ReuseRow)
	r.state = readerOpened
	r.err = nil
	r.row = Row{}

	header, err := r.src.readLine()
	if err == io.EOF {
		return ErrNoHeader
	}
	if err != nil {
		return fmt.Errorf("colcsv: read header: %w", err)
	}
	r.sel.bind(Split(strings.Clone(header), r.cfg.Comma))

	level.Debug(r.logger).Log("msg", "reader opened", "path", r.path, "columns", len(r.sel.names), "codec", codec)
	return nil
}

// release closes every handle in order and marks the reader closed.
func (r *Reader) release() error {
	var errs []error
	for _, c := range r.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	r.src = nil
	r.state = readerClosed
	r.sel.reset()
	r.row = Row{}
	return errors.Join(errs...)
}

// Close releases the file and decompressor. It is safe to call more than once.
func (r *Reader) Close() error {
	if r.state == readerClosed {
		return nil
	}
	lines := r.src.lineNo
	err := r.release()
	level.Debug(r.logger).Log("msg", "reader closed", "path", r.path, "lines", lines)
	return err
}

// IsOpen reports whether the reader has a header and has not been closed.
func (r *Reader) IsOpen() bool {
	return r.state != readerClosed
}

// Comma returns the field delimiter.
func (r *Reader) Comma() byte {
	return r.cfg.Comma
}

// ColumnNames returns the header fields. The slice must not be modified.
func (r *Reader) ColumnNames() []string {
	return r.sel.names
}

// ColumnIndex returns the position of the first column called name, or -1.
func (r *Reader) ColumnIndex(name string) int {
	return r.sel.lookup(name)
}

// SelectNames selects columns by header name, in the order given. If any name is unknown
// the previous selection stays in effect.
func (r *Reader) SelectNames(names ...string) error {
	if r.state == readerClosed {
		return ErrClosed
	}
	return r.sel.byNames(names)
}

// SelectIndices selects columns by position, in the order given. Positions may repeat.
// If any position is out of range the previous selection stays in effect.
func (r *Reader) SelectIndices(indices ...int) error {
	if r.state == readerClosed {
		return ErrClosed
	}
	return r.sel.byIndices(indices)
}

// SelectMask selects the columns whose flag is true, in header order. The mask may be
// shorter than the header, in which case the remaining columns are not selected; a longer
// mask fails and leaves the previous selection in effect.
func (r *Reader) SelectMask(mask []bool) error {
	if r.state == readerClosed {
		return ErrClosed
	}
	return r.sel.byMask(mask)
}

// SelectAll selects every column in header order.
func (r *Reader) SelectAll() error {
	if r.state == readerClosed {
		return ErrClosed
	}
	r.sel.selectAll()
	return nil
}

// SelectedCount returns the number of selected columns.
func (r *Reader) SelectedCount() int {
	return r.sel.count()
}

// SelectedNames returns the names of the selected columns in selection order.
func (r *Reader) SelectedNames() []string {
	return r.sel.selectedNames()
}

// SelectedIndices returns a copy of the selected column positions in selection order.
func (r *Reader) SelectedIndices() []int {
	return r.sel.selectedPositions()
}

// Next reads the next line into the current Row. It returns io.EOF when the source is
// exhausted, and keeps returning it on later calls.
func (r *Reader) Next() error {
	if r.state == readerClosed {
		return ErrClosed
	}
	if r.err != nil {
		return r.err
	}

	line, err := r.src.readLine()
	if err != nil {
		r.err = err
		if err == io.EOF {
			r.state = readerExhausted
			level.Debug(r.logger).Log("msg", "reader exhausted", "path", r.path, "lines", r.src.lineNo)
		}
		return err
	}

	r.state = readerIterating
	r.row.parse(line, r.cfg.Comma, r.sel.positions, r.src.lineNo)
	if r.cfg.StrictFieldCount && r.row.NumFields() != len(r.sel.names) {
		return fmt.Errorf("%w: line %d has %d fields, header has %d", ErrFieldCount, r.row.lineNo, r.row.NumFields(), len(r.sel.names))
	}
	return nil
}

// Row returns the current row, or nil before the first successful Next. The Row is
// overwritten by the following Next or ReadRow.
func (r *Reader) Row() *Row {
	if r.state != readerIterating {
		return nil
	}
	return &r.row
}

// ReadRow reads the next line and decodes its selected fields into dst.
// The line is consumed even when len(dst) does not match SelectedCount; in that case
// ErrArity is returned and nothing is decoded.
func (r *Reader) ReadRow(dst ...any) error {
	if err := r.Next(); err != nil {
		return err
	}
	return r.row.Scan(dst...)
}

// Line returns the number of lines read so far, including the header.
func (r *Reader) Line() int {
	if r.src == nil {
		return 0
	}
	return r.src.lineNo
}
