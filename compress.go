package colcsv

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression codecs accepted by Config.Compression.
const (
	CompressionAuto = "auto"
	CompressionNone = "none"
	CompressionGzip = "gzip"
	CompressionZstd = "zstd"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// codecForPath resolves CompressionAuto from the file extension.
func codecForPath(path, codec string) string {
	if codec != CompressionAuto {
		return codec
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return CompressionGzip
	case ".zst", ".zstd":
		return CompressionZstd
	default:
		return CompressionNone
	}
}

// decompress wraps r according to codec. The returned closer releases the decoder only;
// r itself is left for the caller to close.
func decompress(r io.Reader, codec string) (io.Reader, io.Closer, error) {
	switch codec {
	case CompressionAuto, CompressionNone:
		return r, nil, nil
	case CompressionGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("colcsv: gzip reader: %w", err)
		}
		return zr, zr, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("colcsv: zstd reader: %w", err)
		}
		return zr, closerFunc(func() error {
			zr.Close()
			return nil
		}), nil
	default:
		return nil, nil, fmt.Errorf("%w %q", ErrUnknownCompression, codec)
	}
}

// compress wraps w according to cfg. Closing the returned closer finishes the stream
// but does not close w.
func compress(w io.Writer, codec string, cfg *Config) (io.Writer, io.Closer, error) {
	if err := cfg.checkLevel(codec); err != nil {
		return nil, nil, err
	}
	switch codec {
	case CompressionAuto, CompressionNone:
		return w, nil, nil
	case CompressionGzip:
		level := cfg.CompressionLevel
		if level == 0 {
			level = gzip.DefaultCompression
		}
		zw, err := gzip.NewWriterLevel(w, level)
		if err != nil {
			return nil, nil, fmt.Errorf("colcsv: gzip writer: %w", err)
		}
		return zw, zw, nil
	case CompressionZstd:
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(cfg.zstdLevel()))
		if err != nil {
			return nil, nil, fmt.Errorf("colcsv: zstd writer: %w", err)
		}
		return zw, zw, nil
	default:
		return nil, nil, fmt.Errorf("%w %q", ErrUnknownCompression, codec)
	}
}
