package colcsv

import (
	"fmt"

	"github.com/go-kit/log"
	"github.com/klauspost/compress/zstd"
)

const (
	// DefaultComma is the field delimiter used when Config.Comma is zero.
	DefaultComma = ','
	// DefaultBufferSize is the read and write buffer size in bytes.
	DefaultBufferSize = 1 << 10 // 1024 bytes
	// DefaultCompression picks the codec from the file extension.
	DefaultCompression = CompressionAuto
	// DefaultMaxOpenFiles bounds the concurrent readers started by ReadFiles.
	DefaultMaxOpenFiles = 4
)

// Config holds the settings shared by Reader and Writer.
type Config struct {
	Comma            byte       // field delimiter, default ','
	UseCRLF          bool       // Writer terminates lines with "\r\n"
	ReuseRow         bool       // Reader recycles its line buffer between rows
	StrictFieldCount bool       // Reader.Next fails on lines whose field count differs from the header
	Compression      string     // auto, none, gzip or zstd
	CompressionLevel int        // codec level for the Writer, 0 for the codec default
	BufferSize       int        // bytes buffered between the file and the line source or sink
	MaxOpenFiles     int        // concurrent readers in ReadFiles
	Logger           log.Logger // lifecycle events at debug level, nil for none
}

// DefaultConfig returns the configuration used when none is provided.
func DefaultConfig() *Config {
	return &Config{
		Comma:        DefaultComma,
		Compression:  DefaultCompression,
		BufferSize:   DefaultBufferSize,
		MaxOpenFiles: DefaultMaxOpenFiles,
		Logger:       log.NewNopLogger(),
	}
}

// mergeConfig copies c, fills every unset value with its default and validates the result.
// The caller's Config is never modified.
func mergeConfig(c *Config) (*Config, error) {
	if c == nil {
		return DefaultConfig(), nil
	}
	merged := *c
	merged.applyDefaults()
	if err := merged.validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Comma == 0 {
		c.Comma = d.Comma
	}
	if c.Compression == "" {
		c.Compression = d.Compression
	}
	if c.BufferSize <= 0 {
		c.BufferSize = d.BufferSize
	}
	if c.MaxOpenFiles <= 0 {
		c.MaxOpenFiles = d.MaxOpenFiles
	}
	if c.Logger == nil {
		c.Logger = d.Logger
	}
}

func (c *Config) validate() error {
	if c.Comma == '\n' || c.Comma == '\r' {
		return fmt.Errorf("%w: %q", ErrInvalidComma, c.Comma)
	}
	switch c.Compression {
	case CompressionAuto:
		// The codec is only known once a path is resolved; accept any level some codec takes.
		if c.CompressionLevel < -2 || c.CompressionLevel > 22 {
			return fmt.Errorf("colcsv: invalid compression level %d, must be between -2 and 22", c.CompressionLevel)
		}
	case CompressionNone:
	case CompressionGzip, CompressionZstd:
		return c.checkLevel(c.Compression)
	default:
		return fmt.Errorf("%w %q, must be one of: auto, none, gzip, zstd", ErrUnknownCompression, c.Compression)
	}
	return nil
}

// checkLevel validates CompressionLevel against the resolved codec.
func (c *Config) checkLevel(codec string) error {
	switch codec {
	case CompressionGzip:
		if c.CompressionLevel < -2 || c.CompressionLevel > 9 {
			return fmt.Errorf("colcsv: invalid gzip level %d, must be between -2 and 9", c.CompressionLevel)
		}
	case CompressionZstd:
		if c.CompressionLevel < 0 || c.CompressionLevel > 22 {
			return fmt.Errorf("colcsv: invalid zstd level %d, must be between 0 and 22", c.CompressionLevel)
		}
	}
	return nil
}

// zstdLevel maps CompressionLevel onto the encoder's speed presets.
func (c *Config) zstdLevel() zstd.EncoderLevel {
	if c.CompressionLevel == 0 {
		return zstd.SpeedDefault
	}
	return zstd.EncoderLevelFromZstd(c.CompressionLevel)
}
