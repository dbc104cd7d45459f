package colcsv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg, err := mergeConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, byte(DefaultComma), cfg.Comma)
	assert.Equal(t, DefaultCompression, cfg.Compression)
	assert.Equal(t, DefaultBufferSize, cfg.BufferSize)
	assert.Equal(t, DefaultMaxOpenFiles, cfg.MaxOpenFiles)
	assert.NotNil(t, cfg.Logger)
	assert.False(t, cfg.UseCRLF)
	assert.False(t, cfg.ReuseRow)
}

func TestConfigMergeDoesNotModifyCaller(t *testing.T) {
	in := &Config{Comma: ';'}
	cfg, err := mergeConfig(in)
	require.NoError(t, err)

	assert.Equal(t, byte(';'), cfg.Comma)
	assert.Equal(t, DefaultBufferSize, cfg.BufferSize)
	assert.Equal(t, 0, in.BufferSize)
	assert.Empty(t, in.Compression)
	assert.Nil(t, in.Logger)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		expectError bool
		errorMsg    string
	}{
		{
			name: "valid config",
			cfg:  Config{Comma: '\t', Compression: CompressionZstd, CompressionLevel: 3},
		},
		{
			name: "empty config",
			cfg:  Config{},
		},
		{
			name: "gzip best",
			cfg:  Config{Compression: CompressionGzip, CompressionLevel: 9},
		},
		{
			name: "auto accepts zstd level",
			cfg:  Config{CompressionLevel: 15},
		},
		{
			name: "none ignores level",
			cfg:  Config{Compression: CompressionNone, CompressionLevel: 50},
		},
		{
			name:        "auto level beyond every codec",
			cfg:         Config{CompressionLevel: 23},
			expectError: true,
			errorMsg:    "invalid compression level",
		},
		{
			name:        "newline comma",
			cfg:         Config{Comma: '\n'},
			expectError: true,
			errorMsg:    "invalid field delimiter",
		},
		{
			name:        "carriage return comma",
			cfg:         Config{Comma: '\r'},
			expectError: true,
			errorMsg:    "invalid field delimiter",
		},
		{
			name:        "invalid codec",
			cfg:         Config{Compression: "snappy"},
			expectError: true,
			errorMsg:    "unknown compression codec",
		},
		{
			name:        "zstd level too high",
			cfg:         Config{Compression: CompressionZstd, CompressionLevel: 23},
			expectError: true,
			errorMsg:    "invalid zstd level",
		},
		{
			name:        "gzip level too high",
			cfg:         Config{Compression: CompressionGzip, CompressionLevel: 10},
			expectError: true,
			errorMsg:    "invalid gzip level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mergeConfig(&tt.cfg)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
