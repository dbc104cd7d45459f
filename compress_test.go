package colcsv

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

func TestCodecForPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path  string
		codec string
		want  string
	}{
		{path: "a.csv", codec: CompressionAuto, want: CompressionNone},
		{path: "a.csv.gz", codec: CompressionAuto, want: CompressionGzip},
		{path: "A.CSV.GZ", codec: CompressionAuto, want: CompressionGzip},
		{path: "a.csv.zst", codec: CompressionAuto, want: CompressionZstd},
		{path: "a.zstd", codec: CompressionAuto, want: CompressionZstd},
		{path: "a.csv.gz", codec: CompressionNone, want: CompressionNone},
		{path: "a.csv", codec: CompressionZstd, want: CompressionZstd},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, codecForPath(tc.path, tc.codec), "%s with %s", tc.path, tc.codec)
	}
}

func TestCompressedFilesRoundTrip(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"data.csv.gz", "data.csv.zst"} {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), name)

			w, err := Create(path, nil)
			require.NoError(t, err)
			require.NoError(t, w.SetColumnNames("id", "label"))
			for i := 0; i < 50; i++ {
				require.NoError(t, w.WriteRow(i, "row"))
			}
			require.NoError(t, w.Close())

			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			require.False(t, bytes.HasPrefix(raw, []byte("id,label")), "file should be compressed")

			r, err := Open(path, nil)
			require.NoError(t, err)
			defer r.Close()
			require.Equal(t, []string{"id", "label"}, r.ColumnNames())
			require.NoError(t, r.SelectNames("id"))

			n := 0
			for {
				var id int
				err := r.ReadRow(&id)
				if err == io.EOF {
					break
				}
				require.NoError(t, err)
				require.Equal(t, n, id)
				n++
			}
			require.Equal(t, 50, n)
		})
	}
}

func TestExplicitCompressionOnStreams(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewWriter(&buf, &Config{Compression: CompressionZstd, CompressionLevel: 1})
	require.NoError(t, w.SetColumnNames("a"))
	require.NoError(t, w.WriteRow("hello"))
	require.NoError(t, w.Close())

	dec, err := zstd.NewReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer dec.Close()
	plain, err := io.ReadAll(dec)
	require.NoError(t, err)
	require.Equal(t, "a\nhello\n", string(plain))

	r, err := NewReader(bytes.NewReader(buf.Bytes()), &Config{Compression: CompressionZstd})
	require.NoError(t, err)
	require.NoError(t, r.Next())
	require.Equal(t, "hello", MustGet[string](r.Row(), 0))
	require.NoError(t, r.Close())
}

func TestGzipStreamWrittenElsewhere(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte("x,y\n1,2\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	r, err := NewReader(&buf, &Config{Compression: CompressionGzip})
	require.NoError(t, err)
	var x, y int
	require.NoError(t, r.ReadRow(&x, &y))
	require.Equal(t, [2]int{1, 2}, [2]int{x, y})
}

func TestCreateLevelFollowsExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := &Config{CompressionLevel: 15}

	w, err := Create(filepath.Join(dir, "x.zst"), cfg)
	require.NoError(t, err)
	require.NoError(t, w.SetColumnNames("a"))
	require.NoError(t, w.WriteRow(1))
	require.NoError(t, w.Close())

	r, err := Open(filepath.Join(dir, "x.zst"), cfg)
	require.NoError(t, err)
	require.Equal(t, 1, MustGet[int](nextRow(t, r), 0))
	require.NoError(t, r.Close())

	_, err = Create(filepath.Join(dir, "x.gz"), cfg)
	require.ErrorContains(t, err, "invalid gzip level 15")
	_, err = os.Stat(filepath.Join(dir, "x.gz"))
	require.ErrorIs(t, err, os.ErrNotExist, "no file is left behind")

	w, err = Create(filepath.Join(dir, "x.csv"), cfg)
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func nextRow(t *testing.T, r *Reader) *Row {
	t.Helper()
	require.NoError(t, r.Next())
	return r.Row()
}

func TestOpenCorruptGzip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.csv.gz")
	require.NoError(t, os.WriteFile(path, []byte("not gzip at all"), 0o644))
	r, err := Open(path, nil)
	require.Error(t, err)
	require.Nil(t, r)
}
