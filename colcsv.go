// # ColCSV: Column-Selecting Delimited Text Reader and Writer for Go
//
// ColCSV reads and writes delimiter-separated text files where the first line is a
// header of column names. It is built for the common case of pulling a handful of
// typed columns out of wide files without tokenising or copying every field.
//
// # Features
//
// - Reader with header parsing and column selection by name, index list or boolean mask.
// - Offset-table field splitting: a line is scanned once and only selected fields are sliced.
// - Typed decoding into ints, uints, floats, bools, strings, Char, decimal.Decimal, uuid.UUID
//   and any encoding.TextUnmarshaler, with whole-field and range checks.
// - Writer with a fixed header, arity-checked WriteRow and a RowBuilder for incremental rows.
// - Transparent gzip and zstd files, chosen by extension or Config.Compression.
// - ReadFiles for bounded concurrent scans of many files.
//
// # Format
//
// A field is the text between two delimiter occurrences on one line. There is no quoting:
// values containing the delimiter or a line break are rejected by the Writer. Lines end in
// "\n" or "\r\n"; the final line may omit its terminator.
//
// # Lifetimes
//
// A Row is owned by its Reader and is valid only until the next call to Next or ReadRow.
// With Config.ReuseRow the line buffer is recycled, so strings obtained from a Row must be
// copied before advancing. Reader, Writer, Row and RowBuilder are not safe for concurrent use.
package colcsv
