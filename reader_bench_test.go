package colcsv

import (
	"bytes"
	stdcsv "encoding/csv"
	"io"
	"strconv"
	"strings"
	"testing"
)

func benchmarkData() []byte {
	var b strings.Builder
	b.WriteString("id,name,city,score,amount,w1,w2,w3,w4,w5,w6,w7,w8,w9,w10\n")
	for i := 0; i < 2000; i++ {
		b.WriteString(strconv.Itoa(i))
		b.WriteString(",xxxxxxxxxxxxxxxx,yyyyyyyyyyyyyyyy,")
		b.WriteString(strconv.Itoa(i % 100))
		b.WriteString(",12.5,wwwwwwww,wwwwwwww,wwwwwwww,wwwwwwww,wwwwwwww,wwwwwwww,wwwwwwww,wwwwwwww,wwwwwwww,vvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvv\n")
	}
	return []byte(b.String())
}

func BenchmarkReaderSelected(b *testing.B) {
	data := benchmarkData()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	for i := 0; i < b.N; i++ {
		r, err := NewReader(bytes.NewReader(data), &Config{ReuseRow: true, BufferSize: 64 << 10})
		if err != nil {
			b.Fatal(err)
		}
		if err := r.SelectNames("id", "score"); err != nil {
			b.Fatal(err)
		}
		var id, score int
		for {
			if err := r.ReadRow(&id, &score); err != nil {
				if err == io.EOF {
					break
				}
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkEncodingCSV(b *testing.B) {
	data := benchmarkData()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	for i := 0; i < b.N; i++ {
		cr := stdcsv.NewReader(bytes.NewReader(data))
		cr.ReuseRecord = true
		if _, err := cr.Read(); err != nil {
			b.Fatal(err)
		}

		for {
			rec, err := cr.Read()
			if err != nil {
				if err == io.EOF {
					break
				}
				b.Fatal(err)
			}
			if _, err := strconv.Atoi(rec[0]); err != nil {
				b.Fatal(err)
			}
			if _, err := strconv.Atoi(rec[3]); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkWriterWriteRow(b *testing.B) {
	b.ReportAllocs()
	w := NewWriter(io.Discard, nil)
	if err := w.SetColumnNames("id", "name", "score"); err != nil {
		b.Fatal(err)
	}
	for i := 0; i < b.N; i++ {
		if err := w.WriteRow(i, "xxxxxxxxxxxxxxxx", 12.5); err != nil {
			b.Fatal(err)
		}
	}
	if err := w.Flush(); err != nil {
		b.Fatal(err)
	}
}
