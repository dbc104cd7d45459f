package colcsv

import (
	"fmt"
	"strings"
)

// splitBounds appends the start/end offsets of every field in line to bounds[:0] and
// returns it. A line with k delimiters always yields k+1 fields; an empty line yields a
// single empty field.
func splitBounds(line string, comma byte, bounds []int) []int {
	n := countFields(line, comma)
	if cap(bounds) < 2*n {
		bounds = make([]int, 0, 2*n)
	}
	bounds = bounds[:0]

	start := 0
	for i := 0; i < n-1; i++ {
		end := start + strings.IndexByte(line[start:], comma)
		bounds = append(bounds, start, end)
		start = end + 1
	}
	return append(bounds, start, len(line))
}

// countFields returns the number of delimiter occurrences in line plus one.
func countFields(line string, comma byte) int {
	n := 1
	for i := 0; i < len(line); i++ {
		if line[i] == comma {
			n++
		}
	}
	return n
}

// Split returns every field of line. The fields share line's storage.
func Split(line string, comma byte) []string {
	bounds := splitBounds(line, comma, nil)
	fields := make([]string, len(bounds)/2)
	for i := range fields {
		fields[i] = line[bounds[2*i]:bounds[2*i+1]]
	}
	return fields
}

// SplitSelected returns only the fields at positions, in the order given. Positions may
// repeat. Unselected fields are located but never sliced.
func SplitSelected(line string, comma byte, positions []int) ([]string, error) {
	bounds := splitBounds(line, comma, nil)
	return selectFields(line, bounds, positions)
}

func selectFields(line string, bounds []int, positions []int) ([]string, error) {
	fields := make([]string, len(positions))
	for i, pos := range positions {
		if pos < 0 {
			return nil, fmt.Errorf("%w: %d", ErrColumnIndex, pos)
		}
		if 2*pos+1 >= len(bounds) {
			return nil, fmt.Errorf("%w: position %d on a line with %d fields", ErrFieldCount, pos, len(bounds)/2)
		}
		fields[i] = line[bounds[2*pos]:bounds[2*pos+1]]
	}
	return fields, nil
}
