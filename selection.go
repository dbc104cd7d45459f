package colcsv

import "fmt"

// selection maps header names to positions and holds the positions a Reader extracts.
// positions is replaced, never modified in place, so rows parsed earlier keep a stable view.
type selection struct {
	names     []string
	index     map[string]int
	positions []int
	bound     bool
}

// bind installs the column names and selects every column.
func (s *selection) bind(names []string) {
	s.names = names
	s.index = make(map[string]int, len(names))
	for i, name := range names {
		if _, dup := s.index[name]; !dup {
			s.index[name] = i
		}
	}
	s.bound = true
	s.selectAll()
}

func (s *selection) reset() {
	*s = selection{}
}

func (s *selection) selectAll() {
	positions := make([]int, len(s.names))
	for i := range positions {
		positions[i] = i
	}
	s.positions = positions
}

// lookup returns the first position of name, or -1.
func (s *selection) lookup(name string) int {
	if i, ok := s.index[name]; ok {
		return i
	}
	return -1
}

// byNames selects the named columns in the order given. An unknown name leaves the
// previous selection in place.
func (s *selection) byNames(names []string) error {
	if !s.bound {
		return ErrNoHeader
	}
	positions := make([]int, len(names))
	for i, name := range names {
		pos := s.lookup(name)
		if pos < 0 {
			return fmt.Errorf("%w %q", ErrUnknownColumn, name)
		}
		positions[i] = pos
	}
	s.positions = positions
	return nil
}

// byIndices selects the given positions in the order given.
func (s *selection) byIndices(indices []int) error {
	if !s.bound {
		return ErrNoHeader
	}
	for _, idx := range indices {
		if idx < 0 || idx >= len(s.names) {
			return fmt.Errorf("%w: %d not in [0, %d)", ErrColumnIndex, idx, len(s.names))
		}
	}
	s.positions = append([]int(nil), indices...)
	return nil
}

// byMask selects the true-flagged positions in header order. A mask shorter than the
// header leaves the remaining columns unselected.
func (s *selection) byMask(mask []bool) error {
	if !s.bound {
		return ErrNoHeader
	}
	if len(mask) > len(s.names) {
		return fmt.Errorf("%w: %d > %d", ErrMaskLength, len(mask), len(s.names))
	}
	positions := make([]int, 0, len(mask))
	for i, selected := range mask {
		if selected {
			positions = append(positions, i)
		}
	}
	s.positions = positions
	return nil
}

func (s *selection) count() int {
	return len(s.positions)
}

func (s *selection) selectedPositions() []int {
	return append([]int(nil), s.positions...)
}

func (s *selection) selectedNames() []string {
	names := make([]string, len(s.positions))
	for i, pos := range s.positions {
		names[i] = s.names[pos]
	}
	return names
}
