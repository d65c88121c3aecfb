// Package line implements the chunk's run-length source-line map: a
// compact encoding from instruction index to source line, storing each
// distinct source line once together with the count of instructions that
// originated from it.
package line

import "sort"

// entry is one run: a source line and how many consecutive instructions
// in the chunk map to it.
type entry struct {
	line             int
	instructionCount int
}

// Map is an ordered sequence of (line, instructionCount) pairs. It grows
// through append, so its capacity follows Go's slice growth; it does not
// start from a fixed capacity of 8.
type Map struct {
	entries []entry
}

// New returns an empty line map.
func New() *Map {
	return &Map{}
}

// Len reports the number of distinct line runs currently recorded.
func (m *Map) Len() int {
	return len(m.entries)
}

// Encode records that the next instruction originates from the given
// source line, returning the index of the run it was folded into (or
// newly created as).
//
// Three cases, in order of how often they occur for normally-increasing
// source text:
//   - the line matches the last recorded run: its count is incremented.
//   - the line is greater than the last recorded run's line: a new run is
//     appended.
//   - the line is less than the last recorded run's line (an out-of-order
//     insertion): the existing runs are scanned for a match first; if
//     none is found, a new run is appended and the whole slice is
//     re-sorted ascending by line. The returned index is the matching (or
//     newly inserted) run's position *after* sorting — see SPEC_FULL.md
//     §9 item 5 for why this module reports the post-sort index rather
//     than the original source's pre-sort insertion position.
func (m *Map) Encode(sourceLine int) int {
	if len(m.entries) == 0 {
		m.entries = append(m.entries, entry{line: sourceLine, instructionCount: 1})
		return 0
	}

	last := &m.entries[len(m.entries)-1]
	switch {
	case last.line == sourceLine:
		last.instructionCount++
		return len(m.entries) - 1
	case last.line < sourceLine:
		m.entries = append(m.entries, entry{line: sourceLine, instructionCount: 1})
		return len(m.entries) - 1
	default:
		for i := range m.entries {
			if m.entries[i].line == sourceLine {
				m.entries[i].instructionCount++
				return i
			}
		}

		m.entries = append(m.entries, entry{line: sourceLine, instructionCount: 1})
		sort.SliceStable(m.entries, func(i, j int) bool {
			return m.entries[i].line < m.entries[j].line
		})

		for i := range m.entries {
			if m.entries[i].line == sourceLine {
				return i
			}
		}
		return len(m.entries) - 1 // unreachable: sourceLine was just inserted
	}
}

// Decode returns the source line that instruction instructionIndex
// belongs to, via a cumulative-count prefix scan, or -1 if the index is
// out of range.
func (m *Map) Decode(instructionIndex int) int {
	if instructionIndex < 0 {
		return -1
	}

	maxIndex := -1
	for _, e := range m.entries {
		maxIndex += e.instructionCount
		if maxIndex >= instructionIndex {
			return e.line
		}
	}

	return -1
}
