package srt

import (
	"fmt"
	"iter"
	"slices"
	"sort"
	"time"
)

// Subtitles is an ordered collection of cues. After every method returns,
// cue i (0-based) carries Index i+1 and cues are sorted by Start.
//
// A Subtitles value does no locking; concurrent mutation must be serialized
// by the caller.
type Subtitles struct {
	lines []SubLine
}

// New wraps lines after checking the index and ordering invariants. The
// slice is copied.
func New(lines []SubLine) (*Subtitles, error) {
	s := &Subtitles{lines: slices.Clone(lines)}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate re-checks every invariant over the whole sequence.
func (s *Subtitles) Validate() error {
	for i := range s.lines {
		if err := checkPosition(s.lines, i); err != nil {
			return err
		}
	}
	return nil
}

func checkPosition(lines []SubLine, i int) error {
	line := lines[i]
	if line.Index != i+1 {
		return &ConsistencyError{
			Position: i,
			Index:    line.Index,
			Reason:   fmt.Sprintf("expected index %d", i+1),
		}
	}
	if line.Start.After(line.End) {
		return fmt.Errorf(
			"cue %d ends at %s before it starts at %s: %w",
			line.Index,
			line.End,
			line.Start,
			ErrNegativeDuration,
		)
	}
	if i > 0 && line.Start.Before(lines[i-1].Start) {
		return &ConsistencyError{
			Position: i,
			Index:    line.Index,
			Reason: fmt.Sprintf(
				"starts at %s, before previous cue start %s",
				line.Start,
				lines[i-1].Start,
			),
		}
	}
	return nil
}

// Len returns the number of cues.
func (s *Subtitles) Len() int {
	return len(s.lines)
}

// ByIndex returns the cue with the given 1-based index, or nil. The
// returned pointer may be used to edit the cue in place.
func (s *Subtitles) ByIndex(index int) *SubLine {
	if index < 1 || index > len(s.lines) {
		return nil
	}
	return &s.lines[index-1]
}

// ByTime returns the cue whose [Start, End] range contains t, or nil when t
// falls before the first cue, after the last one or in a gap. When t is both
// the end of one cue and the start of the next, the earlier cue wins.
func (s *Subtitles) ByTime(t Timestamp) *SubLine {
	i := sort.Search(len(s.lines), func(i int) bool {
		return !s.lines[i].End.Before(t)
	})
	if i < len(s.lines) && !t.Before(s.lines[i].Start) {
		return &s.lines[i]
	}
	return nil
}

// NearestByTime returns the cue on screen at t if every cue stayed visible
// until the next one starts. The last cue still ends at its own End. When t
// is both the end of one cue and the start of the next, the later cue wins.
func (s *Subtitles) NearestByTime(t Timestamp) *SubLine {
	i := sort.Search(len(s.lines), func(i int) bool {
		return s.lines[i].Start.After(t)
	}) - 1
	if i < 0 {
		return nil
	}
	if i == len(s.lines)-1 && t.After(s.lines[i].End) {
		return nil
	}
	return &s.lines[i]
}

// Push appends line, which must carry index Len()+1 and must not start
// before the current last cue.
func (s *Subtitles) Push(line SubLine) error {
	n := len(s.lines)
	if line.Index != n+1 {
		return &ConsistencyError{
			Position: n,
			Index:    line.Index,
			Reason:   fmt.Sprintf("pushed cue must have index %d", n+1),
		}
	}
	s.lines = append(s.lines, line)
	if err := checkPosition(s.lines, n); err != nil {
		s.lines = s.lines[:n]
		return err
	}
	return nil
}

// Insert places line at position line.Index and renumbers every following
// cue. The index must be in 1..Len()+1 and line must fit the start order of
// its neighbours.
func (s *Subtitles) Insert(line SubLine) error {
	pos := line.Index - 1
	if pos < 0 || pos > len(s.lines) {
		return &ConsistencyError{
			Position: pos,
			Index:    line.Index,
			Reason:   fmt.Sprintf("insert index out of range 1..%d", len(s.lines)+1),
		}
	}

	lines := slices.Insert(slices.Clone(s.lines), pos, line)
	for i := pos + 1; i < len(lines); i++ {
		lines[i].Index++
	}
	for i := pos; i <= pos+1 && i < len(lines); i++ {
		if err := checkPosition(lines, i); err != nil {
			return err
		}
	}

	s.lines = lines
	return nil
}

// Remove deletes the cue with the given index and renumbers the cues after
// it.
func (s *Subtitles) Remove(index int) (SubLine, error) {
	if index < 1 || index > len(s.lines) {
		return SubLine{}, &ConsistencyError{
			Position: index - 1,
			Index:    index,
			Reason:   fmt.Sprintf("remove index out of range 1..%d", len(s.lines)),
		}
	}
	removed := s.lines[index-1]
	s.lines = slices.Delete(s.lines, index-1, index)
	for i := index - 1; i < len(s.lines); i++ {
		s.lines[i].Index--
	}
	return removed, nil
}

// Pop removes and returns the last cue.
func (s *Subtitles) Pop() (SubLine, bool) {
	n := len(s.lines)
	if n == 0 {
		return SubLine{}, false
	}
	last := s.lines[n-1]
	s.lines = s.lines[:n-1]
	return last, true
}

// All yields every cue in index order together with its index. Cues may be
// edited through the pointer; keeping the start order intact is up to the
// caller.
func (s *Subtitles) All() iter.Seq2[int, *SubLine] {
	return func(yield func(int, *SubLine) bool) {
		for i := range s.lines {
			if !yield(i+1, &s.lines[i]) {
				return
			}
		}
	}
}

// Lines returns a copy of the cues.
func (s *Subtitles) Lines() []SubLine {
	return slices.Clone(s.lines)
}

// Clone returns an independent copy of s.
func (s *Subtitles) Clone() *Subtitles {
	return &Subtitles{lines: slices.Clone(s.lines)}
}

// ForEach applies fn to every cue in index order. If fn fails, the error is
// returned and none of the edits are kept. fn must not change Index or
// reorder Start times; that is not re-checked.
func (s *Subtitles) ForEach(fn func(*SubLine) error) error {
	lines := slices.Clone(s.lines)
	for i := range lines {
		if err := fn(&lines[i]); err != nil {
			return err
		}
	}
	s.lines = lines
	return nil
}

// Shift moves every cue by d. Nothing changes if any cue would start below
// zero.
func (s *Subtitles) Shift(d time.Duration) error {
	return s.ForEach(func(line *SubLine) error {
		return line.Shift(d)
	})
}

// ShiftRange moves cues from..to (inclusive, 1-based) by d. It fails without
// changes if a cue would go below zero or the shifted cues would overtake
// their neighbours.
func (s *Subtitles) ShiftRange(from, to int, d time.Duration) error {
	if from < 1 || to > len(s.lines) || from > to {
		return &ConsistencyError{
			Position: from - 1,
			Index:    from,
			Reason:   fmt.Sprintf("shift range %d..%d outside 1..%d", from, to, len(s.lines)),
		}
	}

	lines := slices.Clone(s.lines)
	for i := from - 1; i < to; i++ {
		if err := lines[i].Shift(d); err != nil {
			return err
		}
	}
	for _, i := range []int{from - 1, to} {
		if i < len(lines) {
			if err := checkPosition(lines, i); err != nil {
				return err
			}
		}
	}

	s.lines = lines
	return nil
}

// Duration returns the end time of the last cue.
func (s *Subtitles) Duration() Timestamp {
	if len(s.lines) == 0 {
		return Timestamp{}
	}
	return s.lines[len(s.lines)-1].End
}
