package srt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SubLine is a single subtitle cue. Start never exceeds End.
type SubLine struct {
	Index int
	Start Timestamp
	End   Timestamp
	Text  string
}

// NewSubLine builds a cue, rejecting one that ends before it starts.
func NewSubLine(index int, text string, start, end Timestamp) (SubLine, error) {
	if start.After(end) {
		return SubLine{}, fmt.Errorf(
			"cue %d ends at %s before it starts at %s: %w",
			index,
			end,
			start,
			ErrNegativeDuration,
		)
	}
	return SubLine{
		Index: index,
		Start: start,
		End:   end,
		Text:  text,
	}, nil
}

// Duration returns End - Start.
func (l SubLine) Duration() (Timestamp, error) {
	return l.End.Sub(l.Start)
}

// Contains reports whether t lies in [Start, End].
func (l SubLine) Contains(t Timestamp) bool {
	return !t.Before(l.Start) && !t.After(l.End)
}

// Shift moves both ends of the cue by d. A negative d that would move Start
// below zero fails with ErrNegativeDuration and leaves the cue untouched.
func (l *SubLine) Shift(d time.Duration) error {
	start, err := l.Start.Offset(d)
	if err != nil {
		return fmt.Errorf("shift cue %d: %w", l.Index, err)
	}
	end, err := l.End.Offset(d)
	if err != nil {
		return fmt.Errorf("shift cue %d: %w", l.Index, err)
	}
	l.Start, l.End = start, end
	return nil
}

// String renders the cue as an SRT block, terminator included.
func (l SubLine) String() string {
	var sb strings.Builder
	l.writeTo(&sb)
	return sb.String()
}

func (l SubLine) writeTo(sb *strings.Builder) {
	sb.WriteString(strconv.Itoa(l.Index))
	sb.WriteString(lineBreak)
	sb.WriteString(l.Start.String())
	sb.WriteString(" --> ")
	sb.WriteString(l.End.String())
	sb.WriteString(lineBreak)
	sb.WriteString(l.Text)
	sb.WriteString(lineBreak)
	sb.WriteString(lineBreak)
}
