package srt

import (
	"fmt"
	"regexp"
	"strconv"
)

// blockPattern matches one cue in normalized text: index line, time line,
// then any text up to the first blank line.
const blockPattern = `(\d+)\r\n` +
	`(\d{2}):(\d{2}):(\d{2}),(\d{3})\s-->\s(\d{2}):(\d{2}):(\d{2}),(\d{3})\r\n` +
	`([\s\S]*?)\r\n\r\n`

// Grammar holds the compiled block pattern. It is immutable once built and
// safe to share between goroutines.
type Grammar struct {
	block *regexp.Regexp
}

func NewGrammar() *Grammar {
	return &Grammar{block: regexp.MustCompile(blockPattern)}
}

var defaultGrammar = NewGrammar()

// Validate fails with ErrNotSrtFormat unless text contains at least one
// block once normalized.
func (g *Grammar) Validate(text string) error {
	if !g.block.MatchString(Normalize(text)) {
		return ErrNotSrtFormat
	}
	return nil
}

// Parse normalizes text and collects every block it contains. Text between
// blocks that does not match is skipped, but text with no block at all is
// rejected with ErrNotSrtFormat. The parsed cues must already be numbered
// 1..n in time order; anything else is reported, not repaired.
func (g *Grammar) Parse(text string) (*Subtitles, error) {
	normalized := Normalize(text)

	matches := g.block.FindAllStringSubmatch(normalized, -1)
	if len(matches) == 0 {
		return nil, ErrNotSrtFormat
	}

	lines := make([]SubLine, 0, len(matches))
	for n, m := range matches {
		line, err := lineFromMatch(m)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", n+1, err)
		}
		lines = append(lines, line)
	}

	subs, err := New(lines)
	if err != nil {
		return nil, fmt.Errorf("malformed srt: %w", err)
	}
	return subs, nil
}

func lineFromMatch(m []string) (SubLine, error) {
	index, err := strconv.Atoi(m[1])
	if err != nil {
		return SubLine{}, fmt.Errorf("invalid index %q: %w", m[1], ErrIndexContiguity)
	}
	start, err := timestampFromFields(m[2], m[3], m[4], m[5])
	if err != nil {
		return SubLine{}, fmt.Errorf("invalid start timestamp: %w", err)
	}
	end, err := timestampFromFields(m[6], m[7], m[8], m[9])
	if err != nil {
		return SubLine{}, fmt.Errorf("invalid end timestamp: %w", err)
	}
	return NewSubLine(index, m[10], start, end)
}

// Parse reads SRT text with the default grammar.
func Parse(text string) (*Subtitles, error) {
	return defaultGrammar.Parse(text)
}

// Validate checks that text holds at least one SRT block.
func Validate(text string) error {
	return defaultGrammar.Validate(text)
}
