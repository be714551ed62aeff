package srt

import (
	"io"
	"strings"
)

// Render writes the cues back as SRT text with CRLF line endings. The last
// cue's terminator is followed by one extra blank line, so for any text
// accepted by Parse, Render(Parse(text)) equals Normalize(text) + "\r\n\r\n".
// An empty collection renders as the empty string.
func Render(s *Subtitles) string {
	if len(s.lines) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, line := range s.lines {
		line.Text = normalizeLineEndings(line.Text)
		line.writeTo(&sb)
	}
	sb.WriteString(fileTrailer)
	return sb.String()
}

func (s *Subtitles) String() string {
	return Render(s)
}

// WriteTo implements io.WriterTo.
func (s *Subtitles) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, Render(s))
	return int64(n), err
}
