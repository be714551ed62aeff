package srt

import (
	"regexp"
	"strings"
	"unicode"
)

// lineBreak is the canonical line ending used after normalization and in
// rendered output.
const lineBreak = "\r\n"

// fileTrailer is the blank line written after the last cue's terminator.
const fileTrailer = lineBreak + lineBreak

var lineEndingRegex = regexp.MustCompile(`\r\n|\r|\n`)

// Normalize rewrites every line ending to CRLF and replaces any trailing
// whitespace with a single blank-line terminator, so the last block is
// terminated like all the others. A leading UTF-8 BOM is dropped.
func Normalize(text string) string {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.TrimRightFunc(text, unicode.IsSpace)
	text = lineEndingRegex.ReplaceAllString(text, lineBreak)
	return text + lineBreak + lineBreak
}

func normalizeLineEndings(text string) string {
	return lineEndingRegex.ReplaceAllString(text, lineBreak)
}
