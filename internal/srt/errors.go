package srt

import (
	"errors"
	"fmt"
)

var (
	// ErrNotSrtFormat is returned when normalized text holds no SRT block.
	ErrNotSrtFormat = errors.New("text does not match srt format")

	// ErrNegativeDuration is returned when arithmetic or a time shift would
	// produce a timestamp below zero or a cue ending before it starts.
	ErrNegativeDuration = errors.New("negative duration")

	// ErrIndexContiguity marks a broken Subtitles invariant: indices that are
	// not 1..n in position order, or cues out of start order.
	ErrIndexContiguity = errors.New("subtitles index/order consistency violated")

	// ErrTimestampOverflow is returned when a checked shift would carry the
	// hours field past MaxUint32.
	ErrTimestampOverflow = errors.New("timestamp overflow")
)

// ConsistencyError describes where a Subtitles invariant was broken.
type ConsistencyError struct {
	Position int // 0-based position in the sequence
	Index    int // index carried by the offending cue
	Reason   string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf(
		"cue at position %d (index %d): %s",
		e.Position,
		e.Index,
		e.Reason,
	)
}

func (e *ConsistencyError) Unwrap() error {
	return ErrIndexContiguity
}
