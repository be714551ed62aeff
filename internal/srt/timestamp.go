package srt

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute

	// maxMilliseconds is the largest magnitude a Timestamp can hold.
	maxMilliseconds = (math.MaxUint32+1)*msPerHour - 1
)

// Timestamp is a point in time within a media file. Minutes and seconds are
// always below 60 and milliseconds below 1000; hours go up to MaxUint32.
type Timestamp struct {
	Hours        uint32
	Minutes      uint32
	Seconds      uint32
	Milliseconds uint32
}

// NewTimestamp builds a Timestamp from possibly overflowing components,
// carrying the excess upward: NewTimestamp(1, 120, 120, 1000) equals
// NewTimestamp(3, 2, 1, 0). Hours carried past MaxUint32 wrap.
func NewTimestamp(hours, minutes, seconds, milliseconds uint32) Timestamp {
	return carry(
		uint64(hours),
		uint64(minutes),
		uint64(seconds),
		uint64(milliseconds),
	)
}

func carry(hours, minutes, seconds, milliseconds uint64) Timestamp {
	seconds += milliseconds / msPerSecond
	milliseconds %= msPerSecond

	minutes += seconds / 60
	seconds %= 60

	hours += minutes / 60
	minutes %= 60

	return Timestamp{
		Hours:        uint32(hours),
		Minutes:      uint32(minutes),
		Seconds:      uint32(seconds),
		Milliseconds: uint32(milliseconds),
	}
}

// FromMilliseconds builds a Timestamp from a total millisecond magnitude.
// Magnitudes whose hours exceed MaxUint32 wrap.
func FromMilliseconds(ms uint64) Timestamp {
	return carry(0, 0, 0, ms)
}

// FromMicroseconds builds a Timestamp from a total microsecond magnitude,
// truncating the sub-millisecond part.
func FromMicroseconds(us uint64) Timestamp {
	return FromMilliseconds(us / 1000)
}

// FromDuration converts a non-negative time.Duration, truncated to the
// millisecond.
func FromDuration(d time.Duration) (Timestamp, error) {
	if d < 0 {
		return Timestamp{}, fmt.Errorf("duration %s: %w", d, ErrNegativeDuration)
	}
	return FromMilliseconds(uint64(d.Milliseconds())), nil
}

// TotalMilliseconds returns the timestamp as a single millisecond count.
func (t Timestamp) TotalMilliseconds() uint64 {
	return uint64(t.Hours)*msPerHour +
		uint64(t.Minutes)*msPerMinute +
		uint64(t.Seconds)*msPerSecond +
		uint64(t.Milliseconds)
}

// Duration converts t to a time.Duration.
func (t Timestamp) Duration() time.Duration {
	return time.Duration(t.TotalMilliseconds()) * time.Millisecond
}

// Add returns t + o. Like NewTimestamp, hours past MaxUint32 wrap; use
// Offset for a checked shift.
func (t Timestamp) Add(o Timestamp) Timestamp {
	return carry(
		uint64(t.Hours)+uint64(o.Hours),
		uint64(t.Minutes)+uint64(o.Minutes),
		uint64(t.Seconds)+uint64(o.Seconds),
		uint64(t.Milliseconds)+uint64(o.Milliseconds),
	)
}

// AddAssign adds o to t in place.
func (t *Timestamp) AddAssign(o Timestamp) {
	*t = t.Add(o)
}

// Sub returns t - o, borrowing across fields as needed. It fails with
// ErrNegativeDuration when o is later than t.
func (t Timestamp) Sub(o Timestamp) (Timestamp, error) {
	if t.Before(o) {
		return Timestamp{}, fmt.Errorf("%s - %s: %w", t, o, ErrNegativeDuration)
	}

	hours := int64(t.Hours) - int64(o.Hours)
	minutes := int64(t.Minutes) - int64(o.Minutes)
	seconds := int64(t.Seconds) - int64(o.Seconds)
	milliseconds := int64(t.Milliseconds) - int64(o.Milliseconds)

	if milliseconds < 0 {
		milliseconds += msPerSecond
		seconds--
	}
	if seconds < 0 {
		seconds += 60
		minutes--
	}
	if minutes < 0 {
		minutes += 60
		hours--
	}

	return Timestamp{
		Hours:        uint32(hours),
		Minutes:      uint32(minutes),
		Seconds:      uint32(seconds),
		Milliseconds: uint32(milliseconds),
	}, nil
}

// SubAssign subtracts o from t in place. On error t is left unchanged.
func (t *Timestamp) SubAssign(o Timestamp) error {
	res, err := t.Sub(o)
	if err != nil {
		return err
	}
	*t = res
	return nil
}

// Offset shifts t by a signed duration, truncated to the millisecond. It
// fails with ErrNegativeDuration below zero and ErrTimestampOverflow past
// the largest representable hour.
func (t Timestamp) Offset(d time.Duration) (Timestamp, error) {
	if d >= 0 {
		total := t.TotalMilliseconds() + uint64(d.Milliseconds())
		if total > maxMilliseconds {
			return Timestamp{}, fmt.Errorf("%s shifted by %s: %w", t, d, ErrTimestampOverflow)
		}
		return FromMilliseconds(total), nil
	}
	back := uint64(-d.Milliseconds())
	total := t.TotalMilliseconds()
	if back > total {
		return Timestamp{}, fmt.Errorf("%s shifted by %s: %w", t, d, ErrNegativeDuration)
	}
	return FromMilliseconds(total - back), nil
}

// Compare returns -1, 0 or +1 ordering t against o lexicographically on
// (hours, minutes, seconds, milliseconds).
func (t Timestamp) Compare(o Timestamp) int {
	switch {
	case t.Hours != o.Hours:
		return cmpUint(t.Hours, o.Hours)
	case t.Minutes != o.Minutes:
		return cmpUint(t.Minutes, o.Minutes)
	case t.Seconds != o.Seconds:
		return cmpUint(t.Seconds, o.Seconds)
	default:
		return cmpUint(t.Milliseconds, o.Milliseconds)
	}
}

func cmpUint(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Before reports whether t is earlier than o.
func (t Timestamp) Before(o Timestamp) bool { return t.Compare(o) < 0 }

// After reports whether t is later than o.
func (t Timestamp) After(o Timestamp) bool { return t.Compare(o) > 0 }

// Equal reports whether t and o are the same instant.
func (t Timestamp) Equal(o Timestamp) bool { return t == o }

// String renders the timestamp the way it appears in an SRT time line.
func (t Timestamp) String() string {
	return fmt.Sprintf(
		"%02d:%02d:%02d,%03d",
		t.Hours,
		t.Minutes,
		t.Seconds,
		t.Milliseconds,
	)
}

var timestampRegex = regexp.MustCompile(`^(\d+):(\d{2}):(\d{2})[,.](\d{3})$`)

// ParseTimestamp reads "HH:MM:SS,mmm" (a '.' separator is accepted too).
func ParseTimestamp(s string) (Timestamp, error) {
	matches := timestampRegex.FindStringSubmatch(s)
	if matches == nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q: want HH:MM:SS,mmm", s)
	}
	return timestampFromFields(matches[1], matches[2], matches[3], matches[4])
}

func timestampFromFields(hours, minutes, seconds, millis string) (Timestamp, error) {
	var fields [4]uint32
	for i, raw := range []string{hours, minutes, seconds, millis} {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return Timestamp{}, fmt.Errorf("invalid timestamp field %q: %w", raw, err)
		}
		fields[i] = uint32(v)
	}
	return NewTimestamp(fields[0], fields[1], fields[2], fields[3]), nil
}
