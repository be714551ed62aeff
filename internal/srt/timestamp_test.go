package srt

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestNewTimestampCarries(t *testing.T) {
	tests := []struct {
		name string
		got  Timestamp
		want Timestamp
	}{
		{"all fields overflow", NewTimestamp(1, 121, 120, 1100), NewTimestamp(3, 3, 1, 100)},
		{"exact overflow", NewTimestamp(1, 120, 120, 1000), NewTimestamp(3, 2, 1, 0)},
		{"milliseconds only", NewTimestamp(0, 0, 3, 600000), NewTimestamp(0, 10, 3, 0)},
		{"already normalized", NewTimestamp(5, 59, 59, 999), Timestamp{5, 59, 59, 999}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %+v, want %+v", tt.got, tt.want)
			}
			if tt.got.Minutes >= 60 || tt.got.Seconds >= 60 || tt.got.Milliseconds >= 1000 {
				t.Errorf("fields not normalized: %+v", tt.got)
			}
		})
	}

	if got := NewTimestamp(3, 2, 1, 0); got != (Timestamp{3, 2, 1, 0}) {
		t.Errorf("NewTimestamp(3, 2, 1, 0) = %+v", got)
	}
}

func TestFromMicroseconds(t *testing.T) {
	want := NewTimestamp(0, 1, 1, 1)
	if got := NewTimestamp(0, 0, 0, 61001); got != want {
		t.Errorf("NewTimestamp(0, 0, 0, 61001) = %v, want %v", got, want)
	}
	if got := FromMicroseconds(61001000); got != want {
		t.Errorf("FromMicroseconds(61001000) = %v, want %v", got, want)
	}
	if got := FromMilliseconds(61001); got != want {
		t.Errorf("FromMilliseconds(61001) = %v, want %v", got, want)
	}
}

func TestTotalMilliseconds(t *testing.T) {
	ts := NewTimestamp(2, 3, 4, 5)
	want := uint64(2*3600000 + 3*60000 + 4*1000 + 5)
	if got := ts.TotalMilliseconds(); got != want {
		t.Errorf("TotalMilliseconds() = %d, want %d", got, want)
	}
	if got := FromMilliseconds(want); got != ts {
		t.Errorf("FromMilliseconds(%d) = %v, want %v", want, got, ts)
	}
	if got := ts.Duration(); got != 2*time.Hour+3*time.Minute+4*time.Second+5*time.Millisecond {
		t.Errorf("Duration() = %v", got)
	}
}

func TestFromDuration(t *testing.T) {
	ts, err := FromDuration(90*time.Second + 1500*time.Microsecond)
	if err != nil {
		t.Fatalf("FromDuration failed: %v", err)
	}
	if want := NewTimestamp(0, 1, 30, 1); ts != want {
		t.Errorf("got %v, want %v", ts, want)
	}

	if _, err := FromDuration(-time.Millisecond); !errors.Is(err, ErrNegativeDuration) {
		t.Errorf("expected ErrNegativeDuration, got %v", err)
	}
}

func TestTimestampAdd(t *testing.T) {
	tests := []struct {
		a, b, want Timestamp
	}{
		{NewTimestamp(1, 1, 1, 1), NewTimestamp(1, 1, 1, 1), NewTimestamp(2, 2, 2, 2)},
		{NewTimestamp(1, 58, 58, 900), NewTimestamp(1, 58, 58, 900), NewTimestamp(3, 57, 57, 800)},
		{NewTimestamp(0, 59, 59, 999), NewTimestamp(0, 0, 0, 1), NewTimestamp(1, 0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.a.String()+"+"+tt.b.String(), func(t *testing.T) {
			if got := tt.a.Add(tt.b); got != tt.want {
				t.Errorf("Add = %v, want %v", got, tt.want)
			}
			if got := tt.b.Add(tt.a); got != tt.want {
				t.Errorf("Add is not commutative: %v", got)
			}

			acc := tt.a
			acc.AddAssign(tt.b)
			if acc != tt.want {
				t.Errorf("AddAssign = %v, want %v", acc, tt.want)
			}
		})
	}
}

func TestTimestampAddAssociative(t *testing.T) {
	a := NewTimestamp(0, 59, 59, 999)
	b := NewTimestamp(0, 0, 59, 2)
	c := NewTimestamp(7, 30, 0, 999)
	if left, right := a.Add(b).Add(c), a.Add(b.Add(c)); left != right {
		t.Errorf("(a+b)+c = %v, a+(b+c) = %v", left, right)
	}
}

func TestTimestampSub(t *testing.T) {
	tests := []struct {
		a, b, want Timestamp
	}{
		{NewTimestamp(1, 1, 1, 0), NewTimestamp(0, 59, 59, 999), NewTimestamp(0, 1, 1, 1)},
		{NewTimestamp(2, 2, 2, 2), NewTimestamp(1, 1, 1, 1), NewTimestamp(1, 1, 1, 1)},
		{NewTimestamp(2, 0, 0, 0), NewTimestamp(1, 59, 59, 999), NewTimestamp(0, 0, 0, 1)},
		{NewTimestamp(0, 0, 5, 0), NewTimestamp(0, 0, 5, 0), Timestamp{}},
	}

	for _, tt := range tests {
		t.Run(tt.a.String()+"-"+tt.b.String(), func(t *testing.T) {
			got, err := tt.a.Sub(tt.b)
			if err != nil {
				t.Fatalf("Sub failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Sub = %v, want %v", got, tt.want)
			}

			acc := tt.a
			if err := acc.SubAssign(tt.b); err != nil {
				t.Fatalf("SubAssign failed: %v", err)
			}
			if acc != tt.want {
				t.Errorf("SubAssign = %v, want %v", acc, tt.want)
			}
		})
	}
}

func TestTimestampSubNegative(t *testing.T) {
	small := NewTimestamp(0, 0, 1, 0)
	large := NewTimestamp(0, 0, 1, 1)

	if _, err := small.Sub(large); !errors.Is(err, ErrNegativeDuration) {
		t.Errorf("expected ErrNegativeDuration, got %v", err)
	}

	acc := small
	if err := acc.SubAssign(large); !errors.Is(err, ErrNegativeDuration) {
		t.Errorf("expected ErrNegativeDuration, got %v", err)
	}
	if acc != small {
		t.Errorf("SubAssign changed receiver on failure: %v", acc)
	}
}

func TestTimestampOffset(t *testing.T) {
	ts := NewTimestamp(0, 0, 2, 0)

	got, err := ts.Offset(1500 * time.Millisecond)
	if err != nil || got != NewTimestamp(0, 0, 3, 500) {
		t.Errorf("Offset(+1.5s) = %v, %v", got, err)
	}
	got, err = ts.Offset(-2 * time.Second)
	if err != nil || got != (Timestamp{}) {
		t.Errorf("Offset(-2s) = %v, %v", got, err)
	}
	if _, err := ts.Offset(-2001 * time.Millisecond); !errors.Is(err, ErrNegativeDuration) {
		t.Errorf("expected ErrNegativeDuration, got %v", err)
	}
}

func TestTimestampOffsetOverflow(t *testing.T) {
	ts := NewTimestamp(math.MaxUint32, 59, 59, 0)

	got, err := ts.Offset(999 * time.Millisecond)
	if err != nil {
		t.Fatalf("Offset to the last millisecond failed: %v", err)
	}
	if got != NewTimestamp(math.MaxUint32, 59, 59, 999) {
		t.Errorf("Offset(+999ms) = %v", got)
	}

	if _, err := ts.Offset(time.Second); !errors.Is(err, ErrTimestampOverflow) {
		t.Errorf("expected ErrTimestampOverflow, got %v", err)
	}

	line := SubLine{Index: 1, Start: ts, End: ts}
	if err := line.Shift(time.Second); !errors.Is(err, ErrTimestampOverflow) {
		t.Errorf("expected ErrTimestampOverflow from Shift, got %v", err)
	}
	if line.Start != ts {
		t.Errorf("cue changed after failed shift: %v", line.Start)
	}
}

func TestTimestampOrdering(t *testing.T) {
	values := []Timestamp{
		{},
		NewTimestamp(0, 0, 0, 1),
		NewTimestamp(0, 0, 0, 999),
		NewTimestamp(0, 0, 1, 0),
		NewTimestamp(0, 1, 0, 0),
		NewTimestamp(0, 59, 59, 999),
		NewTimestamp(1, 0, 0, 0),
		NewTimestamp(1, 0, 0, 1),
		NewTimestamp(25, 0, 0, 0),
	}

	for _, a := range values {
		for _, b := range values {
			cmp := a.Compare(b)
			ta, tb := a.TotalMilliseconds(), b.TotalMilliseconds()

			var want int
			switch {
			case ta < tb:
				want = -1
			case ta > tb:
				want = 1
			}
			if cmp != want {
				t.Errorf("%v.Compare(%v) = %d, want %d", a, b, cmp, want)
			}

			holds := 0
			if a.Before(b) {
				holds++
			}
			if a.Equal(b) {
				holds++
			}
			if a.After(b) {
				holds++
			}
			if holds != 1 {
				t.Errorf("%v vs %v: %d of <, ==, > hold", a, b, holds)
			}
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in      string
		want    Timestamp
		wantErr bool
	}{
		{in: "00:55:09,008", want: NewTimestamp(0, 55, 9, 8)},
		{in: "01:01:01.001", want: NewTimestamp(1, 1, 1, 1)},
		{in: "120:00:00,000", want: NewTimestamp(120, 0, 0, 0)},
		{in: "1:2:3,4", wantErr: true},
		{in: "garbage", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimestamp failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimestampString(t *testing.T) {
	if got := NewTimestamp(0, 55, 9, 8).String(); got != "00:55:09,008" {
		t.Errorf("String() = %q", got)
	}
	if got := NewTimestamp(101, 0, 0, 0).String(); got != "101:00:00,000" {
		t.Errorf("String() = %q", got)
	}
}
