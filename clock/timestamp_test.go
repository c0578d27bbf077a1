package clock

import (
	"math"
	"testing"
	"time"
)

func TestTimestamp_Sub(t *testing.T) {
	tests := []struct {
		name  string
		start Timestamp
		end   Timestamp
		want  Duration
	}{
		{
			name:  "borrow",
			start: Timestamp{Sec: 5, Nsec: 500_000_000},
			end:   Timestamp{Sec: 6, Nsec: 200_000_000},
			want:  Duration{Sec: 0, Nsec: 700_000_000},
		},
		{
			name:  "no borrow",
			start: Timestamp{Sec: 5, Nsec: 100},
			end:   Timestamp{Sec: 7, Nsec: 300},
			want:  Duration{Sec: 2, Nsec: 200},
		},
		{
			name:  "equal",
			start: Timestamp{Sec: 9, Nsec: 999_999_999},
			end:   Timestamp{Sec: 9, Nsec: 999_999_999},
			want:  Duration{},
		},
		{
			name:  "borrow to zero seconds",
			start: Timestamp{Sec: 1, Nsec: 999_999_999},
			end:   Timestamp{Sec: 2, Nsec: 0},
			want:  Duration{Sec: 0, Nsec: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.end.Sub(tt.start); got != tt.want {
				t.Errorf("Sub() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTimestamp_SubNormalized(t *testing.T) {
	// Every ordered pair of normalized readings gives a non-negative duration
	// with nanoseconds in [0, 1e9).
	nsecs := []int64{0, 1, 499_999_999, 500_000_000, 999_999_999}
	for _, s := range []int64{0, 1, 1 << 40} {
		for _, sn := range nsecs {
			for _, gap := range []int64{0, 1, 2, 3600} {
				for _, en := range nsecs {
					start := Timestamp{Sec: s, Nsec: sn}
					end := Timestamp{Sec: s + gap, Nsec: en}
					if end.Before(start) {
						continue
					}
					d := end.Sub(start)
					if d.Sec < 0 {
						t.Errorf("%v - %v: negative seconds %d", end, start, d.Sec)
					}
					if d.Nsec < 0 || d.Nsec >= 1_000_000_000 {
						t.Errorf("%v - %v: nanoseconds %d out of range", end, start, d.Nsec)
					}
				}
			}
		}
	}
}

func TestTimestamp_Add(t *testing.T) {
	tests := []struct {
		name string
		ts   Timestamp
		d    Duration
		want Timestamp
	}{
		{"no carry", Timestamp{Sec: 1, Nsec: 100}, Duration{Sec: 2, Nsec: 200}, Timestamp{Sec: 3, Nsec: 300}},
		{"carry", Timestamp{Sec: 1, Nsec: 600_000_000}, Duration{Nsec: 500_000_000}, Timestamp{Sec: 2, Nsec: 100_000_000}},
		{"exact second", Timestamp{Sec: 1, Nsec: 500_000_000}, Duration{Nsec: 500_000_000}, Timestamp{Sec: 2, Nsec: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ts.Add(tt.d); got != tt.want {
				t.Errorf("Add() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewDuration(t *testing.T) {
	tests := []struct {
		seconds, micros uint64
		want            Duration
	}{
		{0, 0, Duration{}},
		{1, 500_000, Duration{Sec: 1, Nsec: 500_000_000}},
		{0, 2_500_000, Duration{Sec: 2, Nsec: 500_000_000}},
		{0, 999, Duration{Nsec: 999_000}},
	}

	for _, tt := range tests {
		if got := NewDuration(tt.seconds, tt.micros); got != tt.want {
			t.Errorf("NewDuration(%d, %d) = %+v, want %+v", tt.seconds, tt.micros, got, tt.want)
		}
	}
}

func TestDuration_Units(t *testing.T) {
	d := Duration{Sec: 3, Nsec: 456_789_123}

	if got := d.Millis(); got != 3456 {
		t.Errorf("Millis() = %d, want 3456", got)
	}
	if got := d.Micros(); got != 3_456_789 {
		t.Errorf("Micros() = %d, want 3456789", got)
	}
	if got := d.Nanoseconds(); got != 3_456_789_123 {
		t.Errorf("Nanoseconds() = %d, want 3456789123", got)
	}
	if got := d.Std(); got != 3456789123*time.Nanosecond {
		t.Errorf("Std() = %v", got)
	}
}

func TestDuration_Saturation(t *testing.T) {
	d := Duration{Sec: math.MaxInt64 / 2, Nsec: 1}
	if got := d.Nanoseconds(); got != math.MaxInt64 {
		t.Errorf("Nanoseconds() = %d, want saturation at MaxInt64", got)
	}

	neg := Duration{Sec: -1, Nsec: 500}
	if !neg.IsNegative() {
		t.Error("expected negative duration")
	}
	if got := neg.Std(); got != 0 {
		t.Errorf("Std() of negative duration = %v, want 0", got)
	}
}

func TestFromStd(t *testing.T) {
	if got := FromStd(1500 * time.Millisecond); got != (Duration{Sec: 1, Nsec: 500_000_000}) {
		t.Errorf("FromStd(1.5s) = %+v", got)
	}
	if got := FromStd(-time.Second); !got.IsZero() {
		t.Errorf("FromStd(-1s) = %+v, want zero", got)
	}
}
