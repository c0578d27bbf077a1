package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Op:     OpClockNanosleep,
				Kind:   KindSleepFailure,
				Clock:  "absolute",
				Detail: "deadline rejected",
			},
			contains: []string{"[clock_nanosleep]", "sleep_failure", "on absolute", "deadline rejected"},
		},
		{
			name: "minimal error",
			err: &Error{
				Op:   OpClockGettime,
				Kind: KindClockQuery,
			},
			contains: []string{"[clock_gettime]", "clock_query_failure"},
		},
		{
			name: "error with cause",
			err: &Error{
				Op:    OpNanosleep,
				Kind:  KindSleepFailure,
				Cause: errors.New("invalid argument"),
			},
			contains: []string{"[nanosleep]", "sleep_failure", "caused by", "invalid argument"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "cause",
			err:  SleepFailure(OpClockNanosleep, "absolute", errors.New("invalid argument")),
			want: "clock_nanosleep failed: invalid argument",
		},
		{
			name: "detail only",
			err:  NotInitialized(),
			want: "wiring_init failed: reference timestamp not captured, call Init first",
		},
		{
			name: "bare",
			err:  &Error{Op: OpGettimeofday, Kind: KindClockQuery},
			want: "gettimeofday failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Message(); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Op:    OpClockGettime,
		Kind:  KindClockQuery,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Op:    OpNanosleep,
		Kind:  KindSleepFailure,
		Clock: "relative",
	}

	if !err.Is(&Error{Op: OpNanosleep, Kind: KindSleepFailure}) {
		t.Error("Is should match same op and kind")
	}

	if !err.Is(&Error{Kind: KindSleepFailure}) {
		t.Error("Is should match any op when target op is empty")
	}

	if err.Is(&Error{Op: OpClockNanosleep, Kind: KindSleepFailure}) {
		t.Error("Is should not match different op")
	}

	if err.Is(&Error{Op: OpNanosleep, Kind: KindClockQuery}) {
		t.Error("Is should not match different kind")
	}

	if err.Is(errors.New("plain")) {
		t.Error("Is should not match non-structured errors")
	}

	wrapped := fmt.Errorf("delay: %w", err)
	if !errors.Is(wrapped, &Error{Kind: KindSleepFailure}) {
		t.Error("errors.Is should match through wrapping")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(OpClockNanosleep, KindSleepFailure).
		Clock("absolute").
		Value(1500).
		Cause(cause).
		Detail("deadline %d.%09d", 7, 5).
		Build()

	if err.Op != OpClockNanosleep {
		t.Errorf("Op = %v, want %v", err.Op, OpClockNanosleep)
	}
	if err.Kind != KindSleepFailure {
		t.Errorf("Kind = %v, want %v", err.Kind, KindSleepFailure)
	}
	if err.Clock != "absolute" {
		t.Errorf("Clock = %v, want 'absolute'", err.Clock)
	}
	if err.Value != 1500 {
		t.Errorf("Value = %v, want 1500", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "deadline 7.000000005" {
		t.Errorf("Detail = %v, want 'deadline 7.000000005'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	cause := errors.New("errno")

	t.Run("ClockQuery", func(t *testing.T) {
		err := ClockQuery(OpClockGettime, "monotonic", cause)
		if err.Kind != KindClockQuery {
			t.Errorf("Kind = %v, want %v", err.Kind, KindClockQuery)
		}
		if err.Clock != "monotonic" {
			t.Errorf("Clock = %v, want monotonic", err.Clock)
		}
	})

	t.Run("SleepInterrupted", func(t *testing.T) {
		err := SleepInterrupted(OpNanosleep, "relative", cause)
		if err.Kind != KindSleepInterrupted {
			t.Errorf("Kind = %v, want %v", err.Kind, KindSleepInterrupted)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(OpSelect, "sleeper absolute")
		if err.Kind != KindUnsupported {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupported)
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		err := InvalidInput(OpHost, -1, "negative delay")
		if err.Kind != KindInvalidInput {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidInput)
		}
		if err.Value != -1 {
			t.Errorf("Value = %v, want -1", err.Value)
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		err := Wrap(OpInit, KindClockQuery, cause, "capturing reference")
		if !errors.Is(err, cause) {
			t.Error("Wrap should keep the cause in the chain")
		}
	})
}

func TestAs(t *testing.T) {
	inner := ClockQuery(OpGettimeofday, "wall", errors.New("fault"))
	wrapped := fmt.Errorf("outer: %w", inner)

	got, ok := As(wrapped)
	if !ok {
		t.Fatal("As should find the structured error")
	}
	if got != inner {
		t.Errorf("As returned %v, want %v", got, inner)
	}

	if _, ok := As(errors.New("plain")); ok {
		t.Error("As should not find a structured error in a plain error")
	}
	if _, ok := As(nil); ok {
		t.Error("As(nil) should report false")
	}
}
