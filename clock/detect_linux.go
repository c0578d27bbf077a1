//go:build linux

package clock

import "golang.org/x/sys/unix"

// Detect returns the best source and sleeper for this platform: the
// monotonic clock with absolute-deadline sleeps.
func Detect() (Source, Sleeper) {
	return NewMonotonic(), NewAbsoluteSleeper(unix.CLOCK_MONOTONIC)
}

func sourceByName(name string) Source {
	switch name {
	case Monotonic:
		return NewMonotonic()
	case Wall:
		return NewWall()
	case Runtime:
		return NewRuntime()
	}
	return nil
}

func sleeperByName(name string, src Source) Sleeper {
	switch name {
	case Absolute:
		if _, ok := src.(*WallClock); ok {
			return NewAbsoluteSleeper(unix.CLOCK_REALTIME)
		}
		return NewAbsoluteSleeper(unix.CLOCK_MONOTONIC)
	case Relative:
		return NewRelativeSleeper()
	case Runtime:
		return NewRuntime()
	}
	return nil
}
