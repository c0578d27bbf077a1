//go:build freebsd || netbsd || openbsd || dragonfly

package clock

// Detect returns the best source and sleeper for this platform. The BSDs lack
// a usable clock_nanosleep binding, so sleeps take the relative form.
func Detect() (Source, Sleeper) {
	return NewMonotonic(), NewRelativeSleeper()
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

func sleeperByName(name string, _ Source) Sleeper {
	switch name {
	case Relative:
		return NewRelativeSleeper()
	case Runtime:
		return NewRuntime()
	}
	return nil
}
