//go:build darwin

package clock

// Detect returns the best source and sleeper for this platform. Neither
// clock_nanosleep nor a raw nanosleep binding is available, so sleeps go
// through the Go runtime.
func Detect() (Source, Sleeper) {
	return NewMonotonic(), NewRuntime()
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
	if name == Runtime {
		return NewRuntime()
	}
	return nil
}
