//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package clock

// Detect returns the Go runtime clock for both roles on platforms without
// the POSIX clock calls.
func Detect() (Source, Sleeper) {
	r := NewRuntime()
	return r, r
}

func sourceByName(name string) Source {
	if name == Runtime {
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
