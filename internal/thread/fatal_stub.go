//go:build !aarch64

package thread

// fatal stands in for console.Panic's halt-the-CPU behavior hosted: a
// regular Go panic, recoverable by a test's own defer/recover so tests can
// assert a fatal path was taken without actually killing the test binary.
func fatal(msg string) {
	panic(msg)
}
