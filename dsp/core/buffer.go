package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
// Contents of a reused buffer are left as they were.
func EnsureLen[T any](buf []T, n int) []T {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]T, n)
}
