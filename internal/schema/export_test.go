package schema

// Unlink clears the resolver so tests can exercise the pre-Link failure path.
func Unlink() {
	linkMu.Lock()
	defer linkMu.Unlock()
	linked = nil
}
