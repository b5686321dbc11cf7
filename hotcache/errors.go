package hotcache

import "fmt"

// invariantViolation reports a condition the calling contract guarantees
// cannot happen when the host engine is used correctly - an internal key
// shorter than the tag suffix, or a second writer call overlapping the
// first. These are programmer errors to be aborted with a diagnostic,
// never surfaced as a Go error value the caller might be tempted to retry
// past.
func invariantViolation(format string, args ...any) {
	panic(fmt.Sprintf("hotcache: invariant violation: "+format, args...))
}
