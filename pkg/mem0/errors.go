package mem0

import "fmt"

// Error types for the mem0 package
type (
	// RemoteError represents a failed call against the memory store. It covers
	// both transport failures (Err set, no response) and remote-side
	// rejections (StatusCode set from the response).
	RemoteError struct {
		Op         string
		StatusCode int
		Body       string
		Err        error
	}

	// AmbiguousEmptyResultError represents a successful remote response that
	// carried no payload where a write was intended. The store is known to
	// return empty successes when content duplicates an existing record or
	// violates its message conventions; this must never be relayed as a plain
	// success.
	AmbiguousEmptyResultError struct {
		Op string
	}
)

func (e *RemoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("memory store %s failed: %v", e.Op, e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("memory store %s rejected: status %d: %s", e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("memory store %s rejected: status %d", e.Op, e.StatusCode)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Transient reports whether the failure is plausibly recoverable by retrying
// (network failure or remote 5xx) as opposed to a rejected request.
func (e *RemoteError) Transient() bool {
	return e.Err != nil || e.StatusCode >= 500
}

func (e *AmbiguousEmptyResultError) Error() string {
	return fmt.Sprintf("memory store %s returned an empty success; the request may have been silently rejected (duplicate or filtered content)", e.Op)
}
