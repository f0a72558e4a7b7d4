package medium

import (
	"errors"
	"fmt"
)

var (
	// ErrUpstreamStatus is wrapped when the proxy answers with a status other than "ok".
	ErrUpstreamStatus = errors.New("upstream status not ok")
	// ErrMalformedPayload is wrapped when the response body does not match the expected shape.
	ErrMalformedPayload = errors.New("malformed upstream payload")
)

// FetchError reports a failed feed fetch. StatusCode is set when the
// upstream answered with a non-success HTTP status.
type FetchError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("medium: %s: HTTP %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("medium: %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Temporary reports whether retrying the fetch could succeed. Client
// errors (4xx), a non-ok proxy status and malformed payloads are final.
func (e *FetchError) Temporary() bool {
	if e.StatusCode >= 400 && e.StatusCode < 500 && e.StatusCode != 429 {
		return false
	}
	return !errors.Is(e.Err, ErrMalformedPayload) && !errors.Is(e.Err, ErrUpstreamStatus)
}
