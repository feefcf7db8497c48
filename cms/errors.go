package cms

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// ErrNotFound is returned when a document request yields no record.
var ErrNotFound = errors.New("cms: not found")

// StatusError is returned when the backend answers with a non-success status.
type StatusError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("cms: %s returned status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("cms: %s returned status %d: %s", e.Endpoint, e.Status, e.Body)
}

// IsBenign reports whether err is a network-level failure (timeout, refused
// connection, DNS) that callers should treat as "no data" rather than an error.
func IsBenign(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
