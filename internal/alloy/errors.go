package alloy

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedBody marks a success response whose body is not a JSON object.
var ErrMalformedBody = errors.New("response body is not a JSON object")

// TransportError reports a failed round trip: either the request never got a
// response or the service answered with a non-success status.
type TransportError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, body)
}

func (e *TransportError) Unwrap() error { return e.Err }
