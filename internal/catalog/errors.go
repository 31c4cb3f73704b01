package catalog

import (
	"fmt"

	"github.com/go-faster/errors"
)

// Sentinel errors forming the fixed catalog error taxonomy. Consumers match
// with errors.Is / errors.As and must not depend on transport details.
var (
	// ErrInvalidRequest indicates the request could not be constructed,
	// typically because the configured base URL is not valid.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrMalformedResponse indicates the upstream returned a success status
	// but no usable body.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrDecode indicates the response body did not match the product schema.
	ErrDecode = errors.New("decode response")

	// ErrUnknown covers network-level and otherwise uncategorized failures.
	ErrUnknown = errors.New("unknown error")
)

// StatusError indicates the upstream answered with a non-2xx status code.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}
