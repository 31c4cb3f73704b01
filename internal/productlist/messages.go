package productlist

import (
	"fmt"

	"github.com/go-faster/errors"

	"github.com/storekit/shopcore/internal/catalog"
)

// User-facing messages for each catalog error kind. The mapping is fixed and
// exhaustive; anything uncategorized falls through to "Unknown".
const (
	msgInvalidRequest    = "Invalid URL. Please try again."
	msgMalformedResponse = "Invalid response from server."
	msgDecode            = "Failed to process data. Please try again."
	msgUnknown           = "Unknown"
)

func errorMessage(err error) string {
	var statusErr *catalog.StatusError
	switch {
	case errors.Is(err, catalog.ErrInvalidRequest):
		return msgInvalidRequest
	case errors.Is(err, catalog.ErrMalformedResponse):
		return msgMalformedResponse
	case errors.As(err, &statusErr):
		return fmt.Sprintf("Server error (%d). Please try again.", statusErr.Code)
	case errors.Is(err, catalog.ErrDecode):
		return msgDecode
	default:
		return msgUnknown
	}
}
