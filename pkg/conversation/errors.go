package conversation

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest is the root of every caller error. Requests failing
// with it are never sent to the provider.
var ErrInvalidRequest = errors.New("invalid request")

var (
	// ErrMissingImage is returned when the request carries no image.
	ErrMissingImage = fmt.Errorf("%w: image is required", ErrInvalidRequest)

	// ErrMissingQuestion is returned when the request carries no question.
	ErrMissingQuestion = fmt.Errorf("%w: question is required", ErrInvalidRequest)

	// ErrMalformedImage is returned for a data URI that cannot be split into
	// media type and base64 payload.
	ErrMalformedImage = fmt.Errorf("%w: image must be a base64 data URI or raw base64", ErrInvalidRequest)

	// ErrMalformedHistory is returned when history does not start with the
	// user turn originally paired with the image.
	ErrMalformedHistory = fmt.Errorf("%w: malformed history", ErrInvalidRequest)
)
