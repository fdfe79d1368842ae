package generation

import "errors"

// Common errors returned by the generation package. Every client failure
// wraps exactly one of ErrUnavailable, ErrTransport or ErrDecode.
var (
	// ErrUnavailable is returned when no credential is configured and the
	// endpoint was never contacted.
	ErrUnavailable = errors.New("language model unavailable")

	// ErrTransport is returned for any failure while contacting the
	// endpoint, including API-level refusals.
	ErrTransport = errors.New("language model request failed")

	// ErrDecode is returned when a structured response cannot be parsed or
	// is missing required fields.
	ErrDecode = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the model refuses on safety grounds.
	// It is always wrapped together with ErrTransport.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when the client configuration is invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
