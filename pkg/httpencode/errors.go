package httpencode

import "errors"

// Encoding errors - Pre-allocated for zero runtime allocation
var (
	// ErrOutOfBuffer indicates the sink cannot hold the next write
	ErrOutOfBuffer = errors.New("httpencode: out of buffer")

	// ErrInvalidMethod indicates a custom method is not an RFC 7230 token
	ErrInvalidMethod = errors.New("httpencode: invalid method")

	// ErrInvalidURI indicates an empty unescaped URI
	ErrInvalidURI = errors.New("httpencode: invalid URI")

	// ErrInvalidVersion indicates a custom version contains space or control characters
	ErrInvalidVersion = errors.New("httpencode: invalid version")

	// ErrInvalidHeaderKey indicates a header name is empty or not a token
	ErrInvalidHeaderKey = errors.New("httpencode: invalid header key")

	// ErrInvalidHeaderValue indicates a header value contains CR, LF or other control characters
	ErrInvalidHeaderValue = errors.New("httpencode: invalid header value")

	// ErrInvalidReason indicates a reason phrase contains CR, LF or other control characters
	ErrInvalidReason = errors.New("httpencode: invalid reason phrase")

	// ErrSealed indicates Finish, Body or IntoSink was already called on the builder
	ErrSealed = errors.New("httpencode: builder already sealed")
)
