package httpencode

import "strconv"

// Status is an HTTP status code in the range [0, 1000).
type Status struct {
	code uint16
}

// NewStatus returns the status for code.
//
// NewStatus panics if code >= 1000. Status codes are expected to be
// constants or values validated by the caller, so an out-of-range code is
// a programming error rather than a runtime condition.
func NewStatus(code uint16) Status {
	if code >= 1000 {
		panic("httpencode: status code " + strconv.Itoa(int(code)) + " out of range [0, 1000)")
	}
	return Status{code: code}
}

// Code returns the numeric status code.
func (s Status) Code() uint16 {
	return s.code
}

// Reason returns the canonical reason phrase for s and whether s is a
// registered code.
func (s Status) Reason() (string, bool) {
	text := statusText(s.code)
	return text, text != ""
}

// String returns "<code> <reason>", or just the code for unregistered codes.
func (s Status) String() string {
	code := strconv.Itoa(int(s.code))
	if text := statusText(s.code); text != "" {
		return code + " " + text
	}
	return code
}

// Registered status codes.
var (
	// 1xx Informational
	StatusContinue           = Status{code: 100}
	StatusSwitchingProtocols = Status{code: 101}
	StatusProcessing         = Status{code: 102}
	StatusEarlyHints         = Status{code: 103}

	// 2xx Success
	StatusOK                   = Status{code: 200}
	StatusCreated              = Status{code: 201}
	StatusAccepted             = Status{code: 202}
	StatusNonAuthoritativeInfo = Status{code: 203}
	StatusNoContent            = Status{code: 204}
	StatusResetContent         = Status{code: 205}
	StatusPartialContent       = Status{code: 206}
	StatusMultiStatus          = Status{code: 207}
	StatusAlreadyReported      = Status{code: 208}
	StatusIMUsed               = Status{code: 226}

	// 3xx Redirection
	StatusMultipleChoices   = Status{code: 300}
	StatusMovedPermanently  = Status{code: 301}
	StatusFound             = Status{code: 302}
	StatusSeeOther          = Status{code: 303}
	StatusNotModified       = Status{code: 304}
	StatusUseProxy          = Status{code: 305}
	StatusTemporaryRedirect = Status{code: 307}
	StatusPermanentRedirect = Status{code: 308}

	// 4xx Client Error
	StatusBadRequest                   = Status{code: 400}
	StatusUnauthorized                 = Status{code: 401}
	StatusPaymentRequired              = Status{code: 402}
	StatusForbidden                    = Status{code: 403}
	StatusNotFound                     = Status{code: 404}
	StatusMethodNotAllowed             = Status{code: 405}
	StatusNotAcceptable                = Status{code: 406}
	StatusProxyAuthRequired            = Status{code: 407}
	StatusRequestTimeout               = Status{code: 408}
	StatusConflict                     = Status{code: 409}
	StatusGone                         = Status{code: 410}
	StatusLengthRequired               = Status{code: 411}
	StatusPreconditionFailed           = Status{code: 412}
	StatusRequestEntityTooLarge        = Status{code: 413}
	StatusRequestURITooLong            = Status{code: 414}
	StatusUnsupportedMediaType         = Status{code: 415}
	StatusRequestedRangeNotSatisfiable = Status{code: 416}
	StatusExpectationFailed            = Status{code: 417}
	StatusTeapot                       = Status{code: 418}
	StatusMisdirectedRequest           = Status{code: 421}
	StatusUnprocessableEntity          = Status{code: 422}
	StatusLocked                       = Status{code: 423}
	StatusFailedDependency             = Status{code: 424}
	StatusTooEarly                     = Status{code: 425}
	StatusUpgradeRequired              = Status{code: 426}
	StatusPreconditionRequired         = Status{code: 428}
	StatusTooManyRequests              = Status{code: 429}
	StatusRequestHeaderFieldsTooLarge  = Status{code: 431}
	StatusUnavailableForLegalReasons   = Status{code: 451}

	// 5xx Server Error
	StatusInternalServerError           = Status{code: 500}
	StatusNotImplemented                = Status{code: 501}
	StatusBadGateway                    = Status{code: 502}
	StatusServiceUnavailable            = Status{code: 503}
	StatusGatewayTimeout                = Status{code: 504}
	StatusHTTPVersionNotSupported       = Status{code: 505}
	StatusVariantAlsoNegotiates         = Status{code: 506}
	StatusInsufficientStorage           = Status{code: 507}
	StatusLoopDetected                  = Status{code: 508}
	StatusNotExtended                   = Status{code: 510}
	StatusNetworkAuthenticationRequired = Status{code: 511}
)

// statusText returns the reason phrase for a registered status code, or ""
// when the code is not in the table.
// Based on the IANA HTTP Status Code Registry.
func statusText(code uint16) string {
	switch code {
	// 1xx Informational
	case 100:
		return "Continue"
	case 101:
		return "Switching Protocols"
	case 102:
		return "Processing"
	case 103:
		return "Early Hints"

	// 2xx Success
	case 200:
		return "OK"
	case 201:
		return "Created"
	case 202:
		return "Accepted"
	case 203:
		return "Non-Authoritative Information"
	case 204:
		return "No Content"
	case 205:
		return "Reset Content"
	case 206:
		return "Partial Content"
	case 207:
		return "Multi-Status"
	case 208:
		return "Already Reported"
	case 226:
		return "IM Used"

	// 3xx Redirection
	case 300:
		return "Multiple Choices"
	case 301:
		return "Moved Permanently"
	case 302:
		return "Found"
	case 303:
		return "See Other"
	case 304:
		return "Not Modified"
	case 305:
		return "Use Proxy"
	case 307:
		return "Temporary Redirect"
	case 308:
		return "Permanent Redirect"

	// 4xx Client Error
	case 400:
		return "Bad Request"
	case 401:
		return "Unauthorized"
	case 402:
		return "Payment Required"
	case 403:
		return "Forbidden"
	case 404:
		return "Not Found"
	case 405:
		return "Method Not Allowed"
	case 406:
		return "Not Acceptable"
	case 407:
		return "Proxy Authentication Required"
	case 408:
		return "Request Timeout"
	case 409:
		return "Conflict"
	case 410:
		return "Gone"
	case 411:
		return "Length Required"
	case 412:
		return "Precondition Failed"
	case 413:
		return "Payload Too Large"
	case 414:
		return "URI Too Long"
	case 415:
		return "Unsupported Media Type"
	case 416:
		return "Range Not Satisfiable"
	case 417:
		return "Expectation Failed"
	case 418:
		return "I'm a teapot"
	case 421:
		return "Misdirected Request"
	case 422:
		return "Unprocessable Entity"
	case 423:
		return "Locked"
	case 424:
		return "Failed Dependency"
	case 425:
		return "Too Early"
	case 426:
		return "Upgrade Required"
	case 428:
		return "Precondition Required"
	case 429:
		return "Too Many Requests"
	case 431:
		return "Request Header Fields Too Large"
	case 451:
		return "Unavailable For Legal Reasons"

	// 5xx Server Error
	case 500:
		return "Internal Server Error"
	case 501:
		return "Not Implemented"
	case 502:
		return "Bad Gateway"
	case 503:
		return "Service Unavailable"
	case 504:
		return "Gateway Timeout"
	case 505:
		return "HTTP Version Not Supported"
	case 506:
		return "Variant Also Negotiates"
	case 507:
		return "Insufficient Storage"
	case 508:
		return "Loop Detected"
	case 510:
		return "Not Extended"
	case 511:
		return "Network Authentication Required"

	default:
		return ""
	}
}

// writeStatusCode writes the code as decimal digits without zero padding.
// The write is atomic.
//
// Allocation behavior: 0 allocs/op
func writeStatusCode(sink Sink, s Status) error {
	code := s.code
	var digits [3]byte
	var n int
	switch {
	case code >= 100:
		digits[0] = byte('0' + code/100)
		digits[1] = byte('0' + code/10%10)
		digits[2] = byte('0' + code%10)
		n = 3
	case code >= 10:
		digits[0] = byte('0' + code/10)
		digits[1] = byte('0' + code%10)
		n = 2
	default:
		digits[0] = byte('0' + code)
		n = 1
	}
	if sink.Remaining() < n {
		return ErrOutOfBuffer
	}
	for i := 0; i < n; i++ {
		sink.AppendByte(digits[i])
	}
	return nil
}
