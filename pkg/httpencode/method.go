package httpencode

// HTTP Method IDs for O(1) switching
const (
	methodCustom uint8 = iota
	methodOptions
	methodGet
	methodHead
	methodPost
	methodPut
	methodPatch
	methodDelete
	methodTrace
	methodConnect
)

// Method is an HTTP request method: one of the standard methods or a
// custom extension token.
type Method struct {
	id   uint8
	name string
}

// Standard methods. These are valid by construction and never re-checked.
var (
	MethodOptions = Method{id: methodOptions, name: "OPTIONS"}
	MethodGet     = Method{id: methodGet, name: "GET"}
	MethodHead    = Method{id: methodHead, name: "HEAD"}
	MethodPost    = Method{id: methodPost, name: "POST"}
	MethodPut     = Method{id: methodPut, name: "PUT"}
	MethodPatch   = Method{id: methodPatch, name: "PATCH"}
	MethodDelete  = Method{id: methodDelete, name: "DELETE"}
	MethodTrace   = Method{id: methodTrace, name: "TRACE"}
	MethodConnect = Method{id: methodConnect, name: "CONNECT"}
)

// CustomMethod returns an extension method. The token is validated when the
// request line is written; a token that is not a tchar sequence makes the
// write fail with ErrInvalidMethod.
func CustomMethod(token string) Method {
	return Method{id: methodCustom, name: token}
}

// ParseMethod maps a method token to one of the standard methods when it
// matches exactly (case-sensitive), otherwise to a custom method.
// The custom method's name aliases b.
//
// Allocation behavior: 0 allocs/op
func ParseMethod(b []byte) Method {
	// Fast path: check length first to reduce comparisons
	switch len(b) {
	case 3:
		if b[0] == 'G' && b[1] == 'E' && b[2] == 'T' {
			return MethodGet
		}
		if b[0] == 'P' && b[1] == 'U' && b[2] == 'T' {
			return MethodPut
		}
	case 4:
		if b[0] == 'P' && b[1] == 'O' && b[2] == 'S' && b[3] == 'T' {
			return MethodPost
		}
		if b[0] == 'H' && b[1] == 'E' && b[2] == 'A' && b[3] == 'D' {
			return MethodHead
		}
	case 5:
		if b[0] == 'P' && b[1] == 'A' && b[2] == 'T' && b[3] == 'C' && b[4] == 'H' {
			return MethodPatch
		}
		if b[0] == 'T' && b[1] == 'R' && b[2] == 'A' && b[3] == 'C' && b[4] == 'E' {
			return MethodTrace
		}
	case 6:
		if b[0] == 'D' && b[1] == 'E' && b[2] == 'L' &&
			b[3] == 'E' && b[4] == 'T' && b[5] == 'E' {
			return MethodDelete
		}
	case 7:
		if b[0] == 'O' && b[1] == 'P' && b[2] == 'T' &&
			b[3] == 'I' && b[4] == 'O' && b[5] == 'N' && b[6] == 'S' {
			return MethodOptions
		}
		if b[0] == 'C' && b[1] == 'O' && b[2] == 'N' &&
			b[3] == 'N' && b[4] == 'E' && b[5] == 'C' && b[6] == 'T' {
			return MethodConnect
		}
	}

	return CustomMethod(b2s(b))
}

// String returns the method token as written on the wire.
func (m Method) String() string {
	return m.name
}

// IsCustom reports whether m is an extension method.
func (m Method) IsCustom() bool {
	return m.id == methodCustom
}

// Valid reports whether m can be written. Standard methods are always valid.
func (m Method) Valid() bool {
	return m.id != methodCustom || isToken(m.name)
}

// writeMethod writes the method token. Custom tokens are validated first;
// the write is atomic.
func writeMethod(sink Sink, m Method) error {
	if m.id == methodCustom && !isToken(m.name) {
		return ErrInvalidMethod
	}
	if sink.Remaining() < len(m.name) {
		return ErrOutOfBuffer
	}
	sink.AppendString(m.name)
	return nil
}
