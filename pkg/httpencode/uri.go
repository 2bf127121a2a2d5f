package httpencode

// uriTable marks the bytes copied verbatim when escaping a URI: the RFC 3986
// unreserved set plus the path and query delimiters / ? : @ & = + $ , ;
// Everything else, '%' included, is percent-encoded.
var uriTable = [256]uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 1, 1, 1, 1, 1, //         $   &         + , - . /
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 1, 0, 1, // 0 1 2 3 4 5 6 7 8 9 : ;   =   ?
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // @ A B C D E F G H I J K L M N O
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 1, // P Q R S T U V W X Y Z         _
	0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, //   a b c d e f g h i j k l m n o
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 1, 0, // p q r s t u v w x y z       ~
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

const upperHex = "0123456789ABCDEF"

// URI is a request target, either raw bytes to be percent-encoded on write
// or an already escaped sequence written verbatim.
type URI struct {
	raw     string
	escaped bool
}

// NewURI returns a URI that is percent-encoded when written.
// An empty URI fails with ErrInvalidURI.
func NewURI(s string) URI {
	return URI{raw: s}
}

// NewURIBytes is like NewURI but takes a byte slice. The URI aliases b
// until it is written.
func NewURIBytes(b []byte) URI {
	return URI{raw: b2s(b)}
}

// EscapedURIUnchecked returns a URI that is written exactly as given.
// The caller guarantees s is a valid request target; nothing is checked,
// so a bad value produces malformed HTTP.
func EscapedURIUnchecked(s string) URI {
	return URI{raw: s, escaped: true}
}

// String returns the URI bytes as supplied, before any escaping.
func (u URI) String() string {
	return u.raw
}

// IsEscaped reports whether u is written verbatim.
func (u URI) IsEscaped() bool {
	return u.escaped
}

// EscapedLen returns the number of bytes s occupies once percent-encoded.
//
// Allocation behavior: 0 allocs/op
func EscapedLen(s string) int {
	n := len(s)
	for i := 0; i < len(s); i++ {
		if uriTable[s[i]] == 0 {
			n += 2
		}
	}
	return n
}

// AppendEscapedURI appends the percent-encoded form of s to dst and returns
// the extended slice. It uses the same rules as the URI writer.
func AppendEscapedURI(dst []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if uriTable[c] != 0 {
			dst = append(dst, c)
			continue
		}
		dst = append(dst, '%', upperHex[c>>4], upperHex[c&0xf])
	}
	return dst
}

// writeURI writes u into sink.
//
// Escaped URIs are bounds checked once and copied atomically. Unescaped URIs
// are encoded in a single pass with a bounds check per emitted unit; when
// space runs out the sink keeps whatever prefix was already written.
func writeURI(sink Sink, u URI) error {
	if u.escaped {
		if sink.Remaining() < len(u.raw) {
			return ErrOutOfBuffer
		}
		sink.AppendString(u.raw)
		return nil
	}

	if len(u.raw) == 0 {
		return ErrInvalidURI
	}

	// Copy runs of safe bytes in one append, escape the rest byte by byte.
	s := u.raw
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if uriTable[c] != 0 {
			continue
		}
		if start < i {
			if sink.Remaining() < i-start {
				return ErrOutOfBuffer
			}
			sink.AppendString(s[start:i])
		}
		if sink.Remaining() < 3 {
			return ErrOutOfBuffer
		}
		sink.AppendByte('%')
		sink.AppendByte(upperHex[c>>4])
		sink.AppendByte(upperHex[c&0xf])
		start = i + 1
	}
	if start < len(s) {
		if sink.Remaining() < len(s)-start {
			return ErrOutOfBuffer
		}
		sink.AppendString(s[start:])
	}
	return nil
}
