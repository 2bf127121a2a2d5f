package httpencode

// Version is the protocol version written in the start line.
type Version struct {
	builtin bool
	name    string
}

// Standard protocol versions.
var (
	HTTP10 = Version{builtin: true, name: "HTTP/1.0"}
	HTTP11 = Version{builtin: true, name: "HTTP/1.1"}
)

// CustomVersion returns a non-standard protocol version such as
// "MY-PROTOCOL/1.0". It must be non-empty and contain only visible ASCII;
// otherwise writing it fails with ErrInvalidVersion.
func CustomVersion(s string) Version {
	return Version{name: s}
}

// String returns the version as written on the wire.
func (v Version) String() string {
	return v.name
}

// IsCustom reports whether v was created with CustomVersion.
func (v Version) IsCustom() bool {
	return !v.builtin
}

// writeVersion writes the version token. The write is atomic.
func writeVersion(sink Sink, v Version) error {
	if !v.builtin && !isVisible(v.name) {
		return ErrInvalidVersion
	}
	if sink.Remaining() < len(v.name) {
		return ErrOutOfBuffer
	}
	sink.AppendString(v.name)
	return nil
}

// ParseVersion returns HTTP10 or HTTP11 for their exact spellings and a
// custom version for anything else.
func ParseVersion(s string) Version {
	switch s {
	case "HTTP/1.1":
		return HTTP11
	case "HTTP/1.0":
		return HTTP10
	}
	return CustomVersion(s)
}

// Valid reports whether v can be written.
func (v Version) Valid() bool {
	return v.builtin || isVisible(v.name)
}
