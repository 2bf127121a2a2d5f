package httpencode

const (
	crlf       = "\r\n"
	colonSpace = ": "
)

// writeRequestLine writes "METHOD SP URI SP VERSION CRLF".
//
// Every piece is bounds checked on its own, so a failure part way through
// leaves the pieces already written in the sink.
func writeRequestLine(sink Sink, m Method, u URI, v Version) error {
	if err := writeMethod(sink, m); err != nil {
		return err
	}
	if err := writeSpace(sink); err != nil {
		return err
	}
	if err := writeURI(sink, u); err != nil {
		return err
	}
	if err := writeSpace(sink); err != nil {
		return err
	}
	if err := writeVersion(sink, v); err != nil {
		return err
	}
	return writeCRLF(sink)
}

// writeStatusLine writes "VERSION SP CODE SP REASON CRLF".
// Like writeRequestLine it is not atomic across the whole line.
func writeStatusLine(sink Sink, v Version, s Status, reason string) error {
	if !isFieldValue(reason) {
		return ErrInvalidReason
	}
	if err := writeVersion(sink, v); err != nil {
		return err
	}
	if err := writeSpace(sink); err != nil {
		return err
	}
	if err := writeStatusCode(sink, s); err != nil {
		return err
	}
	if err := writeSpace(sink); err != nil {
		return err
	}
	if sink.Remaining() < len(reason) {
		return ErrOutOfBuffer
	}
	sink.AppendString(reason)
	return writeCRLF(sink)
}

func writeSpace(sink Sink) error {
	if sink.Remaining() < 1 {
		return ErrOutOfBuffer
	}
	sink.AppendByte(' ')
	return nil
}

func writeCRLF(sink Sink) error {
	if sink.Remaining() < len(crlf) {
		return ErrOutOfBuffer
	}
	sink.AppendString(crlf)
	return nil
}

// headerLineLen is the number of bytes "name: value\r\n" occupies.
func headerLineLen(name, value string) int {
	return len(name) + len(colonSpace) + len(value) + len(crlf)
}

// writeHeaderLine appends "name: value\r\n" after a single bounds check
// covering the whole line, so it either writes everything or nothing.
// It succeeds when the line needs exactly the remaining capacity.
func writeHeaderLine(sink Sink, name, value string) error {
	if headerLineLen(name, value) > sink.Remaining() {
		return ErrOutOfBuffer
	}
	sink.AppendString(name)
	sink.AppendString(colonSpace)
	sink.AppendString(value)
	sink.AppendString(crlf)
	return nil
}
