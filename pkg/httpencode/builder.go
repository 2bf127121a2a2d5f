package httpencode

// Builder assembles one HTTP header section into a sink.
//
// A Builder is created with its start line already written (Request,
// Response, ResponseWithReason). Headers are appended with Header and its
// variants; Finish or Body writes the terminating blank line and seals the
// builder. Once sealed, every method returns ErrSealed and the sink belongs
// to the caller again.
//
// A Builder is not safe for concurrent use. Use one sink and one builder
// per goroutine.
type Builder[S Sink] struct {
	sink   S
	sealed bool
}

// Request writes the request line "METHOD URI VERSION\r\n" into sink and
// returns a builder for the headers.
//
// If Request fails, the sink may hold a partially written line. Reset or
// truncate it before reuse.
func Request[S Sink](sink S, method Method, uri URI, version Version) (Builder[S], error) {
	if err := writeRequestLine(sink, method, uri, version); err != nil {
		return Builder[S]{sealed: true}, err
	}
	return Builder[S]{sink: sink}, nil
}

// Response writes the status line using the canonical reason phrase for
// status. Codes without a registered phrase get an empty reason, which
// RFC 7230 allows.
//
// If Response fails, the sink may hold a partially written line.
func Response[S Sink](sink S, version Version, status Status) (Builder[S], error) {
	reason, _ := status.Reason()
	return ResponseWithReason(sink, version, status, reason)
}

// ResponseWithReason writes the status line with a caller-supplied reason
// phrase. The reason may contain HTAB and visible ASCII including space;
// anything else fails with ErrInvalidReason before any byte is written.
//
// If ResponseWithReason fails otherwise, the sink may hold a partially
// written line.
func ResponseWithReason[S Sink](sink S, version Version, status Status, reason string) (Builder[S], error) {
	if err := writeStatusLine(sink, version, status, reason); err != nil {
		return Builder[S]{sealed: true}, err
	}
	return Builder[S]{sink: sink}, nil
}

// FromSink returns a builder that appends headers to a sink which already
// holds a start line and possibly some headers.
//
// Nothing is checked: resuming on a sink that does not contain a valid
// start line produces malformed HTTP.
func FromSink[S Sink](sink S) Builder[S] {
	return Builder[S]{sink: sink}
}

// Header validates name and value and appends "name: value\r\n".
//
// The append is atomic: on any error the sink is left unchanged.
// It fails with ErrInvalidHeaderKey, ErrInvalidHeaderValue,
// ErrOutOfBuffer or ErrSealed. Duplicate names are not detected.
//
// Allocation behavior: 0 allocs/op
func (b *Builder[S]) Header(name, value string) error {
	if b.sealed {
		return ErrSealed
	}
	if !isToken(name) {
		return ErrInvalidHeaderKey
	}
	if !isFieldValue(value) {
		return ErrInvalidHeaderValue
	}
	return writeHeaderLine(b.sink, name, value)
}

// HeaderBytes is like Header but takes byte slices.
//
// Allocation behavior: 0 allocs/op
func (b *Builder[S]) HeaderBytes(name, value []byte) error {
	return b.Header(b2s(name), b2s(value))
}

// HeaderUnchecked appends "name: value\r\n" without validating name or
// value. The caller guarantees both are well formed; otherwise the output
// is malformed HTTP.
//
// The bounds check still applies and the append is still atomic: it
// succeeds exactly when the whole line fits in Remaining.
func (b *Builder[S]) HeaderUnchecked(name, value string) error {
	if b.sealed {
		return ErrSealed
	}
	return writeHeaderLine(b.sink, name, value)
}

// ContentLength appends "Content-Length: n\r\n". The append is atomic.
// n must not be negative.
//
// Allocation behavior: 0 allocs/op
func (b *Builder[S]) ContentLength(n int64) error {
	if b.sealed {
		return ErrSealed
	}
	if n < 0 {
		return ErrInvalidHeaderValue
	}

	var digits [20]byte
	i := len(digits)
	for {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
		if n == 0 {
			break
		}
	}

	const name = "Content-Length"
	if len(name)+len(colonSpace)+len(digits)-i+len(crlf) > b.sink.Remaining() {
		return ErrOutOfBuffer
	}
	b.sink.AppendString(name)
	b.sink.AppendString(colonSpace)
	for ; i < len(digits); i++ {
		b.sink.AppendByte(digits[i])
	}
	b.sink.AppendString(crlf)
	return nil
}

// Finish writes the blank line ending the header section and returns the
// sink. The builder is sealed whether or not Finish succeeds; on
// ErrOutOfBuffer the sink holds the section without its terminator.
func (b *Builder[S]) Finish() (S, error) {
	if b.sealed {
		return b.sink, ErrSealed
	}
	b.sealed = true
	if err := writeCRLF(b.sink); err != nil {
		return b.sink, err
	}
	return b.sink, nil
}

// Body writes the blank line ending the header section followed by every
// byte of src, draining it. The builder is sealed whether or not Body
// succeeds.
//
// Capacity is checked once up front using src.Remaining(), so the check is
// exact for sources that report their size exactly and nothing is written
// when it fails. A source that under-reports its size can still run out of
// space part way through the copy, which returns ErrOutOfBuffer with the
// body partially written.
func (b *Builder[S]) Body(src Source) (S, error) {
	if b.sealed {
		return b.sink, ErrSealed
	}
	b.sealed = true

	if src.Remaining()+len(crlf) > b.sink.Remaining() {
		return b.sink, ErrOutOfBuffer
	}
	b.sink.AppendString(crlf)

	for src.Remaining() > 0 {
		chunk := src.Chunk()
		if len(chunk) == 0 {
			break
		}
		if len(chunk) > b.sink.Remaining() {
			return b.sink, ErrOutOfBuffer
		}
		b.sink.Append(chunk)
		src.Advance(len(chunk))
	}
	return b.sink, nil
}

// IntoSink seals the builder and returns the sink without writing the
// terminating blank line.
func (b *Builder[S]) IntoSink() S {
	b.sealed = true
	return b.sink
}

// Remaining returns the sink's remaining capacity, for callers sizing
// their own writes.
func (b *Builder[S]) Remaining() int {
	return b.sink.Remaining()
}

// Sealed reports whether Finish, Body or IntoSink has been called.
func (b *Builder[S]) Sealed() bool {
	return b.sealed
}
