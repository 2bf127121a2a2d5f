// Package httpencode writes HTTP/1.x request and response header sections
// directly into a caller-supplied sink, validating every protocol token on
// the way in.
//
// A section is assembled in order: start line, zero or more headers, then a
// terminating blank line with an optional body:
//
//	var out [512]byte
//	sink := httpencode.NewSliceSink(out[:])
//
//	b, err := httpencode.Request(sink, httpencode.MethodGet, httpencode.NewURI("/"), httpencode.HTTP11)
//	if err != nil {
//	    return err
//	}
//	if err := b.Header("Host", "example.com"); err != nil {
//	    return err
//	}
//	sink, err = b.Finish()
//
// Failure modes differ per operation:
//   - Header, HeaderBytes, HeaderUnchecked and ContentLength are atomic. On
//     failure the sink is byte-for-byte unchanged.
//   - Request, Response and ResponseWithReason write the start line piece by
//     piece and may leave a partial line behind. Reset or truncate the sink
//     before reusing it.
//   - Percent-escaping an unescaped URI is single pass; running out of space
//     midway leaves a partial URI in the sink.
//
// Nothing in this package allocates on the encode path for the provided
// sinks, logs, or retries.
package httpencode
