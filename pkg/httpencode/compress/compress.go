// Package compress applies an HTTP content-coding to a message body and
// hands the result to the header builder as a Source.
package compress

import (
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/valyala/bytebufferpool"

	"github.com/swlynch99/httpencode/pkg/httpencode"
)

// Encoding is an HTTP content-coding.
type Encoding uint8

const (
	Identity Encoding = iota
	Gzip
	Deflate
	Brotli
)

// ErrUnknownEncoding is returned for a content-coding this package does not
// implement.
var ErrUnknownEncoding = errors.New("compress: unknown content-coding")

// ParseEncoding maps a content-coding token to an Encoding. Matching is
// case-insensitive; "" and "identity" both mean Identity, and "x-gzip" is an
// alias for gzip.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "identity":
		return Identity, nil
	case "gzip", "x-gzip":
		return Gzip, nil
	case "deflate":
		return Deflate, nil
	case "br":
		return Brotli, nil
	default:
		return Identity, ErrUnknownEncoding
	}
}

// Token returns the value written in the Content-Encoding header.
// Identity has no header, so its token is "".
func (e Encoding) Token() string {
	switch e {
	case Gzip:
		return "gzip"
	case Deflate:
		return "deflate"
	case Brotli:
		return "br"
	default:
		return ""
	}
}

// String returns the token, or "identity".
func (e Encoding) String() string {
	if e == Identity {
		return "identity"
	}
	return e.Token()
}

var (
	gzipWriterPool   sync.Pool
	flateWriterPool  sync.Pool
	brotliWriterPool sync.Pool
)

func acquireGzipWriter(w io.Writer) *gzip.Writer {
	if v := gzipWriterPool.Get(); v != nil {
		zw := v.(*gzip.Writer)
		zw.Reset(w)
		return zw
	}
	zw, _ := gzip.NewWriterLevel(w, gzip.DefaultCompression)
	return zw
}

func acquireFlateWriter(w io.Writer) *flate.Writer {
	if v := flateWriterPool.Get(); v != nil {
		zw := v.(*flate.Writer)
		zw.Reset(w)
		return zw
	}
	zw, _ := flate.NewWriter(w, flate.DefaultCompression)
	return zw
}

func acquireBrotliWriter(w io.Writer) *brotli.Writer {
	if v := brotliWriterPool.Get(); v != nil {
		zw := v.(*brotli.Writer)
		zw.Reset(w)
		return zw
	}
	return brotli.NewWriterLevel(w, brotli.DefaultCompression)
}

// Encode appends p, coded with enc, to dst.
func Encode(dst *bytebufferpool.ByteBuffer, enc Encoding, p []byte) error {
	switch enc {
	case Identity:
		_, err := dst.Write(p)
		return err
	case Gzip:
		zw := acquireGzipWriter(dst)
		err := writeAndClose(zw, p)
		zw.Reset(nil)
		gzipWriterPool.Put(zw)
		return err
	case Deflate:
		zw := acquireFlateWriter(dst)
		err := writeAndClose(zw, p)
		zw.Reset(nil)
		flateWriterPool.Put(zw)
		return err
	case Brotli:
		zw := acquireBrotliWriter(dst)
		err := writeAndClose(zw, p)
		zw.Reset(nil)
		brotliWriterPool.Put(zw)
		return err
	default:
		return ErrUnknownEncoding
	}
}

func writeAndClose(w io.WriteCloser, p []byte) error {
	if _, err := w.Write(p); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// Body is a coded message body held in a pooled buffer.
type Body struct {
	enc Encoding
	buf *bytebufferpool.ByteBuffer
	src httpencode.BytesSource
}

// EncodeBody codes p with enc into a pooled buffer. Call Release once the
// body has been written.
func EncodeBody(enc Encoding, p []byte) (*Body, error) {
	buf := bytebufferpool.Get()
	if err := Encode(buf, enc, p); err != nil {
		bytebufferpool.Put(buf)
		return nil, err
	}
	b := &Body{enc: enc, buf: buf}
	b.src.Reset(buf.B)
	return b, nil
}

// Encoding returns the content-coding applied to the body.
func (b *Body) Encoding() Encoding {
	return b.enc
}

// Len returns the coded length, the value for Content-Length.
func (b *Body) Len() int {
	return len(b.buf.B)
}

// Bytes returns the coded body. It is invalid after Release.
func (b *Body) Bytes() []byte {
	return b.buf.B
}

// Source returns the coded body as a Source for Builder.Body, positioned at
// the start. Each call rewinds it.
func (b *Body) Source() httpencode.Source {
	b.src.Reset(b.buf.B)
	return &b.src
}

// HeaderWriter is the subset of *httpencode.Builder used by WriteHeaders.
type HeaderWriter interface {
	Header(name, value string) error
	ContentLength(n int64) error
}

// WriteHeaders appends the Content-Encoding (unless identity) and
// Content-Length headers that describe the body.
func (b *Body) WriteHeaders(hw HeaderWriter) error {
	if tok := b.enc.Token(); tok != "" {
		if err := hw.Header("Content-Encoding", tok); err != nil {
			return err
		}
	}
	return hw.ContentLength(int64(b.Len()))
}

// Release returns the buffer to its pool. b must not be used afterwards.
func (b *Body) Release() {
	if b.buf != nil {
		bytebufferpool.Put(b.buf)
		b.buf = nil
	}
	b.src.Reset(nil)
}
