package httpencode

import (
	"math"
	"sync"

	"github.com/valyala/bytebufferpool"
)

// Sink is an append-only byte destination with a known remaining capacity.
//
// The encoder checks Remaining before every append, so the Append methods
// may assume the bytes fit.
type Sink interface {
	// Remaining returns how many more bytes the sink accepts.
	Remaining() int
	Append(p []byte)
	AppendString(s string)
	AppendByte(c byte)
}

// SliceSink is a fixed-capacity Sink over a caller-owned slice. It never
// grows: its capacity is the length of the slice it was created with.
type SliceSink struct {
	buf []byte
}

// NewSliceSink returns a sink that writes into buf[0:len(buf)].
func NewSliceSink(buf []byte) *SliceSink {
	return &SliceSink{buf: buf[:0:len(buf)]}
}

// Remaining returns the unused capacity.
func (s *SliceSink) Remaining() int {
	return cap(s.buf) - len(s.buf)
}

// Append copies p into the sink. It panics if p does not fit.
func (s *SliceSink) Append(p []byte) {
	s.grow(len(p))
	s.buf = append(s.buf, p...)
}

// AppendString copies str into the sink. It panics if str does not fit.
func (s *SliceSink) AppendString(str string) {
	s.grow(len(str))
	s.buf = append(s.buf, str...)
}

// AppendByte appends c. It panics if the sink is full.
func (s *SliceSink) AppendByte(c byte) {
	s.grow(1)
	s.buf = append(s.buf, c)
}

func (s *SliceSink) grow(n int) {
	if n > cap(s.buf)-len(s.buf) {
		panic("httpencode: SliceSink overflow")
	}
}

// Bytes returns the bytes written so far. The slice aliases the sink.
func (s *SliceSink) Bytes() []byte {
	return s.buf
}

// Len returns the number of bytes written.
func (s *SliceSink) Len() int {
	return len(s.buf)
}

// Cap returns the total capacity.
func (s *SliceSink) Cap() int {
	return cap(s.buf)
}

// Reset discards everything written.
func (s *SliceSink) Reset() {
	s.buf = s.buf[:0]
}

// Truncate discards all but the first n written bytes. Use it to roll back
// a partially written start line or URI.
func (s *SliceSink) Truncate(n int) {
	if n < 0 || n > len(s.buf) {
		panic("httpencode: SliceSink truncation out of range")
	}
	s.buf = s.buf[:n]
}

// BufferSink is a growable Sink backed by a bytebufferpool.ByteBuffer.
// Limit caps the total length of B; zero or a negative Limit means unbounded.
type BufferSink struct {
	B     *bytebufferpool.ByteBuffer
	Limit int
}

// NewBufferSink wraps bb. A limit <= 0 leaves the sink unbounded.
func NewBufferSink(bb *bytebufferpool.ByteBuffer, limit int) *BufferSink {
	return &BufferSink{B: bb, Limit: limit}
}

var bufferSinkPool sync.Pool

// AcquireBufferSink returns a BufferSink with a pooled, empty ByteBuffer.
// Return it with ReleaseBufferSink once its bytes are no longer needed.
func AcquireBufferSink(limit int) *BufferSink {
	v := bufferSinkPool.Get()
	if v == nil {
		return &BufferSink{B: bytebufferpool.Get(), Limit: limit}
	}
	s := v.(*BufferSink)
	s.B = bytebufferpool.Get()
	s.Limit = limit
	return s
}

// ReleaseBufferSink returns s and its ByteBuffer to their pools.
// s must not be used afterwards.
func ReleaseBufferSink(s *BufferSink) {
	if s.B != nil {
		bytebufferpool.Put(s.B)
		s.B = nil
	}
	s.Limit = 0
	bufferSinkPool.Put(s)
}

// Remaining returns how many bytes can still be appended before Limit.
func (s *BufferSink) Remaining() int {
	if s.Limit <= 0 {
		return math.MaxInt - len(s.B.B)
	}
	if n := s.Limit - len(s.B.B); n > 0 {
		return n
	}
	return 0
}

func (s *BufferSink) Append(p []byte) {
	s.B.B = append(s.B.B, p...)
}

func (s *BufferSink) AppendString(str string) {
	s.B.B = append(s.B.B, str...)
}

func (s *BufferSink) AppendByte(c byte) {
	s.B.B = append(s.B.B, c)
}

// Bytes returns the bytes written so far.
func (s *BufferSink) Bytes() []byte {
	return s.B.B
}

// Len returns the number of bytes written.
func (s *BufferSink) Len() int {
	return len(s.B.B)
}

// Reset discards everything written, keeping the allocated storage.
func (s *BufferSink) Reset() {
	s.B.Reset()
}

// Truncate discards all but the first n written bytes.
func (s *BufferSink) Truncate(n int) {
	if n < 0 || n > len(s.B.B) {
		panic("httpencode: BufferSink truncation out of range")
	}
	s.B.B = s.B.B[:n]
}
