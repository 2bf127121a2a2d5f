package httpencode

// Source is a body drained by Builder.Body.
//
// Remaining is used once as a pre-flight size estimate; Chunk and Advance
// are then called until Remaining reports zero.
type Source interface {
	// Remaining returns the number of unread bytes.
	Remaining() int
	// Chunk returns the next contiguous unread bytes without consuming them.
	// It returns an empty slice only when Remaining is zero.
	Chunk() []byte
	// Advance consumes the first n bytes returned by Chunk.
	Advance(n int)
}

// BytesSource is a Source over a single byte slice.
type BytesSource struct {
	p []byte
}

// NewBytesSource returns a Source that yields p.
func NewBytesSource(p []byte) *BytesSource {
	return &BytesSource{p: p}
}

// Reset makes s yield p from the start, for reuse without allocation.
func (s *BytesSource) Reset(p []byte) {
	s.p = p
}

func (s *BytesSource) Remaining() int { return len(s.p) }
func (s *BytesSource) Chunk() []byte  { return s.p }
func (s *BytesSource) Advance(n int)  { s.p = s.p[n:] }

// VectorSource is a Source over several byte slices, yielded in order.
// Empty slices are skipped. The slices are never modified.
type VectorSource struct {
	bufs [][]byte
	off  int // read offset into bufs[0]
	n    int
}

// NewVectorSource returns a Source that yields each of bufs in turn.
func NewVectorSource(bufs ...[]byte) *VectorSource {
	s := &VectorSource{}
	s.Reset(bufs...)
	return s
}

// Reset makes s yield bufs from the start.
func (s *VectorSource) Reset(bufs ...[]byte) {
	s.bufs = bufs
	s.off = 0
	s.n = 0
	for _, b := range bufs {
		s.n += len(b)
	}
	s.skipEmpty()
}

func (s *VectorSource) Remaining() int { return s.n }

func (s *VectorSource) Chunk() []byte {
	if len(s.bufs) == 0 {
		return nil
	}
	return s.bufs[0][s.off:]
}

func (s *VectorSource) Advance(n int) {
	if n > s.n {
		panic("httpencode: VectorSource advanced past end")
	}
	s.n -= n
	for n > 0 {
		left := len(s.bufs[0]) - s.off
		if n < left {
			s.off += n
			return
		}
		n -= left
		s.bufs = s.bufs[1:]
		s.off = 0
	}
	s.skipEmpty()
}

func (s *VectorSource) skipEmpty() {
	for len(s.bufs) > 0 && len(s.bufs[0]) == s.off {
		s.bufs = s.bufs[1:]
		s.off = 0
	}
}
