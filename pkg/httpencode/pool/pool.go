// Package pool provides size-classed byte buffers for encoding HTTP header
// sections into fixed-capacity sinks without per-message allocation.
package pool

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/swlynch99/httpencode/pkg/httpencode"
)

// Buffer size classes. A header section rarely exceeds a few kilobytes, so
// the classes start small and stop at 64KB.
const (
	Size1KB  = 1 * 1024
	Size2KB  = 2 * 1024
	Size4KB  = 4 * 1024  // typical request or response head
	Size8KB  = 8 * 1024  // common server header limit
	Size16KB = 16 * 1024 // large cookies
	Size32KB = 32 * 1024
	Size64KB = 64 * 1024 // largest pooled class
)

var classSizes = [...]int{Size1KB, Size2KB, Size4KB, Size8KB, Size16KB, Size32KB, Size64KB}

const numClasses = len(classSizes)

// Pool hands out byte buffers rounded up to a size class.
//
// Requests larger than the largest class are allocated directly and never
// pooled. Pool is safe for concurrent use.
type Pool struct {
	classes [numClasses]sizedPool

	gets     atomic.Uint64
	puts     atomic.Uint64
	oversize atomic.Uint64 // Get calls above Size64KB
}

// sizedPool manages a single size class.
type sizedPool struct {
	size int
	pool sync.Pool

	gets      atomic.Uint64
	puts      atomic.Uint64
	misses    atomic.Uint64 // new allocations
	discards  atomic.Uint64 // Put with a buffer smaller than the class
	allocated atomic.Uint64 // bytes allocated on miss
	reused    atomic.Uint64 // bytes handed out again on hit
}

// get returns a buffer of exactly the class size.
//
// Allocation behavior: 0 allocs/op on hit, 1 alloc/op on miss
func (sp *sizedPool) get() []byte {
	sp.gets.Add(1)
	if v := sp.pool.Get(); v != nil {
		sp.reused.Add(uint64(sp.size))
		return (*(v.(*[]byte)))[:sp.size]
	}
	sp.misses.Add(1)
	sp.allocated.Add(uint64(sp.size))
	return make([]byte, sp.size)
}

func (sp *sizedPool) put(buf []byte) {
	sp.puts.Add(1)
	if cap(buf) < sp.size {
		sp.discards.Add(1)
		return
	}
	buf = buf[:sp.size]
	sp.pool.Put(&buf)
}

// New returns an empty pool.
func New() *Pool {
	p := &Pool{}
	for i, size := range classSizes {
		p.classes[i].size = size
	}
	return p
}

// classFor returns the index of the smallest class holding size bytes, or
// -1 if size exceeds every class.
func classFor(size int) int {
	for i, c := range classSizes {
		if size <= c {
			return i
		}
	}
	return -1
}

// Get returns a buffer with len >= size. Its contents are unspecified.
//
// Example:
//
//	buf := p.Get(3000) // 4KB buffer
//	defer p.Put(buf)
//
// Allocation behavior: 0 allocs/op on hit, 1 alloc/op on miss
func (p *Pool) Get(size int) []byte {
	p.gets.Add(1)
	i := classFor(size)
	if i < 0 {
		p.oversize.Add(1)
		return make([]byte, size)
	}
	return p.classes[i].get()
}

// Put returns buf to the class matching its capacity. Buffers smaller than
// the smallest class or larger than the largest are dropped.
//
// buf must not be used after Put.
func (p *Pool) Put(buf []byte) {
	if buf == nil {
		return
	}
	p.puts.Add(1)

	c := cap(buf)
	if c < Size1KB || c > Size64KB {
		return
	}
	// Round down so a reused buffer always covers its class.
	for i := numClasses - 1; i >= 0; i-- {
		if c >= classSizes[i] {
			p.classes[i].put(buf)
			return
		}
	}
}

// PutWithReset zeroes buf before returning it to the pool.
func (p *Pool) PutWithReset(buf []byte) {
	clear(buf[:cap(buf)])
	p.Put(buf)
}

// AcquireSink returns a SliceSink whose capacity is the class covering size.
// Release it with ReleaseSink.
func (p *Pool) AcquireSink(size int) *httpencode.SliceSink {
	return httpencode.NewSliceSink(p.Get(size))
}

// ReleaseSink returns the sink's storage to the pool. The sink and any slice
// obtained from its Bytes method must not be used afterwards.
func (p *Pool) ReleaseSink(s *httpencode.SliceSink) {
	b := s.Bytes()
	p.Put(b[:cap(b)])
}

// Warmup allocates count buffers in every class so the first requests do
// not miss.
func (p *Pool) Warmup(count int) {
	bufs := make([][]byte, count)
	for i := range p.classes {
		sp := &p.classes[i]
		for j := range bufs {
			bufs[j] = sp.get()
		}
		for j := range bufs {
			sp.put(bufs[j])
			bufs[j] = nil
		}
	}
}

// Metrics is a snapshot of pool counters.
type Metrics struct {
	Classes [numClasses]ClassMetrics

	Gets     uint64
	Puts     uint64
	Oversize uint64

	HitRate   float64 // percent, across all classes
	Allocated uint64  // bytes
	Reused    uint64  // bytes
}

// ClassMetrics holds the counters of one size class.
type ClassMetrics struct {
	Size      int
	Gets      uint64
	Puts      uint64
	Hits      uint64
	Misses    uint64
	Discards  uint64
	HitRate   float64 // percent
	Allocated uint64
	Reused    uint64
}

// Metrics returns a snapshot of the pool counters. Counters are read one by
// one, so a snapshot taken under load may be slightly inconsistent.
func (p *Pool) Metrics() Metrics {
	m := Metrics{
		Gets:     p.gets.Load(),
		Puts:     p.puts.Load(),
		Oversize: p.oversize.Load(),
	}

	var hits, gets uint64
	for i := range p.classes {
		sp := &p.classes[i]
		cm := ClassMetrics{
			Size:      sp.size,
			Gets:      sp.gets.Load(),
			Puts:      sp.puts.Load(),
			Misses:    sp.misses.Load(),
			Discards:  sp.discards.Load(),
			Allocated: sp.allocated.Load(),
			Reused:    sp.reused.Load(),
		}
		if cm.Gets >= cm.Misses {
			cm.Hits = cm.Gets - cm.Misses
		}
		if cm.Gets > 0 {
			cm.HitRate = float64(cm.Hits) / float64(cm.Gets) * 100.0
		}
		m.Classes[i] = cm

		hits += cm.Hits
		gets += cm.Gets
		m.Allocated += cm.Allocated
		m.Reused += cm.Reused
	}
	if gets > 0 {
		m.HitRate = float64(hits) / float64(gets) * 100.0
	}
	return m
}

// ResetMetrics zeroes every counter. Pooled buffers are kept.
func (p *Pool) ResetMetrics() {
	p.gets.Store(0)
	p.puts.Store(0)
	p.oversize.Store(0)
	for i := range p.classes {
		sp := &p.classes[i]
		sp.gets.Store(0)
		sp.puts.Store(0)
		sp.misses.Store(0)
		sp.discards.Store(0)
		sp.allocated.Store(0)
		sp.reused.Store(0)
	}
}

// WriteMetrics writes a human-readable summary of the pool counters to w.
func (p *Pool) WriteMetrics(w io.Writer) error {
	m := p.Metrics()
	if _, err := fmt.Fprintf(w,
		"buffer pool: gets=%d puts=%d oversize=%d hit_rate=%.2f%% allocated=%d reused=%d\n",
		m.Gets, m.Puts, m.Oversize, m.HitRate, m.Allocated, m.Reused); err != nil {
		return err
	}
	for _, c := range m.Classes {
		if c.Gets == 0 && c.Puts == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w,
			"  %s: gets=%d puts=%d hits=%d misses=%d discards=%d hit_rate=%.2f%%\n",
			sizeLabel(c.Size), c.Gets, c.Puts, c.Hits, c.Misses, c.Discards, c.HitRate); err != nil {
			return err
		}
	}
	return nil
}

// sizeLabel formats a class size as "4kb".
func sizeLabel(size int) string {
	return fmt.Sprintf("%dkb", size/1024)
}

var defaultPool = New()

// Default returns the process-wide pool used by Get and Put.
func Default() *Pool {
	return defaultPool
}

// Get returns a buffer from the default pool.
func Get(size int) []byte {
	return defaultPool.Get(size)
}

// Put returns a buffer to the default pool.
func Put(buf []byte) {
	defaultPool.Put(buf)
}
