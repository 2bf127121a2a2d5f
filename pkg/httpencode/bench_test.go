package httpencode

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/valyala/fasthttp"
)

// Composition Benchmarks: httpencode vs fasthttp vs net/http
//
// Each benchmark writes the same request header section. httpencode
// writes into a reused fixed buffer; fasthttp and net/http serialize their
// own header structures into a reused bytes.Buffer.
//
// Run with: go test -bench=BenchmarkCompose -benchmem

var benchLongHeaders = [][2]string{
	{"Host", "www.kittyhell.com"},
	{"User-Agent", "Mozilla/5.0 (Macintosh; U; Intel Mac OS X 10.6; ja-JP-mac; rv:1.9.2.3) Gecko/20100401 Firefox/3.6.3 Pathtraq/0.9"},
	{"Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"},
	{"Accept-Language", "ja,en-us;q=0.7,en;q=0.3"},
	{"Accept-Encoding", "gzip,deflate"},
	{"Accept-Charset", "Shift_JIS,utf-8;q=0.7,*;q=0.7"},
	{"Keep-Alive", "115"},
	{"Connection", "keep-alive"},
	{"Cookie", "wp_ozh_wsa_visits=2; wp_ozh_wsa_visit_lasttime=xxxxxxxxxx; __utma=xxxxxxxxx.xxxxxxxxxx.xxxxxxxxxx.xxxxxxxxxx.xxxxxxxxxx.x; __utmz=xxxxxxxxx.xxxxxxxxxx.x.x.utmccn=(referral)|utmcsr=reader.livedoor.com|utmcct=/reader/|utmcmd=referral|padding=under256"},
}

const benchLongPath = "/wp-content/uploads/2010/03/hello-kitty-darth-vader-pink.jpg"

// ===================================================================
// httpencode
// ===================================================================

func BenchmarkCompose_RequestShort(b *testing.B) {
	buf := make([]byte, 1<<14)
	sink := NewSliceSink(buf)
	uri := NewURI("/")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sink.Reset()
		req, err := Request(sink, MethodGet, uri, HTTP11)
		if err != nil {
			b.Fatal(err)
		}
		_ = req.Header("Host", "example.com")
		_ = req.Header("Cookie", "session=60; user_id=1")
		if _, err := req.Finish(); err != nil {
			b.Fatal(err)
		}
	}
	b.SetBytes(int64(sink.Len()))
}

func BenchmarkCompose_RequestLong(b *testing.B) {
	buf := make([]byte, 1<<14)
	sink := NewSliceSink(buf)
	uri := NewURI(benchLongPath)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sink.Reset()
		req, err := Request(sink, MethodGet, uri, HTTP11)
		if err != nil {
			b.Fatal(err)
		}
		for _, h := range benchLongHeaders {
			if err := req.Header(h[0], h[1]); err != nil {
				b.Fatal(err)
			}
		}
		if _, err := req.Finish(); err != nil {
			b.Fatal(err)
		}
	}
	b.SetBytes(int64(sink.Len()))
}

func BenchmarkCompose_RequestLongUnchecked(b *testing.B) {
	buf := make([]byte, 1<<14)
	sink := NewSliceSink(buf)
	uri := EscapedURIUnchecked(benchLongPath)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sink.Reset()
		req, err := Request(sink, MethodGet, uri, HTTP11)
		if err != nil {
			b.Fatal(err)
		}
		for _, h := range benchLongHeaders {
			if err := req.HeaderUnchecked(h[0], h[1]); err != nil {
				b.Fatal(err)
			}
		}
		if _, err := req.Finish(); err != nil {
			b.Fatal(err)
		}
	}
	b.SetBytes(int64(sink.Len()))
}

func BenchmarkCompose_RequestLongBufferSink(b *testing.B) {
	uri := NewURI(benchLongPath)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sink := AcquireBufferSink(1 << 14)
		req, err := Request(sink, MethodGet, uri, HTTP11)
		if err != nil {
			b.Fatal(err)
		}
		for _, h := range benchLongHeaders {
			if err := req.Header(h[0], h[1]); err != nil {
				b.Fatal(err)
			}
		}
		if _, err := req.Finish(); err != nil {
			b.Fatal(err)
		}
		ReleaseBufferSink(sink)
	}
}

func BenchmarkCompose_Response(b *testing.B) {
	buf := make([]byte, 1<<12)
	sink := NewSliceSink(buf)
	body := NewBytesSource(nil)
	payload := []byte(`{"users":[{"id":1,"name":"Alice"},{"id":2,"name":"Bob"}]}`)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sink.Reset()
		body.Reset(payload)
		resp, err := Response(sink, HTTP11, StatusOK)
		if err != nil {
			b.Fatal(err)
		}
		_ = resp.Header("Content-Type", "application/json")
		_ = resp.ContentLength(int64(len(payload)))
		if _, err := resp.Body(body); err != nil {
			b.Fatal(err)
		}
	}
	b.SetBytes(int64(sink.Len()))
}

// ===================================================================
// fasthttp
// ===================================================================

func BenchmarkCompose_RequestLong_FastHTTP(b *testing.B) {
	var buf bytes.Buffer

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()

		var h fasthttp.RequestHeader
		h.SetMethod(fasthttp.MethodGet)
		h.SetRequestURI(benchLongPath)
		for _, kv := range benchLongHeaders {
			h.Set(kv[0], kv[1])
		}
		if _, err := h.WriteTo(&buf); err != nil {
			b.Fatal(err)
		}
	}
	b.SetBytes(int64(buf.Len()))
}

// ===================================================================
// net/http
// ===================================================================

func BenchmarkCompose_RequestLong_NetHTTP(b *testing.B) {
	var buf bytes.Buffer

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()

		req, err := http.NewRequest(http.MethodGet, "http://www.kittyhell.com"+benchLongPath, nil)
		if err != nil {
			b.Fatal(err)
		}
		for _, kv := range benchLongHeaders[1:] {
			req.Header.Set(kv[0], kv[1])
		}
		if err := req.Write(&buf); err != nil {
			b.Fatal(err)
		}
	}
	b.SetBytes(int64(buf.Len()))
}
