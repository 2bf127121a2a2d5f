package compress

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/valyala/bytebufferpool"

	"github.com/swlynch99/httpencode/pkg/httpencode"
)

func decode(t *testing.T, enc Encoding, p []byte) []byte {
	t.Helper()
	var r io.Reader
	switch enc {
	case Identity:
		return p
	case Gzip:
		zr, err := gzip.NewReader(bytes.NewReader(p))
		if err != nil {
			t.Fatalf("gzip.NewReader: %v", err)
		}
		r = zr
	case Deflate:
		r = flate.NewReader(bytes.NewReader(p))
	case Brotli:
		r = brotli.NewReader(bytes.NewReader(p))
	}
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("decode %s: %v", enc, err)
	}
	return out
}

func TestParseEncoding(t *testing.T) {
	tests := []struct {
		input    string
		expected Encoding
		err      error
	}{
		{"", Identity, nil},
		{"identity", Identity, nil},
		{"gzip", Gzip, nil},
		{"GZIP", Gzip, nil},
		{"x-gzip", Gzip, nil},
		{" deflate ", Deflate, nil},
		{"br", Brotli, nil},
		{"zstd", Identity, ErrUnknownEncoding},
		{"compress", Identity, ErrUnknownEncoding},
	}

	for _, tt := range tests {
		got, err := ParseEncoding(tt.input)
		if !errors.Is(err, tt.err) || got != tt.expected {
			t.Errorf("ParseEncoding(%q) = (%v, %v), want (%v, %v)", tt.input, got, err, tt.expected, tt.err)
		}
	}
}

func TestEncodingToken(t *testing.T) {
	tests := []struct {
		enc   Encoding
		token string
		name  string
	}{
		{Identity, "", "identity"},
		{Gzip, "gzip", "gzip"},
		{Deflate, "deflate", "deflate"},
		{Brotli, "br", "br"},
	}
	for _, tt := range tests {
		if tt.enc.Token() != tt.token || tt.enc.String() != tt.name {
			t.Errorf("%d: Token=%q String=%q", tt.enc, tt.enc.Token(), tt.enc.String())
		}
		// Tokens parse back to the same coding.
		if got, err := ParseEncoding(tt.enc.String()); err != nil || got != tt.enc {
			t.Errorf("ParseEncoding(%q) = (%v, %v)", tt.enc.String(), got, err)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	payload := []byte(strings.Repeat(`{"id":1,"name":"Alice","tags":["a","b"]}`, 64))

	for _, enc := range []Encoding{Identity, Gzip, Deflate, Brotli} {
		t.Run(enc.String(), func(t *testing.T) {
			// Run twice so the second pass reuses a pooled writer.
			for i := 0; i < 2; i++ {
				buf := bytebufferpool.Get()
				if err := Encode(buf, enc, payload); err != nil {
					t.Fatalf("Encode: %v", err)
				}
				if enc != Identity && buf.Len() >= len(payload) {
					t.Errorf("coded length %d not smaller than %d", buf.Len(), len(payload))
				}
				if got := decode(t, enc, buf.B); !bytes.Equal(got, payload) {
					t.Errorf("round trip mismatch: %d bytes, want %d", len(got), len(payload))
				}
				bytebufferpool.Put(buf)
			}
		})
	}
}

func TestEncodeAppends(t *testing.T) {
	buf := &bytebufferpool.ByteBuffer{B: []byte("prefix")}
	if err := Encode(buf, Identity, []byte("-body")); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "prefix-body" {
		t.Errorf("got %q", buf.String())
	}
}

func TestEncodeUnknown(t *testing.T) {
	var buf bytebufferpool.ByteBuffer
	if err := Encode(&buf, Encoding(99), []byte("x")); !errors.Is(err, ErrUnknownEncoding) {
		t.Errorf("error = %v, want ErrUnknownEncoding", err)
	}
	if _, err := EncodeBody(Encoding(99), []byte("x")); !errors.Is(err, ErrUnknownEncoding) {
		t.Errorf("EncodeBody error = %v, want ErrUnknownEncoding", err)
	}
}

func TestEncodeBodyInResponse(t *testing.T) {
	payload := []byte(strings.Repeat("hello compressed world ", 50))

	for _, enc := range []Encoding{Identity, Gzip, Deflate, Brotli} {
		t.Run(enc.String(), func(t *testing.T) {
			body, err := EncodeBody(enc, payload)
			if err != nil {
				t.Fatal(err)
			}
			defer body.Release()

			sink := httpencode.AcquireBufferSink(0)
			defer httpencode.ReleaseBufferSink(sink)

			b, err := httpencode.Response(sink, httpencode.HTTP11, httpencode.StatusOK)
			if err != nil {
				t.Fatal(err)
			}
			if err := b.Header("Content-Type", "text/plain"); err != nil {
				t.Fatal(err)
			}
			if err := body.WriteHeaders(&b); err != nil {
				t.Fatal(err)
			}
			if _, err := b.Body(body.Source()); err != nil {
				t.Fatal(err)
			}

			resp, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(sink.Bytes())), nil)
			if err != nil {
				t.Fatalf("ReadResponse: %v", err)
			}
			defer resp.Body.Close()

			if got := resp.Header.Get("Content-Encoding"); got != enc.Token() {
				t.Errorf("Content-Encoding = %q, want %q", got, enc.Token())
			}
			if resp.ContentLength != int64(body.Len()) {
				t.Errorf("Content-Length = %d, want %d", resp.ContentLength, body.Len())
			}
			raw, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatal(err)
			}
			if got := decode(t, enc, raw); !bytes.Equal(got, payload) {
				t.Error("decoded body differs from payload")
			}
		})
	}
}

func TestBodySourceRewinds(t *testing.T) {
	body, err := EncodeBody(Identity, []byte("abc"))
	if err != nil {
		t.Fatal(err)
	}
	defer body.Release()

	src := body.Source()
	src.Advance(2)
	if src.Remaining() != 1 {
		t.Fatalf("Remaining() = %d, want 1", src.Remaining())
	}
	if got := body.Source().Remaining(); got != 3 {
		t.Errorf("Source() did not rewind, Remaining() = %d", got)
	}
}

func BenchmarkEncode(b *testing.B) {
	payload := []byte(strings.Repeat(`{"users":[{"id":1,"name":"Alice"},{"id":2,"name":"Bob"}]}`, 32))

	for _, enc := range []Encoding{Gzip, Deflate, Brotli} {
		b.Run(enc.String(), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(payload)))
			for i := 0; i < b.N; i++ {
				buf := bytebufferpool.Get()
				if err := Encode(buf, enc, payload); err != nil {
					b.Fatal(err)
				}
				bytebufferpool.Put(buf)
			}
		})
	}
}
