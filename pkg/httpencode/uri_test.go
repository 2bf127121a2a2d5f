package httpencode

import (
	"errors"
	"net/url"
	"strings"
	"testing"
)

func TestWriteURI(t *testing.T) {
	tests := []struct {
		name     string
		uri      URI
		capacity int
		expected string
		err      error
	}{
		{"space escaped", NewURI("/test uri"), 64, "/test%20uri", nil},
		{"already escaped", EscapedURIUnchecked("/test%20uri"), 64, "/test%20uri", nil},
		{"escaped not re-escaped", EscapedURIUnchecked("/a b"), 64, "/a b", nil},
		{"percent escaped", NewURI("/100%"), 64, "/100%25", nil},
		{"query kept", NewURI("/search?q=go&lang=en"), 64, "/search?q=go&lang=en", nil},
		{"delimiters kept", NewURI("/a:b@c;d,e$f+g="), 64, "/a:b@c;d,e$f+g=", nil},
		{"unreserved kept", NewURI("/AZaz09-._~"), 64, "/AZaz09-._~", nil},
		{"uppercase hex", NewURI("/\xff\x0a"), 64, "/%FF%0A", nil},
		{"fragment escaped", NewURI("/a#b"), 64, "/a%23b", nil},
		{"brackets escaped", NewURI("/[x]"), 64, "/%5Bx%5D", nil},
		{"empty", NewURI(""), 64, "", ErrInvalidURI},
		{"escaped empty", EscapedURIUnchecked(""), 64, "", nil},
		{"exact fit", NewURI("/a b"), 6, "/a%20b", nil},
		{"escaped exact fit", EscapedURIUnchecked("/abc"), 4, "/abc", nil},
		{"escaped one short", EscapedURIUnchecked("/abc"), 3, "", ErrOutOfBuffer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := NewSliceSink(make([]byte, tt.capacity))
			err := writeURI(sink, tt.uri)
			if !errors.Is(err, tt.err) {
				t.Fatalf("writeURI() error = %v, want %v", err, tt.err)
			}
			if tt.err == nil {
				if got := string(sink.Bytes()); got != tt.expected {
					t.Errorf("sink = %q, want %q", got, tt.expected)
				}
			}
		})
	}
}

func TestWriteURIOutOfBuffer(t *testing.T) {
	sink := NewSliceSink(make([]byte, 5))
	err := writeURI(sink, NewURI("/6char"))
	if !errors.Is(err, ErrOutOfBuffer) {
		t.Fatalf("writeURI() error = %v, want ErrOutOfBuffer", err)
	}
	// Unescaped URIs are not atomic; whatever was written must be a prefix.
	if got := string(sink.Bytes()); !strings.HasPrefix("/6char", got) {
		t.Errorf("sink = %q, not a prefix of the URI", got)
	}
}

func TestWriteURIExactCapacity(t *testing.T) {
	raw := "/path with spaces/and%percent"
	n := EscapedLen(raw)

	sink := NewSliceSink(make([]byte, n))
	if err := writeURI(sink, NewURI(raw)); err != nil {
		t.Fatalf("writeURI() with exact capacity: %v", err)
	}
	if sink.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", sink.Remaining())
	}

	sink = NewSliceSink(make([]byte, n-1))
	if err := writeURI(sink, NewURI(raw)); !errors.Is(err, ErrOutOfBuffer) {
		t.Errorf("writeURI() one byte short: error = %v, want ErrOutOfBuffer", err)
	}
}

func TestURIRoundTrip(t *testing.T) {
	inputs := []string{
		"/",
		"/test uri",
		"/caf\xc3\xa9/na\xc3\xafve",
		"/100% sure",
		"/a?b=c d&e=f#frag",
		"/\x00\x01\x7f\xff",
		"/\"quoted\" <tag> {brace} |pipe| \\back^",
	}

	for _, in := range inputs {
		escaped := string(AppendEscapedURI(nil, in))
		if len(escaped) != EscapedLen(in) {
			t.Errorf("EscapedLen(%q) = %d, encoded length %d", in, EscapedLen(in), len(escaped))
		}

		sink := NewSliceSink(make([]byte, 256))
		if err := writeURI(sink, NewURI(in)); err != nil {
			t.Fatalf("writeURI(%q): %v", in, err)
		}
		if got := string(sink.Bytes()); got != escaped {
			t.Errorf("writeURI(%q) = %q, AppendEscapedURI = %q", in, got, escaped)
		}

		for i := 0; i < len(escaped); i++ {
			if c := escaped[i]; c <= ' ' || c >= 0x7f {
				t.Errorf("escaped form of %q contains byte %#02x", in, c)
			}
		}

		decoded, err := url.PathUnescape(escaped)
		if err != nil {
			t.Fatalf("PathUnescape(%q): %v", escaped, err)
		}
		if decoded != in {
			t.Errorf("round trip of %q = %q", in, decoded)
		}
	}
}

func TestNewURIBytes(t *testing.T) {
	b := []byte("/bytes path")
	u := NewURIBytes(b)
	if u.IsEscaped() {
		t.Error("NewURIBytes returned an escaped URI")
	}
	if u.String() != "/bytes path" {
		t.Errorf("String() = %q", u.String())
	}
}

func BenchmarkWriteURI(b *testing.B) {
	benchmarks := []struct {
		name string
		uri  URI
	}{
		{"Plain", NewURI("/api/v1/users/12345/profile")},
		{"NeedsEscaping", NewURI("/search results/caf\xc3\xa9 menu")},
		{"Escaped", EscapedURIUnchecked("/api/v1/users/12345/profile")},
	}

	buf := make([]byte, 256)
	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			b.ReportAllocs()
			sink := NewSliceSink(buf)
			for i := 0; i < b.N; i++ {
				sink.Reset()
				if err := writeURI(sink, bm.uri); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
