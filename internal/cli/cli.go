// Package cli implements the httpencode command: it reads JSON message
// descriptions and writes their HTTP/1.x wire form.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/swlynch99/httpencode/internal/config"
	"github.com/swlynch99/httpencode/pkg/httpencode"
	"github.com/swlynch99/httpencode/pkg/httpencode/compress"
	"github.com/swlynch99/httpencode/pkg/httpencode/pool"
)

// ErrBadMessage is wrapped by errors describing malformed message input.
var ErrBadMessage = errors.New("cli: bad message")

// Message describes one request or response.
type Message struct {
	Kind    string          `json:"kind"` // "request" or "response"
	Method  string          `json:"method"`
	URI     string          `json:"uri"`
	Escaped bool            `json:"escaped"`
	Version string          `json:"version"`
	Status  int             `json:"status"`
	Reason  *string         `json:"reason"` // nil selects the registered phrase
	Headers []config.Header `json:"headers"`
	Body    string          `json:"body"`
}

// Run executes the command with args (excluding the program name).
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("httpencode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "YAML configuration file")
		inPath     = fs.String("in", "", "message file (default stdin)")
		encoding   = fs.String("encoding", "", "body content-coding: identity, gzip, deflate or br")
		maxSize    = fs.Int("max", -1, "maximum encoded size in bytes, 0 for unbounded")
		metrics    = fs.Bool("metrics", false, "write buffer pool metrics to stderr")
		verbose    = fs.Bool("v", false, "log each encoded message")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	if *encoding != "" {
		cfg.Encoding = *encoding
	}
	if *maxSize >= 0 {
		cfg.MaxSize = *maxSize
		if cfg.MaxSize > 0 && cfg.BufferSize > cfg.MaxSize {
			cfg.BufferSize = cfg.MaxSize
		}
	}
	if *metrics {
		cfg.Metrics = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	in := stdin
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	logger := log.New(stderr, "httpencode: ", 0)
	enc := &Encoder{Config: cfg, Pool: pool.New()}

	dec := json.NewDecoder(in)
	for n := 0; ; n++ {
		var msg Message
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("%w: message %d: %v", ErrBadMessage, n, err)
		}
		size, err := enc.Encode(stdout, &msg)
		if err != nil {
			return fmt.Errorf("message %d: %w", n, err)
		}
		if *verbose {
			logger.Printf("message %d: %s, %d bytes", n, msg.Kind, size)
		}
	}

	if cfg.Metrics {
		return WriteMetrics(stderr, enc.Pool)
	}
	return nil
}

// WriteMetrics writes the pool's Prometheus metrics to w in text
// exposition format.
func WriteMetrics(w io.Writer, p *pool.Pool) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(pool.NewCollector(p, "httpencode")); err != nil {
		return err
	}
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// Encoder turns messages into wire bytes using pooled sinks.
type Encoder struct {
	Config config.Config
	Pool   *pool.Pool
}

// Encode writes msg to w and returns the number of bytes written.
//
// With a bounded MaxSize the message is encoded into a pooled fixed buffer
// that doubles on ErrOutOfBuffer until MaxSize is reached. With MaxSize 0 a
// growable buffer is used.
func (e *Encoder) Encode(w io.Writer, msg *Message) (int, error) {
	var body *compress.Body
	if msg.Body != "" {
		var err error
		body, err = compress.EncodeBody(e.Config.BodyEncoding(), []byte(msg.Body))
		if err != nil {
			return 0, err
		}
		defer body.Release()
	}

	if e.Config.MaxSize == 0 {
		sink := httpencode.AcquireBufferSink(0)
		defer httpencode.ReleaseBufferSink(sink)
		if err := e.encode(sink, msg, body); err != nil {
			return 0, err
		}
		return w.Write(sink.Bytes())
	}

	limit := e.Config.MaxSize
	size := min(e.Config.BufferSize, limit)
	for {
		buf := e.Pool.Get(size)
		sink := httpencode.NewSliceSink(buf[:min(len(buf), limit)])
		err := e.encode(sink, msg, body)
		if err == nil {
			n, werr := w.Write(sink.Bytes())
			e.Pool.Put(buf)
			return n, werr
		}
		capacity := sink.Cap()
		e.Pool.Put(buf)
		if !errors.Is(err, httpencode.ErrOutOfBuffer) || capacity >= limit {
			return 0, err
		}
		size = min(capacity*2, limit)
	}
}

func (e *Encoder) encode(sink httpencode.Sink, msg *Message, body *compress.Body) error {
	version := e.Config.HTTPVersion()
	if msg.Version != "" {
		version = httpencode.ParseVersion(msg.Version)
	}

	var (
		b   httpencode.Builder[httpencode.Sink]
		err error
	)
	switch msg.Kind {
	case "request":
		method := httpencode.MethodGet
		if msg.Method != "" {
			method = httpencode.ParseMethod([]byte(msg.Method))
		}
		uri := httpencode.NewURI(msg.URI)
		if msg.Escaped {
			uri = httpencode.EscapedURIUnchecked(msg.URI)
		}
		b, err = httpencode.Request(sink, method, uri, version)
	case "response":
		if msg.Status < 0 || msg.Status >= 1000 {
			return fmt.Errorf("%w: status %d out of range", ErrBadMessage, msg.Status)
		}
		status := httpencode.NewStatus(uint16(msg.Status))
		if msg.Reason != nil {
			b, err = httpencode.ResponseWithReason(sink, version, status, *msg.Reason)
		} else {
			b, err = httpencode.Response(sink, version, status)
		}
	default:
		return fmt.Errorf("%w: kind %q", ErrBadMessage, msg.Kind)
	}
	if err != nil {
		return err
	}

	for _, h := range e.Config.Headers {
		if err := b.Header(h.Name, h.Value); err != nil {
			return fmt.Errorf("header %q: %w", h.Name, err)
		}
	}
	for _, h := range msg.Headers {
		if err := b.Header(h.Name, h.Value); err != nil {
			return fmt.Errorf("header %q: %w", h.Name, err)
		}
	}

	if body == nil {
		_, err = b.Finish()
		return err
	}
	if err := body.WriteHeaders(&b); err != nil {
		return err
	}
	_, err = b.Body(body.Source())
	return err
}
