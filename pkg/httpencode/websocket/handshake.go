// Package websocket encodes the HTTP/1.1 opening handshake of RFC 6455 with
// the httpencode builder. Framing is out of scope; pair it with any
// WebSocket frame implementation once the handshake completes.
package websocket

import (
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/swlynch99/httpencode/pkg/httpencode"
)

// WebSocket protocol GUID for handshake (RFC 6455 Section 1.3)
const websocketGUID = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"

// acceptKeyLen is the length of base64(SHA1(...)).
const acceptKeyLen = 28

var (
	ErrBadKey      = errors.New("websocket: invalid Sec-WebSocket-Key")
	ErrBadProtocol = errors.New("websocket: invalid subprotocol token")
)

// ComputeAcceptKey computes the Sec-WebSocket-Accept value for key:
// base64(SHA1(key + GUID)).
func ComputeAcceptKey(key string) string {
	var dst [acceptKeyLen]byte
	return string(appendAcceptKey(dst[:0], key))
}

// appendAcceptKey appends the accept value for key to dst. Keys of the
// usual 24 bytes are hashed from a stack buffer.
func appendAcceptKey(dst []byte, key string) []byte {
	var scratch [64]byte
	in := append(scratch[:0], key...)
	in = append(in, websocketGUID...)
	sum := sha1.Sum(in)

	n := len(dst)
	dst = append(dst, make([]byte, acceptKeyLen)...)
	base64.StdEncoding.Encode(dst[n:], sum[:])
	return dst
}

// NewKey returns a fresh Sec-WebSocket-Key: 16 random bytes, base64 encoded.
func NewKey() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b[:]), nil
}

// ValidKey reports whether key decodes to exactly 16 bytes, as RFC 6455
// requires of Sec-WebSocket-Key.
func ValidKey(key string) bool {
	if len(key) != 24 {
		return false
	}
	var b [18]byte
	n, err := base64.StdEncoding.Decode(b[:], []byte(key))
	return err == nil && n == 16
}

// WriteClientHandshake writes the client's upgrade request for path on host
// into sink. Each protocol must be a token; they are offered in order.
//
// On error the sink may hold a partial request.
func WriteClientHandshake(sink httpencode.Sink, host, path, key string, protocols ...string) error {
	if !ValidKey(key) {
		return ErrBadKey
	}
	for _, p := range protocols {
		if !httpencode.ValidHeaderNameString(p) {
			return ErrBadProtocol
		}
	}

	b, err := httpencode.Request(sink, httpencode.MethodGet, httpencode.NewURI(path), httpencode.HTTP11)
	if err != nil {
		return err
	}
	if err := b.Header("Host", host); err != nil {
		return err
	}
	if err := writeUpgradeHeaders(&b); err != nil {
		return err
	}
	if err := b.HeaderUnchecked("Sec-WebSocket-Key", key); err != nil {
		return err
	}
	if err := b.HeaderUnchecked("Sec-WebSocket-Version", "13"); err != nil {
		return err
	}
	if len(protocols) > 0 {
		if err := b.HeaderUnchecked("Sec-WebSocket-Protocol", strings.Join(protocols, ", ")); err != nil {
			return err
		}
	}
	_, err = b.Finish()
	return err
}

// WriteServerHandshake writes the 101 Switching Protocols response accepting
// the client's key into sink. protocol is the selected subprotocol, or ""
// for none.
//
// On error the sink may hold a partial response.
func WriteServerHandshake(sink httpencode.Sink, key, protocol string) error {
	if !ValidKey(key) {
		return ErrBadKey
	}
	if protocol != "" && !httpencode.ValidHeaderNameString(protocol) {
		return ErrBadProtocol
	}

	b, err := httpencode.Response(sink, httpencode.HTTP11, httpencode.StatusSwitchingProtocols)
	if err != nil {
		return err
	}
	if err := writeUpgradeHeaders(&b); err != nil {
		return err
	}

	var accept [acceptKeyLen]byte
	if err := b.HeaderBytes([]byte("Sec-WebSocket-Accept"), appendAcceptKey(accept[:0], key)); err != nil {
		return err
	}
	if protocol != "" {
		if err := b.HeaderUnchecked("Sec-WebSocket-Protocol", protocol); err != nil {
			return err
		}
	}
	_, err = b.Finish()
	return err
}

func writeUpgradeHeaders(b *httpencode.Builder[httpencode.Sink]) error {
	if err := b.HeaderUnchecked("Upgrade", "websocket"); err != nil {
		return err
	}
	return b.HeaderUnchecked("Connection", "Upgrade")
}
