// Package framing implements the generic length-delimited framing layer
// (spec §4.3): a frame is VarInt(bodyLength) followed by that many bytes.
// It has no knowledge of packet ids, versions, or registries — that's
// mcpipe's job, one layer up.
package framing

import (
	"fmt"

	"github.com/shipmc/gatecore/pkg/wire"
)

// ErrNeedMore is returned by TryReadFrame when fewer than bodyLength bytes
// are currently available; the caller should refill its transport buffer
// and retry without the input having been consumed.
var ErrNeedMore = fmt.Errorf("framing: need more data")

// FrameTooLargeError is returned when a frame's declared body length
// exceeds MaxReadSize. Fatal to the connection per spec §7.
type FrameTooLargeError struct {
	Declared uint32
	Max      uint32
}

func (e *FrameTooLargeError) Error() string {
	return fmt.Sprintf("framing: frame of %d bytes exceeds max read size %d", e.Declared, e.Max)
}

// Pipe is the base framed-byte-packet pipe: it only understands frame
// boundaries, not packet contents.
type Pipe struct {
	MaxReadSize uint32
}

// NewPipe constructs a base Pipe with the given max accepted frame body
// size.
func NewPipe(maxReadSize uint32) *Pipe {
	return &Pipe{MaxReadSize: maxReadSize}
}

// TryReadFrame peeks a VarInt length prefix from in, then checks whether
// the full body is available. It never consumes from in unless a complete
// frame is present: on ErrNeedMore the caller can append more bytes and
// retry against the same (or an equivalent) buffer.
func (p *Pipe) TryReadFrame(in *wire.Buffer) (*wire.Buffer, error) {
	snapshot := in.Bytes()
	peek := wire.WrapBuffer(snapshot)

	bodyLength, err := peek.ReadVarInt()
	if err != nil {
		// Either malformed, or simply not enough bytes yet for the length
		// prefix itself — both are "need more" from the framing layer's
		// point of view unless the varint is outright malformed.
		if err == wire.ErrShortRead {
			return nil, ErrNeedMore
		}
		return nil, err
	}

	if bodyLength > p.MaxReadSize {
		return nil, &FrameTooLargeError{Declared: bodyLength, Max: p.MaxReadSize}
	}

	lenBytes := wire.VarIntBytes(bodyLength)
	if peek.GetReadableBytes() < int(bodyLength) {
		return nil, ErrNeedMore
	}

	// Commit: consume the length prefix and the body from the real input by
	// replacing it with a fresh cursor over the remaining bytes.
	consumed := lenBytes + int(bodyLength)
	frame := wire.NewBuffer(int(bodyLength))
	frame.WriteRaw(snapshot[lenBytes:consumed])
	*in = *wire.WrapBuffer(snapshot[consumed:])
	return frame, nil
}

// WriteFramed prepends a VarInt length to body and returns the framed
// bytes.
func WriteFramed(body []byte) []byte {
	out := wire.NewBuffer(wire.VarIntBytes(uint32(len(body))) + len(body))
	out.WriteVarInt(uint32(len(body)))
	out.WriteRaw(body)
	return out.Bytes()
}
