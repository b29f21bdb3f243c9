package packets

import (
	"github.com/shipmc/gatecore/pkg/protocol"
	"github.com/shipmc/gatecore/pkg/wire"
)

// SingleVersionOrdinal is the reserved ordinal mcpipe's write path checks
// second, after PreparedOrdinal, to take the single-version fast path.
var SingleVersionOrdinal = protocol.RegisterOrdinal()

// SingleVersionPreparedPacket holds one opaque byte blob: a complete frame
// (length VarInt + id VarInt + payload). It doubles as the pass-through
// carrier for unknown incoming packet ids (spec §4.4, §7) — decoding an
// unregistered id produces one of these holding the original frame bytes
// verbatim, so re-encoding forwards it byte-identically.
type SingleVersionPreparedPacket struct {
	frame []byte
}

// NewSingleVersionPreparedPacket wraps a complete, already-framed blob.
func NewSingleVersionPreparedPacket(frame []byte) *SingleVersionPreparedPacket {
	return &SingleVersionPreparedPacket{frame: frame}
}

// GetBytes returns the complete framed blob (length + id + payload).
func (p *SingleVersionPreparedPacket) GetBytes() []byte {
	return p.frame
}

// Read stores buf's full contents (length VarInt + id VarInt + payload,
// already reconstituted by the caller) as this packet's frame, consuming
// them from buf. This is how the pipe's pass-through branch populates the
// carrier (spec §4.4 step 3).
func (p *SingleVersionPreparedPacket) Read(_ *protocol.Version, buf *wire.Buffer) error {
	n := buf.GetReadableBytes()
	dst := wire.NewBuffer(n)
	if err := dst.WriteBytes(buf, n); err != nil {
		return err
	}
	p.frame = dst.Bytes()
	return nil
}

// Write is unused: the pipe's write path short-circuits on Ordinal() before
// ever calling this generically.
func (p *SingleVersionPreparedPacket) Write(_ *protocol.Version, buf *wire.Buffer) error {
	buf.WriteRaw(p.frame)
	return nil
}

// Size is unknown: SingleVersionPreparedPacket is never sized the generic
// way, it is always a fast-path carrier.
func (p *SingleVersionPreparedPacket) Size(*protocol.Version) int64 { return protocol.SizeUnknown }

// Ordinal returns the reserved SingleVersionOrdinal.
func (p *SingleVersionPreparedPacket) Ordinal() uint32 { return SingleVersionOrdinal }
