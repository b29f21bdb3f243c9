// Package packets holds the concrete Packet implementations: the two
// prepared fast-path carriers and the illustrative play-phase packets
// (KeepAlive, JoinGame) whose version-conditional layouts exercise the
// registry and pipe.
package packets

import (
	"fmt"

	"github.com/shipmc/gatecore/pkg/protocol"
	"github.com/shipmc/gatecore/pkg/wire"
)

// PreparedOrdinal is the reserved ordinal mcpipe's write path checks first
// to take the prepared fast path (spec §4.4).
var PreparedOrdinal = protocol.RegisterOrdinal()

// PreparedPacket holds a version -> pre-framed-bytes mapping computed once,
// outside the hot path (spec §4.5), and returned verbatim by the pipe's
// write fast path. The bytes per version are the complete frame (length
// VarInt + id VarInt + payload); mcpipe forwards them without adding a
// length prefix.
type PreparedPacket struct {
	bytes map[*protocol.Version][]byte
}

// NewPreparedPacket wraps a precomputed version -> framed-bytes map.
func NewPreparedPacket(bytes map[*protocol.Version][]byte) *PreparedPacket {
	return &PreparedPacket{bytes: bytes}
}

// GetBytes returns the framed bytes prepared for version.
func (p *PreparedPacket) GetBytes(version *protocol.Version) ([]byte, error) {
	b, ok := p.bytes[version]
	if !ok {
		return nil, fmt.Errorf("packets: PreparedPacket has no bytes for version %s", version)
	}
	return b, nil
}

// Read is unused: PreparedPacket never appears on the read path — it is
// produced by the application, not decoded off the wire.
func (p *PreparedPacket) Read(*protocol.Version, *wire.Buffer) error {
	return fmt.Errorf("packets: PreparedPacket cannot be decoded from the wire")
}

// Write is unused for the same reason Read is; the pipe's write path never
// calls it because it short-circuits on Ordinal() before reaching here.
func (p *PreparedPacket) Write(*protocol.Version, *wire.Buffer) error {
	return fmt.Errorf("packets: PreparedPacket cannot be written generically")
}

// Size is unknown: PreparedPacket is never sized the generic way.
func (p *PreparedPacket) Size(*protocol.Version) int64 { return protocol.SizeUnknown }

// Ordinal returns the reserved PreparedOrdinal.
func (p *PreparedPacket) Ordinal() uint32 { return PreparedOrdinal }

// BuildPrepared calls encode once per target version and stores each result
// verbatim, producing a PreparedPacket whose write path is then pure map
// lookup. encode must return the complete framed bytes (length prefix
// included); mcpipe.Pipe.Prepare passes its generic write path here.
func BuildPrepared(versions []*protocol.Version, encode func(version *protocol.Version) ([]byte, error)) (*PreparedPacket, error) {
	bytes := make(map[*protocol.Version][]byte, len(versions))
	for _, v := range versions {
		b, err := encode(v)
		if err != nil {
			return nil, fmt.Errorf("packets: preparing version %s: %w", v, err)
		}
		bytes[v] = b
	}
	return NewPreparedPacket(bytes), nil
}
