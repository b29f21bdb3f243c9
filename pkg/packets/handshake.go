package packets

import (
	"github.com/shipmc/gatecore/pkg/protocol"
	"github.com/shipmc/gatecore/pkg/wire"
)

// HandshakeOrdinal is Handshake's process-wide discriminator.
var HandshakeOrdinal = protocol.RegisterOrdinal()

// NextState is the handshake's requested follow-on phase.
type NextState uint32

const (
	NextStateStatus NextState = 1
	NextStateLogin  NextState = 2
)

// Handshake is the first serverbound packet on any connection: it carries
// the client's declared protocol version number, the address it dialed,
// and which phase it wants to enter next. Size is UNKNOWN because the
// server-address string's length isn't known without measuring it, the
// same "serialize into scratch to discover length" case spec §4.4
// describes for Size-UNKNOWN packets.
type Handshake struct {
	ProtocolVersion int32
	ServerAddress   string
	ServerPort      uint16
	NextState       NextState
}

func (h *Handshake) Read(_ *protocol.Version, buf *wire.Buffer) error {
	pv, err := buf.ReadVarInt()
	if err != nil {
		return err
	}
	addr, err := buf.ReadString(255)
	if err != nil {
		return err
	}
	port, err := buf.ReadUint16()
	if err != nil {
		return err
	}
	next, err := buf.ReadVarInt()
	if err != nil {
		return err
	}
	h.ProtocolVersion = int32(pv)
	h.ServerAddress = addr
	h.ServerPort = port
	h.NextState = NextState(next)
	return nil
}

func (h *Handshake) Write(_ *protocol.Version, buf *wire.Buffer) error {
	buf.WriteVarInt(uint32(h.ProtocolVersion))
	buf.WriteString(h.ServerAddress)
	buf.WriteUint16(h.ServerPort)
	buf.WriteVarInt(uint32(h.NextState))
	return nil
}

func (h *Handshake) Size(*protocol.Version) int64 { return protocol.SizeUnknown }

func (h *Handshake) Ordinal() uint32 { return HandshakeOrdinal }
