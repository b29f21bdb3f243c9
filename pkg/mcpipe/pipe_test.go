package mcpipe

import (
	"testing"

	"github.com/shipmc/gatecore/pkg/packets"
	"github.com/shipmc/gatecore/pkg/protocol"
	"github.com/shipmc/gatecore/pkg/registry"
	"github.com/shipmc/gatecore/pkg/wire"
	"github.com/stretchr/testify/require"
)

func mustBuiltinRegistry(t *testing.T) *registry.PacketRegistry {
	t.Helper()
	reg, err := packets.NewBuiltinRegistry()
	require.NoError(t, err)
	return reg
}

func TestMcpipe_WritePacket_KeepAlive_MatchesSpecWireExample(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	p := NewPipe(cfg, protocol.V1_19, mustBuiltinRegistry(t), nil)

	k := &packets.KeepAlive{ID: 0x0102030405060708}
	view, err := p.WritePacket(k)
	require.NoError(t, err)
	require.True(t, view.Owned())

	want := []byte{0x09, 0x21, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	require.Equal(t, want, view.Bytes())
}

func TestMcpipe_ReadFrame_RoundTripsKnownPacket(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	writer := NewPipe(cfg, protocol.V1_19, mustBuiltinRegistry(t), nil)

	k := &packets.KeepAlive{ID: 42}
	view, err := writer.WritePacket(k)
	require.NoError(t, err)

	// Read the frame back from the opposite side: a reader configured for
	// the clientbound direction, matching how the packet was written.
	readerCfg := cfg
	readerCfg.ReaderDirection = registry.Clientbound
	reader := NewPipe(readerCfg, protocol.V1_19, mustBuiltinRegistry(t), nil)

	in := wire.WrapBuffer(append([]byte(nil), view.Bytes()...))
	got, err := reader.ReadFrame(in)
	require.NoError(t, err)
	require.Zero(t, in.GetReadableBytes())

	ka, ok := got.(*packets.KeepAlive)
	require.True(t, ok)
	require.Equal(t, k.ID, ka.ID)
}

func TestMcpipe_ReadFrame_PassThroughUnknownID(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	p := NewPipe(cfg, protocol.V1_19, mustBuiltinRegistry(t), nil)

	// spec §8 S3: length=5, id=0xFE (unregistered; its VarInt is FE 01),
	// payload 02 03 04.
	in := wire.WrapBuffer([]byte{0x05, 0xFE, 0x01, 0x02, 0x03, 0x04})
	got, err := p.ReadFrame(in)
	require.NoError(t, err)
	require.Zero(t, in.GetReadableBytes())

	sp, ok := got.(*packets.SingleVersionPreparedPacket)
	require.True(t, ok)
	require.Equal(t, []byte{0x05, 0xFE, 0x01, 0x02, 0x03, 0x04}, sp.GetBytes())
}

func TestMcpipe_ReadFrame_NeedsMoreData(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	p := NewPipe(cfg, protocol.V1_19, mustBuiltinRegistry(t), nil)

	in := wire.WrapBuffer([]byte{0x05, 0xFE, 0x01})
	_, err := p.ReadFrame(in)
	require.Error(t, err)
	require.Equal(t, []byte{0x05, 0xFE, 0x01}, in.Bytes())
}

func TestMcpipe_WritePacket_UnregisteredTypeErrorsCleanly(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	p := NewPipe(cfg, protocol.V1_19, mustBuiltinRegistry(t), nil)

	_, err := p.WritePacket(&Handshake0x00{})
	require.Error(t, err)
}

func TestMcpipe_WritePacket_Handshake_SizeUnknownEncodesCorrectLength(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.WriterDirection = registry.Serverbound
	p := NewPipe(cfg, protocol.V1_19, mustBuiltinRegistry(t), nil)

	h := &packets.Handshake{
		ProtocolVersion: 754,
		ServerAddress:   "play.example.com",
		ServerPort:      25565,
		NextState:       packets.NextStateLogin,
	}
	view, err := p.WritePacket(h)
	require.NoError(t, err)
	require.True(t, view.Owned())

	frame := wire.WrapBuffer(view.Bytes())
	bodyLen, err := frame.ReadVarInt()
	require.NoError(t, err)
	require.EqualValues(t, frame.GetReadableBytes(), bodyLen)

	id, err := frame.ReadVarInt()
	require.NoError(t, err)
	require.EqualValues(t, 0x00, id)
}

func TestMcpipe_Prepare_WritePathReturnsBorrowedExactBytes(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	p := NewPipe(cfg, protocol.V1_19, mustBuiltinRegistry(t), nil)

	k := &packets.KeepAlive{ID: 99}
	direct, err := p.WritePacket(k)
	require.NoError(t, err)

	prepared, err := p.Prepare([]*protocol.Version{protocol.V1_19}, k)
	require.NoError(t, err)

	view, err := p.WritePacket(prepared)
	require.NoError(t, err)
	require.False(t, view.Owned())
	require.Equal(t, direct.Bytes(), view.Bytes())
}

func TestMcpipe_SetRegistry_SwapsActiveRegistry(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.ReaderDirection = registry.Clientbound
	p := NewPipe(cfg, protocol.V1_19, mustBuiltinRegistry(t), nil)

	frame := func() *wire.Buffer {
		return wire.WrapBuffer([]byte{0x09, 0x21, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08})
	}

	// Before the swap, clientbound KeepAlive at id 0x21 resolves normally.
	got, err := p.ReadFrame(frame())
	require.NoError(t, err)
	_, ok := got.(*packets.KeepAlive)
	require.True(t, ok)

	empty := registry.NewPacketRegistry(
		registry.NewDirectionRegistry(registry.Serverbound),
		registry.NewDirectionRegistry(registry.Clientbound),
	)
	p.SetRegistry(empty)

	// After swapping in an empty registry, the same id falls back to
	// pass-through.
	got, err = p.ReadFrame(frame())
	require.NoError(t, err)
	_, ok = got.(*packets.SingleVersionPreparedPacket)
	require.True(t, ok)
}

func TestMcpipe_ReadPacket_UnderreadingPacketSurfacesInvalidPacketSize(t *testing.T) {
	t.Parallel()

	sb := registry.NewDirectionRegistry(registry.Serverbound)
	cb := registry.NewDirectionRegistry(registry.Clientbound)
	require.NoError(t, sb.Register(protocol.V1_19, 0x50, func() protocol.Packet { return &underreadingPacket{} }))
	reg := registry.NewPacketRegistry(sb, cb)

	cfg := DefaultConfig()
	p := NewPipe(cfg, protocol.V1_19, reg, nil)

	// id=0x50 (1 byte), payload declared as 4 bytes, but underreadingPacket
	// only consumes 3 — spec §8 S5.
	in := wire.WrapBuffer([]byte{0x05, 0x50, 0x01, 0x02, 0x03, 0x04})
	_, err := p.ReadFrame(in)

	var sizeErr *InvalidPacketSizeError
	require.ErrorAs(t, err, &sizeErr)
	require.EqualValues(t, 5, sizeErr.Expected)
}

// underreadingPacket deliberately consumes one byte less than its frame
// declares, to exercise the frame-length-consistency check (spec §8 S5).
type underreadingPacket struct{}

func (p *underreadingPacket) Read(_ *protocol.Version, buf *wire.Buffer) error {
	_, err := buf.ReadByte()
	if err != nil {
		return err
	}
	_, err = buf.ReadByte()
	if err != nil {
		return err
	}
	_, err = buf.ReadByte()
	return err
}

func (p *underreadingPacket) Write(_ *protocol.Version, buf *wire.Buffer) error {
	buf.WriteRaw([]byte{0x01, 0x02, 0x03})
	return nil
}

func (p *underreadingPacket) Size(*protocol.Version) int64 { return 3 }
func (p *underreadingPacket) Ordinal() uint32              { return underreadingOrdinal }

var underreadingOrdinal = protocol.RegisterOrdinal()

// Handshake0x00 is a local stand-in type (never registered) used only to
// exercise WritePacket's "packet type not registered for this version"
// error path.
type Handshake0x00 struct{}

func (h *Handshake0x00) Read(*protocol.Version, *wire.Buffer) error  { return nil }
func (h *Handshake0x00) Write(*protocol.Version, *wire.Buffer) error { return nil }
func (h *Handshake0x00) Size(*protocol.Version) int64                { return protocol.SizeUnknown }
func (h *Handshake0x00) Ordinal() uint32                             { return handshake0x00Ordinal }

var handshake0x00Ordinal = protocol.RegisterOrdinal()
