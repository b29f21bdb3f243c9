package packets

import (
	"testing"

	"github.com/shipmc/gatecore/pkg/protocol"
	"github.com/shipmc/gatecore/pkg/wire"
	"github.com/stretchr/testify/require"
)

func TestPackets_KeepAlive_SizeIsAlwaysEight(t *testing.T) {
	t.Parallel()

	k := &KeepAlive{ID: 0x0102030405060708}
	require.EqualValues(t, 8, k.Size(protocol.V1_19))
}

func TestPackets_KeepAlive_RoundTrip(t *testing.T) {
	t.Parallel()

	k := &KeepAlive{ID: 0x0102030405060708}
	buf := wire.NewBuffer(8)
	require.NoError(t, k.Write(protocol.V1_19, buf))
	require.EqualValues(t, k.Size(protocol.V1_19), buf.GetReadableBytes())

	got := &KeepAlive{}
	require.NoError(t, got.Read(protocol.V1_19, buf))
	require.Equal(t, k.ID, got.ID)
	require.Zero(t, buf.GetReadableBytes())
}

func TestPackets_KeepAlive_MatchesSpecWireExample(t *testing.T) {
	t.Parallel()

	// spec §8 S2: KeepAlive carrying i64 0x0102030405060708 at id 0x21
	// encodes as 09 21 01 02 03 04 05 06 07 08 (length, id, payload).
	k := &KeepAlive{ID: 0x0102030405060708}
	buf := wire.NewBuffer(8)
	require.NoError(t, k.Write(protocol.V1_19, buf))

	frame := wire.NewBuffer(16)
	frame.WriteVarInt(uint32(k.Size(protocol.V1_19)) + uint32(wire.VarIntBytes(0x21)))
	frame.WriteVarInt(0x21)
	require.NoError(t, frame.WriteBytes(buf, buf.GetReadableBytes()))

	want := []byte{0x09, 0x21, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	require.Equal(t, want, frame.Bytes())
}
