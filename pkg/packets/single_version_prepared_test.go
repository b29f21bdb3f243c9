package packets

import (
	"testing"

	"github.com/shipmc/gatecore/pkg/protocol"
	"github.com/shipmc/gatecore/pkg/wire"
	"github.com/stretchr/testify/require"
)

func TestPackets_SingleVersionPreparedPacket_ReadCapturesWholeFrame(t *testing.T) {
	t.Parallel()

	frame := wire.NewBuffer(6)
	frame.WriteRaw([]byte{0x05, 0xFE, 0x01, 0x02, 0x03, 0x04})

	p := &SingleVersionPreparedPacket{}
	require.NoError(t, p.Read(protocol.V1_16_2, frame))
	require.Equal(t, []byte{0x05, 0xFE, 0x01, 0x02, 0x03, 0x04}, p.GetBytes())
	require.Zero(t, frame.GetReadableBytes())
}

func TestPackets_SingleVersionPreparedPacket_OrdinalIsReservedAndDistinctFromPrepared(t *testing.T) {
	t.Parallel()

	p := NewSingleVersionPreparedPacket(nil)
	require.Equal(t, SingleVersionOrdinal, p.Ordinal())
	require.NotEqual(t, PreparedOrdinal, SingleVersionOrdinal)
}
