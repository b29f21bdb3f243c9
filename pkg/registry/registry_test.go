package registry

import (
	"testing"

	"github.com/shipmc/gatecore/pkg/protocol"
	"github.com/shipmc/gatecore/pkg/wire"
	"github.com/stretchr/testify/require"
)

type stubPacket struct {
	ordinal uint32
}

func (s *stubPacket) Read(*protocol.Version, *wire.Buffer) error  { return nil }
func (s *stubPacket) Write(*protocol.Version, *wire.Buffer) error { return nil }
func (s *stubPacket) Size(*protocol.Version) int64                { return 0 }
func (s *stubPacket) Ordinal() uint32                             { return s.ordinal }

func TestRegistry_DirectionRegistry_RegisterAndLookupRoundTrip(t *testing.T) {
	t.Parallel()

	r := NewDirectionRegistry(Clientbound)
	ctor := func() protocol.Packet { return &stubPacket{ordinal: 7} }
	require.NoError(t, r.Register(protocol.V1_16_2, 0x21, ctor))

	got := r.GetPacketByID(protocol.V1_16_2, 0x21)
	require.NotNil(t, got)
	require.Equal(t, uint32(7), got.Ordinal())

	id, ok := r.GetIDByPacket(protocol.V1_16_2, got)
	require.True(t, ok)
	require.Equal(t, uint32(0x21), id)
}

func TestRegistry_DirectionRegistry_UnknownIDReturnsNil(t *testing.T) {
	t.Parallel()

	r := NewDirectionRegistry(Serverbound)
	require.Nil(t, r.GetPacketByID(protocol.V1_16_2, 0xFE))
}

func TestRegistry_DirectionRegistry_IDsAreVersionSpecific(t *testing.T) {
	t.Parallel()

	r := NewDirectionRegistry(Clientbound)
	ctor := func() protocol.Packet { return &stubPacket{ordinal: 1} }
	require.NoError(t, r.Register(protocol.V1_15, 0x01, ctor))
	require.NoError(t, r.Register(protocol.V1_16_2, 0x02, ctor))

	require.NotNil(t, r.GetPacketByID(protocol.V1_15, 0x01))
	require.Nil(t, r.GetPacketByID(protocol.V1_16_2, 0x01))
	require.NotNil(t, r.GetPacketByID(protocol.V1_16_2, 0x02))
}

func TestRegistry_DirectionRegistry_DuplicateIDConflicts(t *testing.T) {
	t.Parallel()

	r := NewDirectionRegistry(Clientbound)
	ctorA := func() protocol.Packet { return &stubPacket{ordinal: 1} }
	ctorB := func() protocol.Packet { return &stubPacket{ordinal: 2} }
	require.NoError(t, r.Register(protocol.V1_16_2, 0x21, ctorA))

	err := r.Register(protocol.V1_16_2, 0x21, ctorB)
	require.Error(t, err)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "id", conflict.Kind)
}

func TestRegistry_DirectionRegistry_DuplicateTypeConflicts(t *testing.T) {
	t.Parallel()

	r := NewDirectionRegistry(Clientbound)
	ctor := func() protocol.Packet { return &stubPacket{ordinal: 9} }
	require.NoError(t, r.Register(protocol.V1_16_2, 0x01, ctor))

	err := r.Register(protocol.V1_16_2, 0x02, ctor)
	require.Error(t, err)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "type", conflict.Kind)
}

func TestRegistry_PacketRegistry_ForDirection(t *testing.T) {
	t.Parallel()

	sb := NewDirectionRegistry(Serverbound)
	cb := NewDirectionRegistry(Clientbound)
	pr := NewPacketRegistry(sb, cb)

	require.Same(t, sb, pr.ForDirection(Serverbound))
	require.Same(t, cb, pr.ForDirection(Clientbound))
}
