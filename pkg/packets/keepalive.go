package packets

import (
	"github.com/shipmc/gatecore/pkg/protocol"
	"github.com/shipmc/gatecore/pkg/wire"
)

// KeepAliveOrdinal is KeepAlive's process-wide discriminator.
var KeepAliveOrdinal = protocol.RegisterOrdinal()

// KeepAlive is the clientbound/serverbound keep-alive packet: a single i64
// echoed back by the client. It has a fixed, version-independent 8-byte
// payload, so Size is always known — the spec's S2 scenario exercises this
// exact packet.
type KeepAlive struct {
	ID int64
}

func (k *KeepAlive) Read(_ *protocol.Version, buf *wire.Buffer) error {
	v, err := buf.ReadLong()
	if err != nil {
		return err
	}
	k.ID = v
	return nil
}

func (k *KeepAlive) Write(_ *protocol.Version, buf *wire.Buffer) error {
	buf.WriteLong(k.ID)
	return nil
}

func (k *KeepAlive) Size(*protocol.Version) int64 { return 8 }

func (k *KeepAlive) Ordinal() uint32 { return KeepAliveOrdinal }
