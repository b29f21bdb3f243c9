package packets

import (
	"fmt"

	"github.com/shipmc/gatecore/pkg/protocol"
	"github.com/shipmc/gatecore/pkg/registry"
)

// registration is one (version, id, constructor) entry from spec §4.2's
// registration protocol.
type registration struct {
	version *protocol.Version
	id      uint32
	ctor    protocol.Constructor
}

// clientboundRegistrations lists the built-in packet set's ids across the
// versions this repo ships fixtures for. KeepAlive's and JoinGame's ids
// move around the way real packet ids do release to release (KeepAlive's
// 1.19 id, 0x21, matches spec §8's S2 scenario) — the exact
// numbers here are illustrative, not a claim about any particular vanilla
// release.
var clientboundRegistrations = []registration{
	{protocol.V1_13, 0x25, func() protocol.Packet { return &JoinGame{} }},
	{protocol.V1_13_2, 0x25, func() protocol.Packet { return &JoinGame{} }},
	{protocol.V1_14, 0x25, func() protocol.Packet { return &JoinGame{} }},
	{protocol.V1_15, 0x26, func() protocol.Packet { return &JoinGame{} }},
	{protocol.V1_16_2, 0x24, func() protocol.Packet { return &JoinGame{} }},
	{protocol.V1_19, 0x23, func() protocol.Packet { return &JoinGame{} }},

	{protocol.V1_13, 0x1F, func() protocol.Packet { return &KeepAlive{} }},
	{protocol.V1_13_2, 0x1F, func() protocol.Packet { return &KeepAlive{} }},
	{protocol.V1_14, 0x20, func() protocol.Packet { return &KeepAlive{} }},
	{protocol.V1_15, 0x21, func() protocol.Packet { return &KeepAlive{} }},
	{protocol.V1_16_2, 0x1F, func() protocol.Packet { return &KeepAlive{} }},
	{protocol.V1_19, 0x21, func() protocol.Packet { return &KeepAlive{} }},
}

var serverboundRegistrations = []registration{
	{protocol.V1_13, 0x00, func() protocol.Packet { return &Handshake{} }},
	{protocol.V1_13_2, 0x00, func() protocol.Packet { return &Handshake{} }},
	{protocol.V1_14, 0x00, func() protocol.Packet { return &Handshake{} }},
	{protocol.V1_15, 0x00, func() protocol.Packet { return &Handshake{} }},
	{protocol.V1_16_2, 0x00, func() protocol.Packet { return &Handshake{} }},
	{protocol.V1_19, 0x00, func() protocol.Packet { return &Handshake{} }},

	{protocol.V1_13, 0x0E, func() protocol.Packet { return &KeepAlive{} }},
	{protocol.V1_13_2, 0x0E, func() protocol.Packet { return &KeepAlive{} }},
	{protocol.V1_14, 0x0F, func() protocol.Packet { return &KeepAlive{} }},
	{protocol.V1_15, 0x0F, func() protocol.Packet { return &KeepAlive{} }},
	{protocol.V1_16_2, 0x10, func() protocol.Packet { return &KeepAlive{} }},
	{protocol.V1_19, 0x11, func() protocol.Packet { return &KeepAlive{} }},
}

// NewBuiltinRegistry builds the PacketRegistry for the built-in packet set,
// applying spec §4.2's registration protocol: rejecting any duplicate
// (version, id) or (version, type) pair with a RegistryConflict, fatal to
// process init.
func NewBuiltinRegistry() (*registry.PacketRegistry, error) {
	cb := registry.NewDirectionRegistry(registry.Clientbound)
	for _, reg := range clientboundRegistrations {
		if err := cb.Register(reg.version, reg.id, reg.ctor); err != nil {
			return nil, fmt.Errorf("packets: registering built-in clientbound set: %w", err)
		}
	}

	sb := registry.NewDirectionRegistry(registry.Serverbound)
	for _, reg := range serverboundRegistrations {
		if err := sb.Register(reg.version, reg.id, reg.ctor); err != nil {
			return nil, fmt.Errorf("packets: registering built-in serverbound set: %w", err)
		}
	}

	return registry.NewPacketRegistry(sb, cb), nil
}
