package protocol

import "github.com/shipmc/gatecore/pkg/wire"

// Packet is the capability set every concrete packet type implements: the
// closed sum described in spec §9, discriminated at runtime by Ordinal and
// at registration time by (direction, version, numeric id).
type Packet interface {
	// Read decodes the packet's payload (not the frame length or the id
	// VarInt, both already consumed by the caller) from buf for the given
	// version.
	Read(version *Version, buf *wire.Buffer) error

	// Write encodes the packet's payload for the given version.
	Write(version *Version, buf *wire.Buffer) error

	// Size returns the exact number of bytes Write will emit for version,
	// or SizeUnknown if that isn't cheaply computable without actually
	// serializing.
	Size(version *Version) int64

	// Ordinal returns the packet type's process-wide, init()-assigned
	// discriminator. Unrelated to the packet's on-wire id, which is
	// version- and direction-specific (spec §3).
	Ordinal() uint32
}

// Constructor builds a fresh, zero-valued instance of one packet type,
// ready to have Read called on it. DirectionRegistry stores one of these
// per (version, id).
type Constructor func() Packet
