package mcpipe

import (
	"fmt"

	"github.com/shipmc/gatecore/pkg/protocol"
)

// InvalidPacketSizeError is returned when a packet's Read did not consume
// exactly the frame's declared body length. The stream is considered
// poisoned from this point on (spec §5, §7).
type InvalidPacketSizeError struct {
	Expected uint32
	Consumed uint32
}

func (e *InvalidPacketSizeError) Error() string {
	return fmt.Sprintf("mcpipe: packet read consumed %d bytes, frame declared %d", e.Consumed, e.Expected)
}

// EncodeOverflowError is returned when a packet's Write emitted a different
// number of bytes (more or fewer) than its own Size(version) promised.
// Indicates a packet-type bug, never
// reachable from external input.
type EncodeOverflowError struct {
	Declared uint32
	Written  uint32
}

func (e *EncodeOverflowError) Error() string {
	return fmt.Sprintf("mcpipe: packet declared size %d but write emitted %d", e.Declared, e.Written)
}

func errUnexpectedType(want string, pkt protocol.Packet) error {
	return fmt.Errorf("mcpipe: ordinal reserved for %s but packet is %T", want, pkt)
}

func errUnregisteredForWrite(version *protocol.Version, pkt protocol.Packet) error {
	return fmt.Errorf("mcpipe: no id registered for %T at version %s", pkt, version)
}
