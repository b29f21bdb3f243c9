package protocol

import "sync/atomic"

// SizeUnknown is the explicit "not cheaply computable" sentinel for
// Packet.Size, modeled as its own typed constant rather than overloading
// uint32's maximum value (spec §9's second open question).
const SizeUnknown int64 = -1

// ordinalCounter is process-wide state, mutated only during package init as
// concrete packet types call RegisterOrdinal(). No connection-serving code
// ever touches it, so the hot path needs no synchronization around
// ordinals themselves — the atomic is defensive against registration
// happening from more than one init() across packages, not against runtime
// contention.
var ordinalCounter atomic.Uint32

// RegisterOrdinal hands out the next ordinal in a monotonic, process-wide
// sequence. Each concrete packet type calls this exactly once, typically to
// initialize a package-level ordinal constant.
func RegisterOrdinal() uint32 {
	return ordinalCounter.Add(1) - 1
}
