package mcpipe

import "github.com/shipmc/gatecore/pkg/registry"

// DefaultMaxReadSize is the default cap on a frame's declared body length,
// on the order of 2^21 bytes per spec §6.
const DefaultMaxReadSize = 1 << 21

// DefaultLongPacketBufferCapacity sizes the scratch buffer used by the
// write path's size-UNKNOWN branch (spec §4.4).
const DefaultLongPacketBufferCapacity = 1 << 16

// Config configures a Pipe: which direction it reads and writes, the
// frame-size ceiling, and the scratch size for size-UNKNOWN writes.
type Config struct {
	MaxReadSize              uint32
	ReaderDirection          registry.Direction
	WriterDirection          registry.Direction
	LongPacketBufferCapacity uint32
}

// DefaultConfig returns a Config for a server-facing pipe: it reads
// serverbound packets and writes clientbound ones, matching the common
// "server's view of a connection" setup. Proxies wanting the opposite view
// construct a Config directly.
func DefaultConfig() Config {
	return Config{
		MaxReadSize:              DefaultMaxReadSize,
		ReaderDirection:          registry.Serverbound,
		WriterDirection:          registry.Clientbound,
		LongPacketBufferCapacity: DefaultLongPacketBufferCapacity,
	}
}
