package registry

import (
	"fmt"

	"github.com/shipmc/gatecore/pkg/protocol"
)

// ConflictError is raised at startup registration time when a (version, id)
// or (version, ordinal) pair is registered twice. Never returned once the
// registry is serving connections.
type ConflictError struct {
	Version *protocol.Version
	ID      uint32
	Ordinal uint32
	Kind    string // "id" or "type"
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("registry: duplicate (%s, %s=%d) registration for %s", e.Version, e.Kind, e.idOrOrdinal(), e.describeWhat())
}

func (e *ConflictError) idOrOrdinal() uint32 {
	if e.Kind == "id" {
		return e.ID
	}
	return e.Ordinal
}

func (e *ConflictError) describeWhat() string {
	return e.Version.String()
}

// entryKey and typeKey key off the *protocol.Version pointer directly:
// versions are process-wide singletons (spec §3), so pointer identity is a
// valid, allocation-free map key and we avoid reaching into protocol's
// unexported rank field from another package.
type entryKey struct {
	version *protocol.Version
	id      uint32
}

type typeKey struct {
	version *protocol.Version
	ordinal uint32
}

// DirectionRegistry maps (version, numeric id) to a packet constructor, and
// the inverse (version, packet ordinal) to numeric id, for one fixed
// direction. Populated at startup, then treated as immutable (spec §4.2).
type DirectionRegistry struct {
	direction Direction
	byID      map[entryKey]protocol.Constructor
	idByType  map[typeKey]uint32
}

// NewDirectionRegistry creates an empty registry for the given direction.
func NewDirectionRegistry(direction Direction) *DirectionRegistry {
	return &DirectionRegistry{
		direction: direction,
		byID:      make(map[entryKey]protocol.Constructor),
		idByType:  make(map[typeKey]uint32),
	}
}

// Direction returns the fixed direction this registry serves.
func (r *DirectionRegistry) Direction() Direction { return r.direction }

// Register binds (version, id) to constructor, and records the inverse
// mapping from (version, the constructed packet's ordinal) back to id. It
// rejects duplicate (version, id) or duplicate (version, ordinal)
// registrations with a ConflictError, per spec §4.2's registration
// protocol.
func (r *DirectionRegistry) Register(version *protocol.Version, id uint32, ctor protocol.Constructor) error {
	ek := entryKey{version: version, id: id}
	if _, exists := r.byID[ek]; exists {
		return &ConflictError{Version: version, ID: id, Kind: "id"}
	}

	ordinal := ctor().Ordinal()
	tk := typeKey{version: version, ordinal: ordinal}
	if _, exists := r.idByType[tk]; exists {
		return &ConflictError{Version: version, Ordinal: ordinal, Kind: "type"}
	}

	r.byID[ek] = ctor
	r.idByType[tk] = id
	return nil
}

// GetPacketByID returns a freshly constructed packet instance registered
// for (version, id), or nil if unknown. A nil return is not an error — spec
// §7 treats unknown ids as the pass-through path's trigger, not a failure.
func (r *DirectionRegistry) GetPacketByID(version *protocol.Version, id uint32) protocol.Packet {
	ctor, ok := r.byID[entryKey{version: version, id: id}]
	if !ok {
		return nil
	}
	return ctor()
}

// GetIDByPacket returns the numeric id registered for packet's type at
// version. Callers must only pass packets whose type was registered for
// this (direction, version) — that's the write path's precondition (spec
// §4.2); ok is false if it wasn't.
func (r *DirectionRegistry) GetIDByPacket(version *protocol.Version, packet protocol.Packet) (uint32, bool) {
	id, ok := r.idByType[typeKey{version: version, ordinal: packet.Ordinal()}]
	return id, ok
}
