// Package protocol defines the version identifier, the packet capability
// contract, and the startup-time ordinal counter that concrete packet types
// register against. It has no knowledge of transport or framing.
package protocol

// Version is an opaque handle into a closed, totally ordered set of named
// protocol versions. Comparison is by rank (registration order), never by
// parsing the numeric-looking name — two versions that differ only in a
// patch release still compare correctly because rank is assigned at
// package init, not derived from the string.
type Version struct {
	name string
	rank int
}

// String returns the version's display name, e.g. "1.16.2".
func (v *Version) String() string {
	if v == nil {
		return "<nil>"
	}
	return v.name
}

// AtLeast reports whether v is the same version as, or newer than, other.
func (v *Version) AtLeast(other *Version) bool {
	return v.rank >= other.rank
}

// Before reports whether v is strictly older than other.
func (v *Version) Before(other *Version) bool {
	return v.rank < other.rank
}

var registeredVersions []*Version

func newVersion(name string) *Version {
	v := &Version{name: name, rank: len(registeredVersions)}
	registeredVersions = append(registeredVersions, v)
	return v
}

// Well-known version anchors, registered in ascending protocol order. New
// versions must always be appended at the end: rank is positional, and
// reordering this list would silently change every AtLeast/Before result.
var (
	V1_13   = newVersion("1.13")
	V1_13_2 = newVersion("1.13.2")
	V1_14   = newVersion("1.14")
	V1_15   = newVersion("1.15")
	V1_16_2 = newVersion("1.16.2")
	V1_19   = newVersion("1.19")
)

// Versions returns every registered version in ascending order. Intended
// for test fixtures and PreparedPacket construction (spec §4.5), which
// target a set of versions at once.
func Versions() []*Version {
	out := make([]*Version, len(registeredVersions))
	copy(out, registeredVersions)
	return out
}
