package wire

// View is a byte view that may or may not own its backing array. The
// generic write path produces an Owned view (the caller may retain, pool,
// or mutate it freely); the two prepared fast paths produce a Borrowed view
// backed by storage the originating packet still owns, so callers must
// treat it as read-only and not outlive the packet (spec §5, §9).
type View struct {
	bytes []byte
	owned bool
}

// OwnedView wraps a freshly allocated buffer the caller fully owns.
func OwnedView(b []byte) View {
	return View{bytes: b, owned: true}
}

// BorrowedView wraps bytes owned by someone else (a PreparedPacket or
// SingleVersionPreparedPacket's internal storage). The caller must not
// retain it past the lifetime of whatever produced it, and must not mutate
// it in place.
func BorrowedView(b []byte) View {
	return View{bytes: b, owned: false}
}

// Bytes returns the underlying bytes regardless of ownership.
func (v View) Bytes() []byte { return v.bytes }

// Owned reports whether the caller may retain/pool/mutate this view's
// backing array.
func (v View) Owned() bool { return v.owned }
