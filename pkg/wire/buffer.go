// Package wire implements the cursor-based binary reader/writer the rest of
// gatecore builds on: VarInt, length-prefixed strings, and big-endian
// primitives over a single growable byte slice with independent read and
// write cursors.
package wire

import (
	"unicode/utf8"
)

// DefaultMaxStringChars is the character cap ReadString enforces when the
// caller doesn't supply one, matching the vanilla protocol's default.
const DefaultMaxStringChars = 32767

// Buffer is a mutable byte container with independent read and write
// cursors over a backing slice. The invariant read <= write <= cap(data)
// holds across every operation.
type Buffer struct {
	data  []byte
	read  int
	write int
}

// NewBuffer allocates a Buffer with the given capacity hint pre-sized, ready
// for writing. This is the "single capacity" constructor the pipe uses to
// pre-size pass-through buffers (spec §4.4).
func NewBuffer(capacityHint int) *Buffer {
	if capacityHint < 0 {
		capacityHint = 0
	}
	return &Buffer{data: make([]byte, capacityHint)}
}

// WrapBuffer returns a Buffer whose write cursor is already at the end of
// data, ready for reading back what's in data verbatim.
func WrapBuffer(data []byte) *Buffer {
	return &Buffer{data: data, write: len(data)}
}

// GetReadableBytes returns the number of bytes between the read and write
// cursors.
func (b *Buffer) GetReadableBytes() int {
	return b.write - b.read
}

// GetSingleCapacity returns the buffer's current backing capacity, used by
// callers that need to size a fresh buffer the same way.
func (b *Buffer) GetSingleCapacity() int {
	return cap(b.data)
}

// Bytes returns the unread portion of the buffer. The caller must not
// mutate past GetReadableBytes() without re-deriving this slice.
func (b *Buffer) Bytes() []byte {
	return b.data[b.read:b.write]
}

func (b *Buffer) ensureWritable(n int) {
	need := b.write + n
	if need <= cap(b.data) {
		b.data = b.data[:max(len(b.data), need)]
		return
	}
	grown := make([]byte, need, growCap(cap(b.data), need))
	copy(grown, b.data[:b.write])
	b.data = grown
}

func growCap(have, need int) int {
	if have == 0 {
		have = 64
	}
	for have < need {
		have *= 2
	}
	return have
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ReadByte reads a single unsigned byte and advances the read cursor.
func (b *Buffer) ReadByte() (byte, error) {
	if b.read+1 > b.write {
		return 0, ErrShortRead
	}
	v := b.data[b.read]
	b.read++
	return v, nil
}

// WriteByte writes a single byte.
func (b *Buffer) WriteByte(v byte) {
	b.ensureWritable(1)
	b.data[b.write] = v
	b.write++
}

// ReadBoolean reads a byte and interprets it as a boolean: 0 is false, any
// other value is true.
func (b *Buffer) ReadBoolean() (bool, error) {
	v, err := b.ReadByte()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// WriteBoolean writes a boolean as a single 0/1 byte.
func (b *Buffer) WriteBoolean(v bool) {
	if v {
		b.WriteByte(1)
	} else {
		b.WriteByte(0)
	}
}

// ReadUint16 reads a big-endian u16.
func (b *Buffer) ReadUint16() (uint16, error) {
	if b.read+2 > b.write {
		return 0, ErrShortRead
	}
	v := uint16(b.data[b.read])<<8 | uint16(b.data[b.read+1])
	b.read += 2
	return v, nil
}

// WriteUint16 writes a big-endian u16.
func (b *Buffer) WriteUint16(v uint16) {
	b.ensureWritable(2)
	b.data[b.write] = byte(v >> 8)
	b.data[b.write+1] = byte(v)
	b.write += 2
}

// ReadInt reads a big-endian signed 32-bit integer.
func (b *Buffer) ReadInt() (int32, error) {
	v, err := b.ReadUint32()
	return int32(v), err
}

// WriteInt writes a big-endian signed 32-bit integer.
func (b *Buffer) WriteInt(v int32) {
	b.WriteUint32(uint32(v))
}

// ReadUint32 reads a big-endian u32.
func (b *Buffer) ReadUint32() (uint32, error) {
	if b.read+4 > b.write {
		return 0, ErrShortRead
	}
	d := b.data[b.read : b.read+4]
	v := uint32(d[0])<<24 | uint32(d[1])<<16 | uint32(d[2])<<8 | uint32(d[3])
	b.read += 4
	return v, nil
}

// WriteUint32 writes a big-endian u32.
func (b *Buffer) WriteUint32(v uint32) {
	b.ensureWritable(4)
	d := b.data[b.write : b.write+4]
	d[0] = byte(v >> 24)
	d[1] = byte(v >> 16)
	d[2] = byte(v >> 8)
	d[3] = byte(v)
	b.write += 4
}

// ReadLong reads a big-endian signed 64-bit integer.
func (b *Buffer) ReadLong() (int64, error) {
	v, err := b.ReadUint64()
	return int64(v), err
}

// WriteLong writes a big-endian signed 64-bit integer.
func (b *Buffer) WriteLong(v int64) {
	b.WriteUint64(uint64(v))
}

// ReadUint64 reads a big-endian u64.
func (b *Buffer) ReadUint64() (uint64, error) {
	if b.read+8 > b.write {
		return 0, ErrShortRead
	}
	d := b.data[b.read : b.read+8]
	v := uint64(d[0])<<56 | uint64(d[1])<<48 | uint64(d[2])<<40 | uint64(d[3])<<32 |
		uint64(d[4])<<24 | uint64(d[5])<<16 | uint64(d[6])<<8 | uint64(d[7])
	b.read += 8
	return v, nil
}

// WriteUint64 writes a big-endian u64.
func (b *Buffer) WriteUint64(v uint64) {
	b.ensureWritable(8)
	d := b.data[b.write : b.write+8]
	d[0] = byte(v >> 56)
	d[1] = byte(v >> 48)
	d[2] = byte(v >> 40)
	d[3] = byte(v >> 32)
	d[4] = byte(v >> 24)
	d[5] = byte(v >> 16)
	d[6] = byte(v >> 8)
	d[7] = byte(v)
	b.write += 8
}

// ReadString reads a VarInt byte-length prefix followed by that many UTF-8
// bytes, then checks the decoded rune count against maxChars.
func (b *Buffer) ReadString(maxChars int) (string, error) {
	if maxChars <= 0 {
		maxChars = DefaultMaxStringChars
	}
	n, err := b.ReadVarInt()
	if err != nil {
		return "", err
	}
	if b.read+int(n) > b.write {
		return "", ErrShortRead
	}
	raw := b.data[b.read : b.read+int(n)]
	b.read += int(n)
	if !utf8.Valid(raw) {
		return "", ErrInvalidUTF8
	}
	s := string(raw)
	if chars := utf8.RuneCountInString(s); chars > maxChars {
		return "", &StringTooLongError{Chars: chars, Max: maxChars}
	}
	return s, nil
}

// WriteString writes a VarInt byte-length prefix followed by s's UTF-8
// bytes.
func (b *Buffer) WriteString(s string) {
	b.WriteVarInt(uint32(len(s)))
	b.ensureWritable(len(s))
	copy(b.data[b.write:], s)
	b.write += len(s)
}

// WriteBytes copies n readable bytes from src into b, advancing both
// cursors.
func (b *Buffer) WriteBytes(src *Buffer, n int) error {
	if src.read+n > src.write {
		return ErrShortRead
	}
	b.ensureWritable(n)
	copy(b.data[b.write:], src.data[src.read:src.read+n])
	b.write += n
	src.read += n
	return nil
}

// WriteRaw copies the given bytes verbatim into b, advancing the write
// cursor only.
func (b *Buffer) WriteRaw(p []byte) {
	b.ensureWritable(len(p))
	copy(b.data[b.write:], p)
	b.write += len(p)
}
