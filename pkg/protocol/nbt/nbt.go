// Package nbt is the minimal companion codec spec.md §9 defers: a black-box
// binary tree format embedded in a handful of payloads (JoinGame's registry
// container chief among them). It implements only the tag arms those
// payloads need — Compound, List, String, Int, Long, Byte — not the full
// NBT type zoo (arrays and the unnamed-root variant are out of scope for
// this companion).
package nbt

import (
	"fmt"

	"github.com/shipmc/gatecore/pkg/wire"
)

// TagType discriminates the arms of the Tag sum.
type TagType byte

const (
	TagEnd TagType = iota
	TagByte
	TagInt
	TagLong
	TagString
	TagList
	TagCompound
)

// Tag is a node in an NBT tree. Exactly one of the typed fields is
// meaningful, selected by Type.
type Tag struct {
	Type     TagType
	Byte     int8
	Int      int32
	Long     int64
	Str      string
	List     []Tag // homogeneous; all entries share ListElem
	ListElem TagType
	Fields   []NamedTag // Compound only, order-preserving
}

// NamedTag pairs a Compound child with its key.
type NamedTag struct {
	Name string
	Tag  Tag
}

// Get returns the named child of a Compound tag.
func (t Tag) Get(name string) (Tag, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f.Tag, true
		}
	}
	return Tag{}, false
}

// Compound builds a Compound tag from named children.
func Compound(fields ...NamedTag) Tag {
	return Tag{Type: TagCompound, Fields: fields}
}

// Field is a convenience constructor for a NamedTag.
func Field(name string, tag Tag) NamedTag {
	return NamedTag{Name: name, Tag: tag}
}

// String builds a String tag.
func String(s string) Tag { return Tag{Type: TagString, Str: s} }

// Int builds an Int tag.
func Int(v int32) Tag { return Tag{Type: TagInt, Int: v} }

// Long builds a Long tag.
func Long(v int64) Tag { return Tag{Type: TagLong, Long: v} }

// ByteTag builds a Byte tag.
func ByteTag(v int8) Tag { return Tag{Type: TagByte, Byte: v} }

// ListOf builds a List tag of the given element type.
func ListOf(elem TagType, items ...Tag) Tag {
	return Tag{Type: TagList, ListElem: elem, List: items}
}

// ReadNBT reads one fully-typed tag (type byte, name, payload) from buf,
// respecting buf's cursor like any other wire primitive.
func ReadNBT(buf *wire.Buffer) (Tag, error) {
	typ, err := buf.ReadByte()
	if err != nil {
		return Tag{}, err
	}
	if _, err := buf.ReadString(0); err != nil { // root/child name, discarded by value
		return Tag{}, err
	}
	return readPayload(buf, TagType(typ))
}

func readPayload(buf *wire.Buffer, typ TagType) (Tag, error) {
	switch typ {
	case TagByte:
		b, err := buf.ReadByte()
		return Tag{Type: TagByte, Byte: int8(b)}, err
	case TagInt:
		v, err := buf.ReadInt()
		return Tag{Type: TagInt, Int: v}, err
	case TagLong:
		v, err := buf.ReadLong()
		return Tag{Type: TagLong, Long: v}, err
	case TagString:
		s, err := buf.ReadString(0)
		return Tag{Type: TagString, Str: s}, err
	case TagList:
		elemByte, err := buf.ReadByte()
		if err != nil {
			return Tag{}, err
		}
		count, err := buf.ReadInt()
		if err != nil {
			return Tag{}, err
		}
		elem := TagType(elemByte)
		var items []Tag
		if count > 0 {
			items = make([]Tag, 0, count)
		}
		for i := int32(0); i < count; i++ {
			item, err := readPayload(buf, elem)
			if err != nil {
				return Tag{}, err
			}
			items = append(items, item)
		}
		return Tag{Type: TagList, ListElem: elem, List: items}, nil
	case TagCompound:
		var fields []NamedTag
		for {
			childTypeByte, err := buf.ReadByte()
			if err != nil {
				return Tag{}, err
			}
			if TagType(childTypeByte) == TagEnd {
				break
			}
			name, err := buf.ReadString(0)
			if err != nil {
				return Tag{}, err
			}
			child, err := readPayload(buf, TagType(childTypeByte))
			if err != nil {
				return Tag{}, err
			}
			fields = append(fields, NamedTag{Name: name, Tag: child})
		}
		return Tag{Type: TagCompound, Fields: fields}, nil
	default:
		return Tag{}, fmt.Errorf("nbt: unsupported tag type %d", typ)
	}
}

// WriteNBT writes tag as a fully-typed, unnamed-root entry (empty root
// name), matching the layout JoinGame's registry container uses.
func WriteNBT(buf *wire.Buffer, tag Tag) error {
	buf.WriteByte(byte(tag.Type))
	buf.WriteString("")
	return writePayload(buf, tag)
}

func writePayload(buf *wire.Buffer, tag Tag) error {
	switch tag.Type {
	case TagByte:
		buf.WriteByte(byte(tag.Byte))
	case TagInt:
		buf.WriteInt(tag.Int)
	case TagLong:
		buf.WriteLong(tag.Long)
	case TagString:
		buf.WriteString(tag.Str)
	case TagList:
		buf.WriteByte(byte(tag.ListElem))
		buf.WriteInt(int32(len(tag.List)))
		for _, item := range tag.List {
			if err := writePayload(buf, item); err != nil {
				return err
			}
		}
	case TagCompound:
		for _, f := range tag.Fields {
			buf.WriteByte(byte(f.Tag.Type))
			buf.WriteString(f.Name)
			if err := writePayload(buf, f.Tag); err != nil {
				return err
			}
		}
		buf.WriteByte(byte(TagEnd))
	default:
		return fmt.Errorf("nbt: unsupported tag type %d", tag.Type)
	}
	return nil
}
