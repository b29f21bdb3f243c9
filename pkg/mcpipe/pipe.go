// Package mcpipe implements the Minecraft-specialized framed packet pipe
// (spec §4.4): it wires pkg/registry and pkg/packets into pkg/framing,
// dispatching reads to registered packet constructors (or the pass-through
// carrier for unknown ids) and writes to either a prepared fast path or the
// generic size-known/size-unknown encoding path.
package mcpipe

import (
	"log/slog"

	"github.com/shipmc/gatecore/pkg/framing"
	"github.com/shipmc/gatecore/pkg/mcpipe/metrics"
	"github.com/shipmc/gatecore/pkg/packets"
	"github.com/shipmc/gatecore/pkg/protocol"
	"github.com/shipmc/gatecore/pkg/registry"
	"github.com/shipmc/gatecore/pkg/wire"
)

// Pipe is one connection's framed packet codec: one version, one registry,
// one fixed pair of read/write directions (spec §3's pipe state tuple).
type Pipe struct {
	cfg     Config
	framer  *framing.Pipe
	version *protocol.Version
	reg     *registry.PacketRegistry
	log     *slog.Logger
}

// NewPipe constructs a Pipe bound to version, serving reg, configured per
// cfg. A nil log discards everything (spec §3.1's ambient logging
// convention).
func NewPipe(cfg Config, version *protocol.Version, reg *registry.PacketRegistry, log *slog.Logger) *Pipe {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Pipe{
		cfg:     cfg,
		framer:  framing.NewPipe(cfg.MaxReadSize),
		version: version,
		reg:     reg,
		log:     log,
	}
}

// SetRegistry atomically replaces the active registry from the pipe's
// perspective (spec §4.4). Callers must not have a read or write in flight
// concurrently — the pipe is single-threaded per connection (spec §5).
func (p *Pipe) SetRegistry(reg *registry.PacketRegistry) {
	p.reg = reg
}

// SetVersion switches the protocol version the pipe dispatches field
// layouts against, e.g. after a handshake negotiates the client's version.
func (p *Pipe) SetVersion(version *protocol.Version) {
	p.version = version
}

// ReadFrame pulls one complete frame out of in (delegating frame-boundary
// detection to the generic framing.Pipe) and decodes it into a packet. It
// returns framing.ErrNeedMore unchanged when in doesn't yet hold a full
// frame, so callers can refill their transport buffer and retry.
func (p *Pipe) ReadFrame(in *wire.Buffer) (protocol.Packet, error) {
	frame, err := p.framer.TryReadFrame(in)
	if err != nil {
		return nil, err
	}
	return p.ReadPacket(frame)
}

// ReadPacket decodes one packet from frame, which holds exactly one frame's
// body (id VarInt + payload, length prefix already stripped). Unknown ids
// are not an error: they produce a SingleVersionPreparedPacket carrying the
// whole reconstituted frame verbatim, so the caller can forward it
// untouched (spec §4.4 step 3, §7).
func (p *Pipe) ReadPacket(frame *wire.Buffer) (protocol.Packet, error) {
	bodyLength := uint32(frame.GetReadableBytes())

	id, err := frame.ReadVarInt()
	if err != nil {
		return nil, err
	}
	idBytes := wire.VarIntBytes(id)

	readerReg := p.reg.ForDirection(p.cfg.ReaderDirection)
	pkt := readerReg.GetPacketByID(p.version, id)
	if pkt == nil {
		p.log.Debug("mcpipe: pass-through for unregistered packet id", "id", id, "version", p.version)
		metrics.PassThroughHits.Inc()
		pt, err := p.passThrough(bodyLength, id, idBytes, frame)
		if err != nil {
			metrics.DecodeErrors.WithLabelValues("pass_through").Inc()
			return nil, err
		}
		metrics.FramesDecoded.Inc()
		return pt, nil
	}

	before := frame.GetReadableBytes()
	if err := pkt.Read(p.version, frame); err != nil {
		metrics.DecodeErrors.WithLabelValues("packet_read").Inc()
		return nil, err
	}
	consumedPayload := before - frame.GetReadableBytes()
	expectedPayload := int(bodyLength) - idBytes
	if consumedPayload != expectedPayload {
		metrics.DecodeErrors.WithLabelValues("invalid_size").Inc()
		return nil, &InvalidPacketSizeError{
			Expected: bodyLength,
			Consumed: uint32(idBytes + consumedPayload),
		}
	}
	metrics.FramesDecoded.Inc()
	return pkt, nil
}

// passThrough reconstructs the whole original frame — VarInt(bodyLength),
// VarInt(id), then the remaining payload — into a fresh buffer and hands
// it to a SingleVersionPreparedPacket's Read so GetBytes() returns the
// original wire bytes exactly, length prefix included (spec §4.4 step 3,
// §8 S3). The fresh buffer is sized against frame's single-capacity hint,
// matching original_source's `new ByteBuffer(in->GetSingleCapacity())`.
func (p *Pipe) passThrough(bodyLength uint32, id uint32, idBytes int, frame *wire.Buffer) (protocol.Packet, error) {
	remaining := frame.Bytes()
	lenBytes := wire.VarIntBytes(bodyLength)
	need := lenBytes + idBytes + len(remaining)
	size := frame.GetSingleCapacity()
	if size < need {
		size = need
	}
	buf := wire.NewBuffer(size)
	buf.WriteVarInt(bodyLength)
	buf.WriteVarInt(id)
	buf.WriteRaw(remaining)

	if got := idBytes + len(remaining); got != int(bodyLength) {
		return nil, &InvalidPacketSizeError{Expected: bodyLength, Consumed: uint32(got)}
	}

	sp := packets.NewSingleVersionPreparedPacket(nil)
	if err := sp.Read(p.version, buf); err != nil {
		return nil, err
	}
	return sp, nil
}

// WritePacket encodes p for the pipe's writer direction/version and returns
// a View over the complete framed bytes (length VarInt + id VarInt +
// payload). Prepared and single-version fast paths return a Borrowed view
// over storage the packet itself owns; the generic path returns an Owned,
// freshly allocated buffer (spec §4.4, §5, §9).
func (p *Pipe) WritePacket(pkt protocol.Packet) (wire.View, error) {
	switch pkt.Ordinal() {
	case packets.PreparedOrdinal:
		pp, ok := pkt.(*packets.PreparedPacket)
		if !ok {
			return wire.View{}, errUnexpectedType("PreparedPacket", pkt)
		}
		b, err := pp.GetBytes(p.version)
		if err != nil {
			metrics.EncodeErrors.WithLabelValues("prepared").Inc()
			return wire.View{}, err
		}
		metrics.PreparedFastPathHits.WithLabelValues("prepared").Inc()
		metrics.FramesEncoded.Inc()
		return wire.BorrowedView(b), nil

	case packets.SingleVersionOrdinal:
		sp, ok := pkt.(*packets.SingleVersionPreparedPacket)
		if !ok {
			return wire.View{}, errUnexpectedType("SingleVersionPreparedPacket", pkt)
		}
		metrics.PreparedFastPathHits.WithLabelValues("single_version").Inc()
		metrics.FramesEncoded.Inc()
		return wire.BorrowedView(sp.GetBytes()), nil

	default:
		b, err := p.encodeFrame(p.version, pkt)
		if err != nil {
			metrics.EncodeErrors.WithLabelValues("generic").Inc()
			return wire.View{}, err
		}
		metrics.FramesEncoded.Inc()
		return wire.OwnedView(b), nil
	}
}

// Prepare serializes pkt once per target version into a PreparedPacket
// whose write-path bytes are the complete framed blob for each version,
// outside the hot path (spec §4.5).
func (p *Pipe) Prepare(versions []*protocol.Version, pkt protocol.Packet) (*packets.PreparedPacket, error) {
	return packets.BuildPrepared(versions, func(version *protocol.Version) ([]byte, error) {
		return p.encodeFrame(version, pkt)
	})
}

// encodeFrame is the generic write path shared by WritePacket's default
// branch and Prepare: look up the wire id, encode the payload either
// straight into a precisely-sized buffer (Size known) or into scratch
// first (Size unknown), then hand the id+payload body to framing.WriteFramed.
func (p *Pipe) encodeFrame(version *protocol.Version, pkt protocol.Packet) ([]byte, error) {
	writerReg := p.reg.ForDirection(p.cfg.WriterDirection)
	id, ok := writerReg.GetIDByPacket(version, pkt)
	if !ok {
		return nil, errUnregisteredForWrite(version, pkt)
	}
	idBytes := wire.VarIntBytes(id)

	if size := pkt.Size(version); size != protocol.SizeUnknown {
		buf := wire.NewBuffer(idBytes + int(size))
		buf.WriteVarInt(id)
		before := buf.GetReadableBytes()
		if err := pkt.Write(version, buf); err != nil {
			return nil, err
		}
		written := buf.GetReadableBytes() - before
		if int64(written) != size {
			return nil, &EncodeOverflowError{Declared: uint32(size), Written: uint32(written)}
		}
		return framing.WriteFramed(buf.Bytes()), nil
	}

	scratch := wire.NewBuffer(int(p.cfg.LongPacketBufferCapacity))
	if err := pkt.Write(version, scratch); err != nil {
		return nil, err
	}
	body := wire.NewBuffer(idBytes + scratch.GetReadableBytes())
	body.WriteVarInt(id)
	body.WriteRaw(scratch.Bytes())
	return framing.WriteFramed(body.Bytes()), nil
}
