package packets

import (
	"github.com/shipmc/gatecore/pkg/protocol"
	"github.com/shipmc/gatecore/pkg/protocol/nbt"
	"github.com/shipmc/gatecore/pkg/wire"
)

// JoinGameOrdinal is JoinGame's process-wide discriminator.
var JoinGameOrdinal = protocol.RegisterOrdinal()

// Gamemode mirrors the vanilla gamemode byte.
type Gamemode byte

const (
	GamemodeSurvival  Gamemode = 0
	GamemodeCreative  Gamemode = 1
	GamemodeAdventure Gamemode = 2
	GamemodeSpectator Gamemode = 3
)

// Difficulty mirrors the vanilla difficulty byte; only meaningful before
// 1.14, where it moved into the per-world NBT registry.
type Difficulty byte

const (
	DifficultyPeaceful Difficulty = 0
	DifficultyEasy     Difficulty = 1
	DifficultyNormal   Difficulty = 2
	DifficultyHard     Difficulty = 3
)

// Dimension is a minimal stand-in for the vanilla dimension type: enough to
// round-trip through both the pre-1.16.2 legacy-id encoding and the
// post-1.16.2 NBT registry encoding.
type Dimension struct {
	Key      string
	LegacyID int32
}

func dimensionFromLegacyID(id int32) Dimension {
	switch id {
	case -1:
		return Dimension{Key: "minecraft:the_nether", LegacyID: -1}
	case 1:
		return Dimension{Key: "minecraft:the_end", LegacyID: 1}
	default:
		return Dimension{Key: "minecraft:overworld", LegacyID: 0}
	}
}

func (d Dimension) ToNBT() nbt.Tag {
	return nbt.Compound(nbt.Field("name", nbt.String(d.Key)))
}

func dimensionFromNBT(tag nbt.Tag) Dimension {
	name, _ := tag.Get("name")
	return Dimension{Key: name.Str}
}

// JoinGame is the clientbound packet that puts a client into the play
// phase. Its field layout changes at several version anchors (spec §6);
// the Read/Write methods branch on version identity exactly as
// original_source's JoinGame.hpp does, ported from pointer comparison on
// ProtocolVersion* to protocol.Version's AtLeast/Before.
type JoinGame struct {
	EntityID             int32
	IsHardcore           bool
	Gamemode             Gamemode
	PreviousGamemode     Gamemode
	LevelNames           []string
	RegistryContainer    *nbt.Tag
	RegistryIdentifier   string
	LevelName            string
	PartialHashedSeed    int64
	MaxPlayers           int32
	ViewDistance         int32
	SimulationDistance   int32
	ReducedDebugInfo     bool
	ShowRespawnScreen    bool
	IsDebugType          bool
	IsFlat               bool
	Dimension            Dimension
	Difficulty           Difficulty
	HasLastDeathPosition bool
	LastDeathDimension   string
	LastDeathPos         int64
}

func (j *JoinGame) Read(version *protocol.Version, buf *wire.Buffer) error {
	entityID, err := buf.ReadInt()
	if err != nil {
		return err
	}
	j.EntityID = entityID

	if version.AtLeast(protocol.V1_16_2) {
		hardcore, err := buf.ReadBoolean()
		if err != nil {
			return err
		}
		gm, err := buf.ReadByte()
		if err != nil {
			return err
		}
		j.IsHardcore = hardcore
		j.Gamemode = Gamemode(gm)
	} else {
		gm, err := buf.ReadByte()
		if err != nil {
			return err
		}
		j.IsHardcore = gm&0x08 != 0
		j.Gamemode = Gamemode(gm &^ 0x08)
	}

	if version.AtLeast(protocol.V1_16_2) {
		prevGM, err := buf.ReadByte()
		if err != nil {
			return err
		}
		j.PreviousGamemode = Gamemode(prevGM)

		count, err := buf.ReadVarInt()
		if err != nil {
			return err
		}
		j.LevelNames = make([]string, count)
		for i := range j.LevelNames {
			name, err := buf.ReadString(0)
			if err != nil {
				return err
			}
			j.LevelNames[i] = name
		}

		registry, err := nbt.ReadNBT(buf)
		if err != nil {
			return err
		}
		j.RegistryContainer = &registry

		if version.AtLeast(protocol.V1_16_2) && version.Before(protocol.V1_19) {
			dimTag, err := nbt.ReadNBT(buf)
			if err != nil {
				return err
			}
			j.Dimension = dimensionFromNBT(dimTag)
			id, err := buf.ReadString(0)
			if err != nil {
				return err
			}
			j.RegistryIdentifier = id
			j.LevelName = "world"
		} else {
			id, err := buf.ReadString(0)
			if err != nil {
				return err
			}
			name, err := buf.ReadString(0)
			if err != nil {
				return err
			}
			j.RegistryIdentifier = id
			j.LevelName = name
		}

		seed, err := buf.ReadLong()
		if err != nil {
			return err
		}
		j.PartialHashedSeed = seed

		maxPlayers, err := buf.ReadVarInt()
		if err != nil {
			return err
		}
		j.MaxPlayers = int32(maxPlayers)

		viewDist, err := buf.ReadVarInt()
		if err != nil {
			return err
		}
		j.ViewDistance = int32(viewDist)

		simDist, err := buf.ReadVarInt()
		if err != nil {
			return err
		}
		j.SimulationDistance = int32(simDist)

		if j.ReducedDebugInfo, err = buf.ReadBoolean(); err != nil {
			return err
		}
		if j.ShowRespawnScreen, err = buf.ReadBoolean(); err != nil {
			return err
		}
		if j.IsDebugType, err = buf.ReadBoolean(); err != nil {
			return err
		}
		if j.IsFlat, err = buf.ReadBoolean(); err != nil {
			return err
		}

		if version.AtLeast(protocol.V1_19) {
			has, err := buf.ReadBoolean()
			if err != nil {
				return err
			}
			j.HasLastDeathPosition = has
			if has {
				dim, err := buf.ReadString(0)
				if err != nil {
					return err
				}
				pos, err := buf.ReadLong()
				if err != nil {
					return err
				}
				j.LastDeathDimension = dim
				j.LastDeathPos = pos
			}
		}

		j.Difficulty = DifficultyPeaceful
	} else {
		if j.Gamemode == GamemodeSpectator {
			j.PreviousGamemode = GamemodeSurvival
		} else {
			j.PreviousGamemode = GamemodeSpectator
		}

		legacyID, err := buf.ReadInt()
		if err != nil {
			return err
		}
		j.Dimension = dimensionFromLegacyID(legacyID)
		j.RegistryIdentifier = j.Dimension.Key

		if version.AtLeast(protocol.V1_13) && version.Before(protocol.V1_14) {
			diff, err := buf.ReadByte()
			if err != nil {
				return err
			}
			j.Difficulty = Difficulty(diff)
		} else {
			j.Difficulty = DifficultyPeaceful
		}

		if version.AtLeast(protocol.V1_15) {
			seed, err := buf.ReadLong()
			if err != nil {
				return err
			}
			j.PartialHashedSeed = seed
		}

		j.LevelName = "world"
		j.LevelNames = []string{j.LevelName}

		maxPlayers, err := buf.ReadByte()
		if err != nil {
			return err
		}
		j.MaxPlayers = int32(maxPlayers)

		levelType, err := buf.ReadString(16)
		if err != nil {
			return err
		}
		j.IsFlat = levelType == "flat"
		j.IsDebugType = false

		if version.AtLeast(protocol.V1_14) {
			viewDist, err := buf.ReadVarInt()
			if err != nil {
				return err
			}
			j.ViewDistance = int32(viewDist)
		} else {
			j.ViewDistance = 10
		}
		j.SimulationDistance = j.ViewDistance

		if j.ReducedDebugInfo, err = buf.ReadBoolean(); err != nil {
			return err
		}
		if version.AtLeast(protocol.V1_15) {
			if j.ShowRespawnScreen, err = buf.ReadBoolean(); err != nil {
				return err
			}
		} else {
			j.ShowRespawnScreen = true
		}
		j.HasLastDeathPosition = false
	}

	return nil
}

func (j *JoinGame) Write(version *protocol.Version, buf *wire.Buffer) error {
	buf.WriteInt(j.EntityID)

	if version.AtLeast(protocol.V1_16_2) {
		buf.WriteBoolean(j.IsHardcore)
		buf.WriteByte(byte(j.Gamemode))
	} else {
		b := byte(j.Gamemode)
		if j.IsHardcore && version.AtLeast(protocol.V1_13) {
			b |= 0x08
		}
		buf.WriteByte(b)
	}

	if version.AtLeast(protocol.V1_16_2) {
		buf.WriteByte(byte(j.PreviousGamemode))
		buf.WriteVarInt(uint32(len(j.LevelNames)))
		for _, name := range j.LevelNames {
			buf.WriteString(name)
		}

		registry := j.buildRegistryContainer(version)
		if err := nbt.WriteNBT(buf, registry); err != nil {
			return err
		}

		if version.AtLeast(protocol.V1_16_2) && version.Before(protocol.V1_19) {
			if err := nbt.WriteNBT(buf, j.Dimension.ToNBT()); err != nil {
				return err
			}
			buf.WriteString(j.RegistryIdentifier)
		} else {
			buf.WriteString(j.RegistryIdentifier)
			buf.WriteString(j.LevelName)
		}

		buf.WriteLong(j.PartialHashedSeed)
		buf.WriteVarInt(uint32(j.MaxPlayers))
		buf.WriteVarInt(uint32(j.ViewDistance))
		buf.WriteVarInt(uint32(j.SimulationDistance))
		buf.WriteBoolean(j.ReducedDebugInfo)
		buf.WriteBoolean(j.ShowRespawnScreen)
		buf.WriteBoolean(j.IsDebugType)
		buf.WriteBoolean(j.IsFlat)

		if version.AtLeast(protocol.V1_19) {
			buf.WriteBoolean(j.HasLastDeathPosition)
			if j.HasLastDeathPosition {
				buf.WriteString(j.LastDeathDimension)
				buf.WriteLong(j.LastDeathPos)
			}
		}
	} else {
		buf.WriteInt(j.Dimension.LegacyID)

		if version.AtLeast(protocol.V1_13) && version.Before(protocol.V1_14) {
			buf.WriteByte(byte(j.Difficulty))
		}

		if version.AtLeast(protocol.V1_15) {
			buf.WriteLong(j.PartialHashedSeed)
		}

		buf.WriteByte(byte(j.MaxPlayers))
		if j.IsFlat {
			buf.WriteString("flat")
		} else {
			buf.WriteString("default")
		}

		if version.AtLeast(protocol.V1_14) {
			buf.WriteVarInt(uint32(j.ViewDistance))
		}

		buf.WriteBoolean(j.ReducedDebugInfo)
		if version.AtLeast(protocol.V1_15) {
			buf.WriteBoolean(j.ShowRespawnScreen)
		}
	}

	return nil
}

// buildRegistryContainer returns the stored registry NBT if this value was
// decoded off the wire, or synthesizes a minimal one from Dimension when
// this value was constructed directly by the application (mirroring
// original_source's "registryContainer != nullptr ? ... : build one" split).
func (j *JoinGame) buildRegistryContainer(version *protocol.Version) nbt.Tag {
	if j.RegistryContainer != nil {
		return *j.RegistryContainer
	}

	dimensionType := nbt.Compound(
		nbt.Field("type", nbt.String("minecraft:dimension_type")),
		nbt.Field("value", nbt.ListOf(nbt.TagCompound, j.Dimension.ToNBT())),
	)
	fields := []nbt.NamedTag{
		nbt.Field("minecraft:dimension_type", dimensionType),
	}
	if version.AtLeast(protocol.V1_19) {
		fields = append(fields, nbt.Field("minecraft:chat_type", nbt.Compound()))
	}
	return nbt.Compound(fields...)
}

// Size is UNKNOWN: JoinGame's NBT registry payload isn't cheaply sized
// without serializing it, matching original_source's `Size() { return -1; }`.
func (j *JoinGame) Size(*protocol.Version) int64 { return protocol.SizeUnknown }

func (j *JoinGame) Ordinal() uint32 { return JoinGameOrdinal }
