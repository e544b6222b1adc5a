package mapfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/Tnze/go-mc/nbt"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"

	"voxelworld/internal/world"
)

const (
	classicWorldTag     = "ClassicWorld"
	classicWorldVersion = 1
	softwareName        = "voxelworld"
)

type cwSpawn struct {
	X int16 `nbt:"X"`
	Y int16 `nbt:"Y"`
	Z int16 `nbt:"Z"`
	H int8  `nbt:"H"`
	P int8  `nbt:"P"`
}

type cwCreatedBy struct {
	Service  string `nbt:"Service"`
	Username string `nbt:"Username"`
}

type cwGenerator struct {
	Software         string `nbt:"Software"`
	MapGeneratorName string `nbt:"MapGeneratorName"`
	Seed             int32  `nbt:"Seed"`
}

// classicWorld mirrors the root compound of a .cw file. Tags this package does not
// write (Metadata, BlockArray2) are skipped on load.
type classicWorld struct {
	FormatVersion int8        `nbt:"FormatVersion"`
	Name          string      `nbt:"Name"`
	UUID          []byte      `nbt:"UUID"`
	X             int16       `nbt:"X"`
	Y             int16       `nbt:"Y"`
	Z             int16       `nbt:"Z"`
	Spawn         cwSpawn     `nbt:"Spawn"`
	BlockArray    []byte      `nbt:"BlockArray"`
	CreatedBy     cwCreatedBy `nbt:"CreatedBy"`
	MapGenerator  cwGenerator `nbt:"MapGenerator"`
}

// LevelID derives a stable UUID for a generated level so re-saving the same
// name, generator and seed produces the same identifier.
func LevelID(meta Meta) uuid.UUID {
	key := meta.Name + "/" + meta.Generator + "/" + strconv.FormatInt(int64(meta.Seed), 10)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
}

// SaveClassicWorld writes lvl as a gzip compressed ClassicWorld NBT document.
func SaveClassicWorld(w io.Writer, lvl *world.Level, meta Meta) error {
	if err := checkDimensions(lvl.Dimensions); err != nil {
		return err
	}
	id := LevelID(meta)
	doc := classicWorld{
		FormatVersion: classicWorldVersion,
		Name:          meta.Name,
		UUID:          id[:],
		X:             int16(lvl.Width),
		Y:             int16(lvl.Height),
		Z:             int16(lvl.Length),
		Spawn: cwSpawn{
			X: int16(meta.Spawn.X),
			Y: int16(meta.Spawn.Y),
			Z: int16(meta.Spawn.Z),
			H: int8(meta.Spawn.Yaw),
			P: int8(meta.Spawn.Pitch),
		},
		BlockArray: lvl.Raw(),
		CreatedBy: cwCreatedBy{
			Service:  softwareName,
			Username: meta.Author,
		},
		MapGenerator: cwGenerator{
			Software:         softwareName,
			MapGeneratorName: meta.Generator,
			Seed:             meta.Seed,
		},
	}

	zw := gzip.NewWriter(w)
	if err := nbt.NewEncoder(zw).Encode(doc, classicWorldTag); err != nil {
		zw.Close()
		return fmt.Errorf("encode classicworld: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flush classicworld: %w", err)
	}
	return nil
}

// LoadClassicWorld reads a level written by SaveClassicWorld or any other
// ClassicWorld producer that stores blocks in a single BlockArray.
func LoadClassicWorld(r io.Reader) (*world.Level, Meta, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("open classicworld gzip: %w", err)
	}
	defer zr.Close()

	var doc classicWorld
	if _, err := nbt.NewDecoder(bufio.NewReader(zr)).Decode(&doc); err != nil {
		return nil, Meta{}, fmt.Errorf("decode classicworld: %w", err)
	}
	if doc.FormatVersion != classicWorldVersion {
		return nil, Meta{}, fmt.Errorf("%w: classicworld version %d", ErrBadVersion, doc.FormatVersion)
	}

	dim := world.Dimensions{Width: int(doc.X), Height: int(doc.Y), Length: int(doc.Z)}
	lvl, err := world.LevelFromRaw(dim, doc.BlockArray)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("classicworld blocks: %w", err)
	}
	meta := Meta{
		Name:      doc.Name,
		Author:    doc.CreatedBy.Username,
		Generator: doc.MapGenerator.MapGeneratorName,
		Seed:      doc.MapGenerator.Seed,
		Spawn: world.Spawn{
			X:     int(doc.Spawn.X),
			Y:     int(doc.Spawn.Y),
			Z:     int(doc.Spawn.Z),
			Yaw:   uint8(doc.Spawn.H),
			Pitch: uint8(doc.Spawn.P),
		},
	}
	return lvl, meta, nil
}
