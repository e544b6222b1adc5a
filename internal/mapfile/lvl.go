package mapfile

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"

	"voxelworld/internal/world"
)

const (
	lvlVersion    = 1874
	lvlHeaderSize = 18
)

// SaveLvl writes lvl in the MCSharp .lvl layout: a gzip stream holding an 18 byte
// little-endian header followed by the raw block buffer.
func SaveLvl(w io.Writer, lvl *world.Level, meta Meta) error {
	if err := checkDimensions(lvl.Dimensions); err != nil {
		return err
	}

	var header [lvlHeaderSize]byte
	binary.LittleEndian.PutUint16(header[0:], lvlVersion)
	binary.LittleEndian.PutUint16(header[2:], uint16(lvl.Width))
	binary.LittleEndian.PutUint16(header[4:], uint16(lvl.Length))
	binary.LittleEndian.PutUint16(header[6:], uint16(lvl.Height))
	binary.LittleEndian.PutUint16(header[8:], uint16(meta.Spawn.X))
	binary.LittleEndian.PutUint16(header[10:], uint16(meta.Spawn.Z))
	binary.LittleEndian.PutUint16(header[12:], uint16(meta.Spawn.Y))
	header[14] = meta.Spawn.Yaw
	header[15] = meta.Spawn.Pitch
	// visit and build permissions stay at 0 (guest).

	zw := gzip.NewWriter(w)
	if _, err := zw.Write(header[:]); err != nil {
		zw.Close()
		return fmt.Errorf("write lvl header: %w", err)
	}
	if _, err := zw.Write(lvl.Raw()); err != nil {
		zw.Close()
		return fmt.Errorf("write lvl blocks: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flush lvl: %w", err)
	}
	return nil
}

// LoadLvl reads a level written by SaveLvl. Trailing sections after the block
// buffer are ignored. The format carries no name, generator or seed.
func LoadLvl(r io.Reader) (*world.Level, Meta, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("open lvl gzip: %w", err)
	}
	defer zr.Close()
	br := bufio.NewReader(zr)

	var header [lvlHeaderSize]byte
	if _, err := io.ReadFull(br, header[:]); err != nil {
		return nil, Meta{}, fmt.Errorf("read lvl header: %w", err)
	}
	if v := binary.LittleEndian.Uint16(header[0:]); v != lvlVersion {
		return nil, Meta{}, fmt.Errorf("%w: lvl version %d", ErrBadVersion, v)
	}

	dim := world.Dimensions{
		Width:  int(binary.LittleEndian.Uint16(header[2:])),
		Length: int(binary.LittleEndian.Uint16(header[4:])),
		Height: int(binary.LittleEndian.Uint16(header[6:])),
	}
	if err := dim.Validate(); err != nil {
		return nil, Meta{}, fmt.Errorf("lvl header: %w", err)
	}
	lvl := world.NewLevel(dim)
	if _, err := io.ReadFull(br, lvl.Raw()); err != nil {
		return nil, Meta{}, fmt.Errorf("read lvl blocks: %w", err)
	}

	meta := Meta{
		Spawn: world.Spawn{
			X:     int(binary.LittleEndian.Uint16(header[8:])),
			Z:     int(binary.LittleEndian.Uint16(header[10:])),
			Y:     int(binary.LittleEndian.Uint16(header[12:])),
			Yaw:   header[14],
			Pitch: header[15],
		},
	}
	return lvl, meta, nil
}
