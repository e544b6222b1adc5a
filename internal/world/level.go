package world

import (
	"errors"
	"fmt"
	"math"
	"unsafe"
)

// BlockCoord describes a block position inside a level. Y is the vertical axis.
type BlockCoord struct {
	X int
	Y int
	Z int
}

// Dimensions defines the size of a level in blocks.
type Dimensions struct {
	Width  int
	Height int
	Length int
}

// Volume returns the number of cells in a level of these dimensions.
func (d Dimensions) Volume() int {
	return d.Width * d.Height * d.Length
}

// Validate reports dimensions that cannot back a level buffer. The generator itself never
// validates; callers that accept user input should.
func (d Dimensions) Validate() error {
	if d.Width <= 0 || d.Height <= 0 || d.Length <= 0 {
		return errors.New("level dimensions must be positive")
	}
	if int64(d.Width)*int64(d.Height)*int64(d.Length) > math.MaxInt32 {
		return fmt.Errorf("level volume %dx%dx%d exceeds %d cells", d.Width, d.Height, d.Length, math.MaxInt32)
	}
	return nil
}

// Level is a dense Y-major block volume. Index(x, y, z) = (y*Length + z)*Width + x.
type Level struct {
	Dimensions
	Blocks []BlockID
}

// NewLevel allocates a level whose cells are all Air.
func NewLevel(dim Dimensions) *Level {
	return &Level{
		Dimensions: dim,
		Blocks:     make([]BlockID, dim.Volume()),
	}
}

// LevelFromRaw wraps a copy of raw as the block buffer of a level.
func LevelFromRaw(dim Dimensions, raw []byte) (*Level, error) {
	if len(raw) != dim.Volume() {
		return nil, fmt.Errorf("block buffer holds %d cells, dimensions need %d", len(raw), dim.Volume())
	}
	lvl := NewLevel(dim)
	copy(lvl.Raw(), raw)
	return lvl, nil
}

// Raw exposes the block buffer as bytes without copying.
func (l *Level) Raw() []byte {
	if len(l.Blocks) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&l.Blocks[0])), len(l.Blocks))
}

// OneY is the index distance between two vertically adjacent cells.
func (l *Level) OneY() int {
	return l.Width * l.Length
}

func (l *Level) MaxX() int { return l.Width - 1 }
func (l *Level) MaxY() int { return l.Height - 1 }
func (l *Level) MaxZ() int { return l.Length - 1 }

// Index packs a coordinate into a buffer offset. It does not check bounds.
func (l *Level) Index(x, y, z int) int {
	return (y*l.Length+z)*l.Width + x
}

// Unpack is the inverse of Index.
func (l *Level) Unpack(index int) BlockCoord {
	return BlockCoord{
		X: index % l.Width,
		Y: index / l.OneY(),
		Z: (index / l.Width) % l.Length,
	}
}

func (l *Level) Contains(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < l.Width && y < l.Height && z < l.Length
}

func (l *Level) ContainsXZ(x, z int) bool {
	return x >= 0 && z >= 0 && x < l.Width && z < l.Length
}

// Block returns the block at the coordinate, or Air when it lies outside the level.
func (l *Level) Block(x, y, z int) BlockID {
	if !l.Contains(x, y, z) {
		return Air
	}
	return l.Blocks[l.Index(x, y, z)]
}

// SetBlock writes b at the coordinate and reports whether it was inside the level.
func (l *Level) SetBlock(x, y, z int, b BlockID) bool {
	if !l.Contains(x, y, z) {
		return false
	}
	l.Blocks[l.Index(x, y, z)] = b
	return true
}

// FillLayer sets every cell of row y to b.
func (l *Level) FillLayer(y int, b BlockID) {
	oneY := l.OneY()
	layer := l.Blocks[y*oneY : (y+1)*oneY]
	for i := range layer {
		layer[i] = b
	}
}

// Count returns how many cells hold b.
func (l *Level) Count(b BlockID) int {
	n := 0
	for _, cell := range l.Blocks {
		if cell == b {
			n++
		}
	}
	return n
}

// ValidName reports whether name can label an archived level: ASCII letters, digits, '_', '-'
// and '.', not starting with a dot.
func ValidName(name string) bool {
	if name == "" || name[0] == '.' {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '-', r == '.':
		default:
			return false
		}
	}
	return true
}
