// Package mapfile reads and writes generated levels in the ClassicWorld (.cw) and
// MCSharp (.lvl) map formats.
package mapfile

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"voxelworld/internal/world"
)

// Supported format names. They double as file extensions.
const (
	FormatClassicWorld = "cw"
	FormatLvl          = "lvl"
)

var (
	ErrUnknownFormat = errors.New("unknown map format")
	ErrBadVersion    = errors.New("unsupported map version")
)

// Meta is the level information stored next to the blocks. Formats that cannot
// record a field leave it zero on load.
type Meta struct {
	Name      string
	Author    string
	Generator string
	Seed      int32
	Spawn     world.Spawn
}

// FormatOf returns the format implied by the path extension.
func FormatOf(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// Save writes lvl to path in the given format. An empty format is taken from the
// extension. Parent directories are created as needed. The map is encoded into a temporary
// file next to path and renamed over it, so a failed save leaves any previous file intact.
func Save(path, format string, lvl *world.Level, meta Meta) error {
	if format == "" {
		format = FormatOf(path)
	}
	save, ok := savers[format]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create map directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create map file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := save(tmp, lvl, meta); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync map file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close map file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace map file: %w", err)
	}
	return nil
}

// Load reads a map file, picking the decoder from the path extension.
func Load(path string) (*world.Level, Meta, error) {
	format := FormatOf(path)
	load, ok := loaders[format]
	if !ok {
		return nil, Meta{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("open map file: %w", err)
	}
	defer f.Close()
	return load(f)
}

var (
	savers = map[string]func(io.Writer, *world.Level, Meta) error{
		FormatClassicWorld: SaveClassicWorld,
		FormatLvl:          SaveLvl,
	}
	loaders = map[string]func(io.Reader) (*world.Level, Meta, error){
		FormatClassicWorld: LoadClassicWorld,
		FormatLvl:          LoadLvl,
	}
)

// Both formats store sizes and spawn coordinates in 16 bits.
func checkDimensions(dim world.Dimensions) error {
	if err := dim.Validate(); err != nil {
		return err
	}
	if dim.Width > math.MaxInt16 || dim.Height > math.MaxInt16 || dim.Length > math.MaxInt16 {
		return fmt.Errorf("level %dx%dx%d does not fit 16 bit map dimensions", dim.Width, dim.Height, dim.Length)
	}
	return nil
}
