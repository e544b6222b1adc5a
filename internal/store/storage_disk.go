package store

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"

	"voxelworld/internal/world"
)

const (
	diskMagic      = "VXLV"
	diskVersion    = 1
	diskHeaderSize = 20
	diskExt        = ".vxl"
)

// DiskStorage keeps one compressed file per level beneath a directory.
type DiskStorage struct {
	dir string
	log logrus.FieldLogger

	mu sync.RWMutex
}

// NewDiskStorage creates dir if needed and returns a storage rooted there.
func NewDiskStorage(dir string) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create level directory: %w", err)
	}
	return &DiskStorage{
		dir: dir,
		log: logrus.StandardLogger().WithField("component", "store"),
	}, nil
}

// SetLogger replaces the logger used for skipped files during ForEach.
func (s *DiskStorage) SetLogger(logger logrus.FieldLogger) {
	if logger != nil {
		s.log = logger
	}
}

func (s *DiskStorage) levelPath(name string) (string, error) {
	if !world.ValidName(name) {
		return "", fmt.Errorf("invalid level name %q", name)
	}
	return filepath.Join(s.dir, name+diskExt), nil
}

// Save writes the level to a temporary file and renames it over the previous copy.
func (s *DiskStorage) Save(name string, lvl *world.Level) error {
	path, err := s.levelPath(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create level file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := encodeLevel(tmp, lvl); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync level file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close level file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace level file: %w", err)
	}
	return nil
}

func encodeLevel(w io.Writer, lvl *world.Level) error {
	var header [diskHeaderSize]byte
	copy(header[:4], diskMagic)
	binary.LittleEndian.PutUint32(header[4:], diskVersion)
	binary.LittleEndian.PutUint32(header[8:], uint32(lvl.Width))
	binary.LittleEndian.PutUint32(header[12:], uint32(lvl.Height))
	binary.LittleEndian.PutUint32(header[16:], uint32(lvl.Length))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("write level header: %w", err)
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("create level encoder: %w", err)
	}
	if _, err := enc.Write(lvl.Raw()); err != nil {
		enc.Close()
		return fmt.Errorf("write level blocks: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush level blocks: %w", err)
	}
	return nil
}

func (s *DiskStorage) Load(name string) (*world.Level, error) {
	path, err := s.levelPath(name)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return nil, fmt.Errorf("open level file: %w", err)
	}
	defer f.Close()
	return decodeLevel(bufio.NewReader(f))
}

func decodeLevel(r io.Reader) (*world.Level, error) {
	var header [diskHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("read level header: %w", err)
	}
	if string(header[:4]) != diskMagic {
		return nil, fmt.Errorf("level file has bad magic %q", header[:4])
	}
	if v := binary.LittleEndian.Uint32(header[4:]); v != diskVersion {
		return nil, fmt.Errorf("level file version %d is not supported", v)
	}
	dim := world.Dimensions{
		Width:  int(binary.LittleEndian.Uint32(header[8:])),
		Height: int(binary.LittleEndian.Uint32(header[12:])),
		Length: int(binary.LittleEndian.Uint32(header[16:])),
	}
	if err := dim.Validate(); err != nil {
		return nil, fmt.Errorf("level file header: %w", err)
	}

	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("create level decoder: %w", err)
	}
	defer dec.Close()

	lvl := world.NewLevel(dim)
	if _, err := io.ReadFull(dec, lvl.Raw()); err != nil {
		return nil, fmt.Errorf("read level blocks: %w", err)
	}
	return lvl, nil
}

func (s *DiskStorage) Delete(name string) error {
	path, err := s.levelPath(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete level file: %w", err)
	}
	return nil
}

// ForEach loads every stored level in name order. Unreadable files are logged and skipped.
func (s *DiskStorage) ForEach(fn func(name string, lvl *world.Level) bool) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("list level directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), diskExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), diskExt))
	}
	sort.Strings(names)

	for _, name := range names {
		lvl, err := s.Load(name)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				s.log.WithError(err).WithField("level", name).Warn("skipping unreadable level")
			}
			continue
		}
		if !fn(name, lvl) {
			break
		}
	}
	return nil
}

func (s *DiskStorage) Close() error {
	return nil
}
