// Package store archives generated levels and keeps a catalog of past runs.
package store

import (
	"errors"

	"github.com/sirupsen/logrus"

	"voxelworld/internal/world"
)

// ErrNotFound reports a level name that the storage or catalog does not hold.
var ErrNotFound = errors.New("level not found")

// LevelStorage persists whole levels by name.
type LevelStorage interface {
	Save(name string, lvl *world.Level) error
	Load(name string) (*world.Level, error)
	Delete(name string) error
	// ForEach visits stored levels in name order until fn returns false.
	ForEach(fn func(name string, lvl *world.Level) bool) error
	Close() error
}

// Open returns a disk storage rooted at dir, or an in-memory storage when dir is empty.
func Open(dir string, logger logrus.FieldLogger) (LevelStorage, error) {
	if dir == "" {
		return NewMemoryStorage(), nil
	}
	s, err := NewDiskStorage(dir)
	if err != nil {
		return nil, err
	}
	s.SetLogger(logger)
	return s, nil
}

func cloneLevel(lvl *world.Level) *world.Level {
	dup := world.NewLevel(lvl.Dimensions)
	copy(dup.Blocks, lvl.Blocks)
	return dup
}
