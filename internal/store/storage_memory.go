package store

import (
	"fmt"
	"sort"
	"sync"

	"voxelworld/internal/world"
)

type memoryStorage struct {
	mu     sync.RWMutex
	levels map[string]*world.Level
}

// NewMemoryStorage keeps levels in process memory. Stored levels are copied on
// the way in and out so callers can keep mutating their own buffers.
func NewMemoryStorage() LevelStorage {
	return &memoryStorage{levels: make(map[string]*world.Level)}
}

func (m *memoryStorage) Save(name string, lvl *world.Level) error {
	if name == "" {
		return fmt.Errorf("save level: empty name")
	}
	dup := cloneLevel(lvl)
	m.mu.Lock()
	m.levels[name] = dup
	m.mu.Unlock()
	return nil
}

func (m *memoryStorage) Load(name string) (*world.Level, error) {
	m.mu.RLock()
	lvl, ok := m.levels[name]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return cloneLevel(lvl), nil
}

func (m *memoryStorage) Delete(name string) error {
	m.mu.Lock()
	delete(m.levels, name)
	m.mu.Unlock()
	return nil
}

func (m *memoryStorage) ForEach(fn func(name string, lvl *world.Level) bool) error {
	m.mu.RLock()
	names := make([]string, 0, len(m.levels))
	for name := range m.levels {
		names = append(names, name)
	}
	m.mu.RUnlock()
	sort.Strings(names)

	for _, name := range names {
		lvl, err := m.Load(name)
		if err != nil {
			// deleted while iterating
			continue
		}
		if !fn(name, lvl) {
			break
		}
	}
	return nil
}

func (m *memoryStorage) Close() error {
	return nil
}
