package store

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"voxelworld/internal/world"
)

func testLevel(fill world.BlockID) *world.Level {
	lvl := world.NewLevel(world.Dimensions{Width: 8, Height: 4, Length: 6})
	lvl.FillLayer(0, world.StillLava)
	lvl.FillLayer(1, fill)
	lvl.SetBlock(3, 2, 3, world.Log)
	return lvl
}

func storages(t *testing.T) map[string]LevelStorage {
	t.Helper()
	disk, err := NewDiskStorage(filepath.Join(t.TempDir(), "levels"))
	if err != nil {
		t.Fatalf("NewDiskStorage: %v", err)
	}
	return map[string]LevelStorage{
		"memory": NewMemoryStorage(),
		"disk":   disk,
	}
}

func TestLevelStorageRoundTrip(t *testing.T) {
	for kind, s := range storages(t) {
		t.Run(kind, func(t *testing.T) {
			defer s.Close()

			lvl := testLevel(world.Stone)
			if err := s.Save("main", lvl); err != nil {
				t.Fatalf("Save: %v", err)
			}
			// Later edits to the caller's level must not leak into storage.
			lvl.SetBlock(0, 3, 0, world.Sand)

			got, err := s.Load("main")
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got.Dimensions != lvl.Dimensions {
				t.Fatalf("dimensions %+v, expected %+v", got.Dimensions, lvl.Dimensions)
			}
			if got.Block(0, 3, 0) != world.Air || got.Block(3, 2, 3) != world.Log {
				t.Fatalf("unexpected stored blocks")
			}

			if err := s.Save("main", testLevel(world.Dirt)); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, err = s.Load("main")
			if err != nil {
				t.Fatalf("Load after overwrite: %v", err)
			}
			if got.Block(0, 1, 0) != world.Dirt {
				t.Fatalf("expected overwritten level")
			}

			if err := s.Delete("main"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := s.Load("main"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound after delete, got %v", err)
			}
			if err := s.Delete("main"); err != nil {
				t.Fatalf("deleting a missing level should succeed: %v", err)
			}
		})
	}
}

func TestLevelStorageForEachOrdered(t *testing.T) {
	for kind, s := range storages(t) {
		t.Run(kind, func(t *testing.T) {
			defer s.Close()
			for _, name := range []string{"gamma", "alpha", "beta"} {
				if err := s.Save(name, testLevel(world.Stone)); err != nil {
					t.Fatalf("Save %s: %v", name, err)
				}
			}

			var seen []string
			err := s.ForEach(func(name string, lvl *world.Level) bool {
				seen = append(seen, name)
				return len(seen) < 2
			})
			if err != nil {
				t.Fatalf("ForEach: %v", err)
			}
			if len(seen) != 2 || seen[0] != "alpha" || seen[1] != "beta" {
				t.Fatalf("unexpected iteration %v", seen)
			}
		})
	}
}

func TestDiskStorageRejectsBadNames(t *testing.T) {
	s, err := NewDiskStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStorage: %v", err)
	}
	for _, name := range []string{"", "../escape", ".hidden", "a/b", "spa ce"} {
		if err := s.Save(name, testLevel(world.Stone)); err == nil {
			t.Fatalf("expected name %q to be rejected", name)
		}
	}
}

func TestDiskStorageFileLayout(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDiskStorage(dir)
	if err != nil {
		t.Fatalf("NewDiskStorage: %v", err)
	}
	if err := s.Save("island", testLevel(world.Stone)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, "island.vxl"))
	if err != nil {
		t.Fatalf("read level file: %v", err)
	}
	if len(raw) < diskHeaderSize || string(raw[:4]) != diskMagic {
		t.Fatalf("unexpected level file header %q", raw[:min(len(raw), 4)])
	}

	lvl, err := decodeLevel(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decodeLevel: %v", err)
	}
	if lvl.Width != 8 || lvl.Height != 4 || lvl.Length != 6 {
		t.Fatalf("unexpected dimensions %+v", lvl.Dimensions)
	}

	raw[0] = 'X'
	if _, err := decodeLevel(bytes.NewReader(raw)); err == nil {
		t.Fatalf("expected bad magic to be rejected")
	}
}

func TestDiskStorageSkipsCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDiskStorage(dir)
	if err != nil {
		t.Fatalf("NewDiskStorage: %v", err)
	}
	if err := s.Save("good", testLevel(world.Stone)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.vxl"), []byte("nope"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	var seen []string
	if err := s.ForEach(func(name string, _ *world.Level) bool {
		seen = append(seen, name)
		return true
	}); err != nil {
		t.Fatalf("ForEach: %v", err)
	}
	if len(seen) != 1 || seen[0] != "good" {
		t.Fatalf("expected only the readable level, got %v", seen)
	}
}

func TestOpenPicksProvider(t *testing.T) {
	s, err := Open("", nil)
	if err != nil {
		t.Fatalf("Open memory: %v", err)
	}
	if _, ok := s.(*memoryStorage); !ok {
		t.Fatalf("expected memory storage, got %T", s)
	}
	s, err = Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Open disk: %v", err)
	}
	if _, ok := s.(*DiskStorage); !ok {
		t.Fatalf("expected disk storage, got %T", s)
	}
}

func TestCatalogRecordLookupList(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db", "catalog.db")
	cat, err := OpenCatalog(path)
	if err != nil {
		t.Fatalf("OpenCatalog: %v", err)
	}
	defer cat.Close()

	lvl := testLevel(world.Stone)
	older := NewEntry("alpha", "notchy", -7, lvl, "maps/alpha.cw")
	older.CreatedAt = time.Date(2024, 1, 2, 3, 4, 5, 600, time.UTC)
	newer := NewEntry("beta", "flat", 9, testLevel(world.Dirt), "maps/beta.lvl")
	newer.CreatedAt = older.CreatedAt.Add(time.Hour)

	for _, e := range []Entry{older, newer} {
		if err := cat.Record(ctx, e); err != nil {
			t.Fatalf("Record %s: %v", e.Name, err)
		}
	}

	got, err := cat.Lookup(ctx, "alpha")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !got.CreatedAt.Equal(older.CreatedAt) {
		t.Fatalf("created_at %v, expected %v", got.CreatedAt, older.CreatedAt)
	}
	got.CreatedAt = older.CreatedAt
	if got != older {
		t.Fatalf("lookup mismatch:\nwant %+v\n got %+v", older, got)
	}
	if got.Digest != Digest(lvl) || len(got.Digest) != 64 {
		t.Fatalf("unexpected digest %q", got.Digest)
	}

	if _, err := cat.Lookup(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	list, err := cat.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].Name != "beta" || list[1].Name != "alpha" {
		t.Fatalf("expected newest first, got %+v", list)
	}

	// Recording the same name replaces the row.
	older.Seed = 100
	if err := cat.Record(ctx, older); err != nil {
		t.Fatalf("Record replace: %v", err)
	}
	got, err = cat.Lookup(ctx, "alpha")
	if err != nil || got.Seed != 100 {
		t.Fatalf("expected replaced seed, got %+v err=%v", got, err)
	}
}

func TestDigestTracksBlocks(t *testing.T) {
	a, b := testLevel(world.Stone), testLevel(world.Stone)
	if Digest(a) != Digest(b) {
		t.Fatalf("identical levels should share a digest")
	}
	b.SetBlock(0, 3, 0, world.Gravel)
	if Digest(a) == Digest(b) {
		t.Fatalf("changed level should change the digest")
	}
}
