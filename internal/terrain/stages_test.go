package terrain

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"voxelworld/internal/world"
)

func newTestRun(dim world.Dimensions, seed int32) *notchyRun {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	r := &notchyRun{
		level:      world.NewLevel(dim),
		heightmap:  make([]int, dim.Width*dim.Length),
		rnd:        NewRandom(seed),
		waterLevel: dim.Height / 2,
		minHeight:  dim.Height,
		progress:   &Progress{},
		log:        logger,
	}
	r.blocks = r.level.Blocks
	return r
}

func TestFloodFillNeverRises(t *testing.T) {
	r := newTestRun(world.Dimensions{Width: 5, Height: 5, Length: 5}, 0)
	lvl := r.level
	lvl.FillLayer(0, world.Stone)
	lvl.FillLayer(1, world.Stone)
	lvl.SetBlock(1, 1, 1, world.Air)

	r.floodFill(lvl.Index(2, 2, 2), world.StillWater)

	if got := lvl.Count(world.StillWater); got != 26 {
		t.Fatalf("expected row 2 plus the pocket below it (26 cells), got %d", got)
	}
	if lvl.Block(1, 1, 1) != world.StillWater {
		t.Fatalf("expected pocket reachable from above to be filled")
	}
	for y := 3; y < 5; y++ {
		for z := 0; z < 5; z++ {
			for x := 0; x < 5; x++ {
				if lvl.Block(x, y, z) != world.Air {
					t.Fatalf("fill rose to (%d,%d,%d)", x, y, z)
				}
			}
		}
	}

	r.floodFill(-1, world.StillLava)
	r.floodFill(lvl.Index(0, 0, 0), world.StillLava)
	if lvl.Count(world.StillLava) != 0 {
		t.Fatalf("expected fills starting on solid or negative index to do nothing")
	}
}

func TestFillOblateSpheroidOnlyReplacesStone(t *testing.T) {
	r := newTestRun(world.Dimensions{Width: 9, Height: 9, Length: 9}, 0)
	lvl := r.level
	for y := 0; y < 9; y++ {
		lvl.FillLayer(y, world.Stone)
	}
	lvl.SetBlock(4, 4, 4, world.Dirt)
	lvl.SetBlock(5, 4, 4, world.StillLava)

	r.fillOblateSpheroid(4, 4, 4, 3, world.Air)

	cases := []struct {
		name    string
		x, y, z int
		want    world.BlockID
	}{
		{"centre dirt kept", 4, 4, 4, world.Dirt},
		{"lava kept", 5, 4, 4, world.StillLava},
		{"horizontal reach", 6, 4, 4, world.Air},
		{"horizontal edge", 7, 4, 4, world.Stone},
		{"vertical squash inside", 4, 6, 4, world.Air},
		{"vertical squash outside", 4, 7, 4, world.Stone},
		{"diagonal outside", 6, 6, 4, world.Stone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := lvl.Block(tc.x, tc.y, tc.z); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestFillOblateSpheroidClipsToLevel(t *testing.T) {
	r := newTestRun(world.Dimensions{Width: 4, Height: 4, Length: 4}, 0)
	for y := 0; y < 4; y++ {
		r.level.FillLayer(y, world.Stone)
	}
	r.fillOblateSpheroid(-1, 0, 3, 2.5, world.CoalOre)
	r.fillOblateSpheroid(100, 100, 100, 5, world.CoalOre)
	if r.level.Block(0, 0, 3) != world.CoalOre {
		t.Fatalf("expected corner cell inside the radius to be replaced")
	}
}

func TestCanGrowTree(t *testing.T) {
	lvl := world.NewLevel(world.Dimensions{Width: 9, Height: 12, Length: 9})
	lvl.FillLayer(0, world.Grass)

	if !CanGrowTree(lvl, 4, 1, 4, 5) {
		t.Fatalf("expected tree to fit in open level")
	}
	if CanGrowTree(lvl, 1, 1, 4, 5) {
		t.Fatalf("expected canopy crossing the level edge to be rejected")
	}
	if CanGrowTree(lvl, 4, 8, 4, 5) {
		t.Fatalf("expected canopy above the level top to be rejected")
	}

	lvl.SetBlock(6, 1, 4, world.Stone)
	if !CanGrowTree(lvl, 4, 1, 4, 5) {
		t.Fatalf("expected obstacle beside the 3x3 trunk base to be allowed")
	}
	if CanGrowTree(lvl, 4, 1, 4, 4) {
		t.Fatalf("expected short tree whose canopy starts at the obstacle row to be rejected")
	}

	lvl.SetBlock(6, 1, 4, world.Air)
	lvl.SetBlock(6, 3, 4, world.Stone)
	if CanGrowTree(lvl, 4, 1, 4, 5) {
		t.Fatalf("expected obstacle in canopy to be rejected")
	}
}

func TestGrowTreeShape(t *testing.T) {
	placements := GrowTree(NewRandom(3), 4, 1, 4, 5, nil)

	logs := 0
	for i, p := range placements {
		if p.Y < 1 || p.Y > 5 {
			t.Fatalf("placement %d at y=%d outside tree rows", i, p.Y)
		}
		if abs(p.X-4) > 2 || abs(p.Z-4) > 2 {
			t.Fatalf("placement %d at (%d,%d) outside canopy", i, p.X, p.Z)
		}
		switch p.Block {
		case world.Log:
			logs++
			if p.X != 4 || p.Z != 4 {
				t.Fatalf("log off the trunk column at %+v", p.BlockCoord)
			}
		case world.Leaves:
			if logs > 0 {
				t.Fatalf("leaves placed after the trunk")
			}
			if p.Y >= 4 && (abs(p.X-4) > 1 || abs(p.Z-4) > 1) {
				t.Fatalf("top leaves wider than 3x3 at %+v", p.BlockCoord)
			}
			if p.Y == 5 && p.X != 4 && p.Z != 4 {
				t.Fatalf("top row corner leaf at %+v", p.BlockCoord)
			}
		default:
			t.Fatalf("unexpected block %v", p.Block)
		}
	}
	if logs != 4 {
		t.Fatalf("expected trunk of 4 logs, got %d", logs)
	}
	if n := len(placements); n < 56 || n > 68 {
		t.Fatalf("unexpected placement count %d", n)
	}
	last := placements[len(placements)-1]
	if last.Block != world.Log || last.Y != 4 {
		t.Fatalf("expected trunk top last, got %+v", last)
	}
}

func TestHeightmapWithinLevel(t *testing.T) {
	r := newTestRun(world.Dimensions{Width: 32, Height: 128, Length: 32}, 31337)
	r.createHeightmap()

	lowest := r.heightmap[0]
	for _, h := range r.heightmap {
		if h <= 0 || h >= 128 {
			t.Fatalf("height %d outside level", h)
		}
		lowest = min(lowest, h)
	}
	if r.minHeight != lowest {
		t.Fatalf("minHeight %d, lowest column %d", r.minHeight, lowest)
	}
	if r.progress.Stage() != StageHeightmap {
		t.Fatalf("unexpected stage %q", r.progress.Stage())
	}
}

func TestStrataLayers(t *testing.T) {
	r := newTestRun(world.Dimensions{Width: 16, Height: 64, Length: 16}, 5)
	r.createHeightmap()
	r.createStrata()
	lvl := r.level

	for z := 0; z < lvl.Length; z++ {
		for x := 0; x < lvl.Width; x++ {
			if lvl.Block(x, 0, z) != world.StillLava {
				t.Fatalf("expected lava floor at (%d,%d)", x, z)
			}
			h := r.height(x, z)
			for y := 1; y <= min(h, lvl.MaxY()); y++ {
				b := lvl.Block(x, y, z)
				if b != world.Stone && b != world.Dirt {
					t.Fatalf("unexpected %v at (%d,%d,%d)", b, x, y, z)
				}
				if b == world.Dirt && lvl.Block(x, y+1, z) == world.Stone {
					t.Fatalf("stone above dirt at (%d,%d,%d)", x, y, z)
				}
			}
			for y := h + 1; y < lvl.Height; y++ {
				if lvl.Block(x, y, z) == world.Dirt {
					t.Fatalf("dirt above surface at (%d,%d,%d)", x, y, z)
				}
			}
		}
	}
}

func TestSurfaceDecoration(t *testing.T) {
	r := newTestRun(world.Dimensions{Width: 4, Height: 8, Length: 1}, 1)
	lvl := r.level
	for y := 0; y < 4; y++ {
		lvl.FillLayer(y, world.Dirt)
	}
	r.heightmap = []int{3, 3, -1, 8}
	lvl.SetBlock(1, 4, 0, world.StillLava)

	r.createSurface()

	top := lvl.Block(0, 3, 0)
	if top != world.Grass && top != world.Sand {
		t.Fatalf("expected grass or sand under open sky, got %v", top)
	}
	if got := lvl.Block(1, 3, 0); got != world.Dirt {
		t.Fatalf("expected column under lava to stay dirt, got %v", got)
	}
	if got := lvl.Block(2, 3, 0); got != world.Dirt {
		t.Fatalf("expected out of range height to be skipped, got %v", got)
	}
}

func TestHeightmapSeedSensitivity(t *testing.T) {
	dim := world.Dimensions{Width: 16, Height: 64, Length: 16}
	a := newTestRun(dim, 1)
	b := newTestRun(dim, 2)
	a.createHeightmap()
	b.createHeightmap()

	for i := range a.heightmap {
		if a.heightmap[i] != b.heightmap[i] {
			return
		}
	}
	t.Fatalf("seeds 1 and 2 produced identical heightmaps")
}

func TestHeightmapMatchesReferenceColumns(t *testing.T) {
	r := newTestRun(world.Dimensions{Width: 64, Height: 64, Length: 64}, 12345)
	r.createHeightmap()

	tests := []struct {
		x, z, height int
	}{
		{0, 0, 35},
		{32, 32, 36},
		{63, 0, 31},
		{0, 63, 29},
		{17, 45, 29},
		{50, 9, 29},
		{63, 63, 37},
	}
	for _, tt := range tests {
		if got := r.height(tt.x, tt.z); got != tt.height {
			t.Fatalf("height at (%d,%d) = %d, expected %d", tt.x, tt.z, got, tt.height)
		}
	}
}
