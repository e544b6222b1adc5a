package terrain

import "voxelworld/internal/world"

// TreePlacement is one block of a grown tree.
type TreePlacement struct {
	world.BlockCoord
	Block world.BlockID
}

// CanGrowTree reports whether a tree of the given height fits with its base at (x, y, z): the
// trunk rows need a clear 3x3 of Air, the canopy rows a clear 5x5, all inside the level.
func CanGrowTree(lvl *world.Level, x, y, z, height int) bool {
	baseHeight := height - 4

	for yy := y; yy < y+baseHeight; yy++ {
		if !clearSquare(lvl, x, yy, z, 1) {
			return false
		}
	}
	for yy := y + baseHeight; yy < y+height; yy++ {
		if !clearSquare(lvl, x, yy, z, 2) {
			return false
		}
	}
	return true
}

func clearSquare(lvl *world.Level, x, y, z, radius int) bool {
	for zz := z - radius; zz <= z+radius; zz++ {
		for xx := x - radius; xx <= x+radius; xx++ {
			if !lvl.Contains(xx, y, zz) {
				return false
			}
			if lvl.Blocks[lvl.Index(xx, y, zz)] != world.Air {
				return false
			}
		}
	}
	return true
}

// GrowTree appends the blocks of a classic oak to dst and returns it: two 5x5 leaf rows with
// randomly trimmed corners, two 3x3 rows above them shaped as a plus with random corners on the
// lower one, and a log trunk one block shorter than the tree. Leaves come first so the trunk
// overwrites them when the placements are applied in order.
func GrowTree(rnd *Random, x, y, z, height int, dst []TreePlacement) []TreePlacement {
	place := func(px, py, pz int, block world.BlockID) {
		dst = append(dst, TreePlacement{BlockCoord: world.BlockCoord{X: px, Y: py, Z: pz}, Block: block})
	}
	topStart := y + height - 2

	yy := y + height - 4
	for ; yy < topStart; yy++ {
		for zz := -2; zz <= 2; zz++ {
			for xx := -2; xx <= 2; xx++ {
				if abs(xx) == 2 && abs(zz) == 2 {
					if rnd.Float() >= 0.5 {
						place(x+xx, yy, z+zz, world.Leaves)
					}
				} else {
					place(x+xx, yy, z+zz, world.Leaves)
				}
			}
		}
	}

	for ; yy < y+height; yy++ {
		for zz := -1; zz <= 1; zz++ {
			for xx := -1; xx <= 1; xx++ {
				if xx == 0 || zz == 0 {
					place(x+xx, yy, z+zz, world.Leaves)
				} else if yy == topStart && rnd.Float() >= 0.5 {
					place(x+xx, yy, z+zz, world.Leaves)
				}
			}
		}
	}

	for i := 0; i < height-1; i++ {
		place(x, y+i, z, world.Log)
	}
	return dst
}

// plantTrees scatters tree patches. Each patch makes 20 walks of 20 steps, and a step only
// tries to grow a tree one time in four, on grass, where CanGrowTree allows it.
func (r *notchyRun) plantTrees() {
	lvl := r.level
	oneY := lvl.OneY()
	count := lvl.Width * lvl.Length / 4000
	placements := make([]TreePlacement, 0, 64)

	r.stage(StageTrees)
	for i := 0; i < count; i++ {
		r.step(i, count)

		patchX := r.rnd.Next(lvl.Width)
		patchZ := r.rnd.Next(lvl.Length)

		for j := 0; j < 20; j++ {
			x, z := patchX, patchZ
			for k := 0; k < 20; k++ {
				x += r.rnd.Next(6) - r.rnd.Next(6)
				z += r.rnd.Next(6) - r.rnd.Next(6)

				if !lvl.ContainsXZ(x, z) || r.rnd.Float() >= 0.25 {
					continue
				}
				y := r.height(x, z) + 1
				if y >= lvl.Height {
					continue
				}
				treeHeight := 5 + r.rnd.Next(3)

				index := lvl.Index(x, y, z)
				under := world.Air
				if y > 0 {
					under = r.blocks[index-oneY]
				}
				if under != world.Grass || !CanGrowTree(lvl, x, y, z, treeHeight) {
					continue
				}

				placements = GrowTree(r.rnd, x, y, z, treeHeight, placements[:0])
				for _, p := range placements {
					r.blocks[lvl.Index(p.X, p.Y, p.Z)] = p.Block
				}
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
