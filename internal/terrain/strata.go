package terrain

import "voxelworld/internal/world"

// The thinnest dirt band the strata noise can produce is -14, so every row up to
// minHeight-14 is guaranteed stone.
const minDirtThickness = 14

// fillStrataFast lays the lava floor and the rows that are stone in every column, and returns
// the first row the per-column pass has to visit.
func (r *notchyRun) fillStrataFast() int {
	r.stage(StageFillMap)
	r.level.FillLayer(0, world.StillLava)

	stoneHeight := r.minHeight - minDirtThickness
	for y := 1; y <= stoneHeight; y++ {
		r.level.FillLayer(y, world.Stone)
		r.step(y, r.level.Height)
	}
	// Rows above stoneHeight are still air from allocation.
	return max(stoneHeight, 1)
}

func (r *notchyRun) createStrata() {
	minStoneY := r.fillStrataFast()
	n := NewOctaveNoise(r.rnd, 8)

	r.stage(StageStrata)
	lvl := r.level
	oneY, maxY := lvl.OneY(), lvl.MaxY()
	i := 0
	for z := 0; z < lvl.Length; z++ {
		r.step(z, lvl.Length)
		for x := 0; x < lvl.Width; x++ {
			dirtThickness := int(n.Calc(float32(x), float32(z))/24 - 4)
			dirtHeight := r.heightmap[i]
			i++
			stoneHeight := dirtHeight + dirtThickness

			stoneHeight = min(stoneHeight, maxY)
			dirtHeight = min(dirtHeight, maxY)

			index := lvl.Index(x, minStoneY, z)
			for y := minStoneY; y <= stoneHeight; y++ {
				r.blocks[index] = world.Stone
				index += oneY
			}

			stoneHeight = max(stoneHeight, 0)
			index = lvl.Index(x, stoneHeight+1, z)
			for y := stoneHeight + 1; y <= dirtHeight; y++ {
				r.blocks[index] = world.Dirt
				index += oneY
			}
		}
	}
}
