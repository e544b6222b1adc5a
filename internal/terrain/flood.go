package terrain

import "voxelworld/internal/world"

// floodFill converts the Air region connected to index into block. It spreads sideways and
// downward but never upward, so a fluid poured at some row stays at or below it. Negative
// indexes are ignored.
func (r *notchyRun) floodFill(index int, block world.BlockID) {
	if index < 0 {
		return
	}
	lvl := r.level
	width, length, oneY := lvl.Width, lvl.Length, lvl.OneY()
	maxX, maxZ := lvl.MaxX(), lvl.MaxZ()

	stack := r.floodStack[:0]
	stack = append(stack, index)
	for len(stack) > 0 {
		index = stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if r.blocks[index] != world.Air {
			continue
		}
		r.blocks[index] = block

		x := index % width
		y := index / oneY
		z := (index / width) % length

		if x > 0 {
			stack = append(stack, index-1)
		}
		if x < maxX {
			stack = append(stack, index+1)
		}
		if z > 0 {
			stack = append(stack, index-width)
		}
		if z < maxZ {
			stack = append(stack, index+width)
		}
		if y > 0 {
			stack = append(stack, index-oneY)
		}
	}
	r.floodStack = stack
}

// floodWaterBorders pours water one row below sea level along all four edges, so oceans
// reach inland wherever the terrain dips below the water line.
func (r *notchyRun) floodWaterBorders() {
	lvl := r.level
	waterY := r.waterLevel - 1
	r.stage(StageEdgeWater)

	index1 := lvl.Index(0, waterY, 0)
	index2 := lvl.Index(0, waterY, lvl.Length-1)
	for x := 0; x < lvl.Width; x++ {
		r.progress.set(float32(x) / float32(lvl.Width) * 0.5)
		r.floodFill(index1, world.StillWater)
		r.floodFill(index2, world.StillWater)
		index1++
		index2++
	}

	index1 = lvl.Index(0, waterY, 0)
	index2 = lvl.Index(lvl.Width-1, waterY, 0)
	for z := 0; z < lvl.Length; z++ {
		r.progress.set(0.5 + float32(z)/float32(lvl.Length)*0.5)
		r.floodFill(index1, world.StillWater)
		r.floodFill(index2, world.StillWater)
		index1 += lvl.Width
		index2 += lvl.Width
	}
}

// floodWater fills random underground pockets just below sea level.
func (r *notchyRun) floodWater() {
	lvl := r.level
	count := lvl.Width * lvl.Length / 800
	r.stage(StageWater)
	for i := 0; i < count; i++ {
		r.step(i, count)
		x := r.rnd.Next(lvl.Width)
		z := r.rnd.Next(lvl.Length)
		y := r.waterLevel - r.rnd.Range(1, 3)
		r.floodFill(lvl.Index(x, y, z), world.StillWater)
	}
}

// floodLava fills random pockets, biased towards the bottom of the level.
func (r *notchyRun) floodLava() {
	lvl := r.level
	count := lvl.Width * lvl.Length / 20000
	r.stage(StageLava)
	for i := 0; i < count; i++ {
		r.step(i, count)
		x := r.rnd.Next(lvl.Width)
		z := r.rnd.Next(lvl.Length)
		y := int(float32(r.waterLevel-3) * r.rnd.Float() * r.rnd.Float())
		r.floodFill(lvl.Index(x, y, z), world.StillLava)
	}
}
