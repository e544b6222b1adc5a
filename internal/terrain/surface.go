package terrain

import "voxelworld/internal/world"

// createSurface turns the top block of each column into grass, beach sand, or gravel under
// water. The heightmap is not updated afterwards even where caves or floods changed the column.
func (r *notchyRun) createSurface() {
	sandNoise := NewOctaveNoise(r.rnd, 8)
	gravelNoise := NewOctaveNoise(r.rnd, 8)

	r.stage(StageSurface)
	lvl := r.level
	oneY, maxY := lvl.OneY(), lvl.MaxY()
	i := 0
	for z := 0; z < lvl.Length; z++ {
		r.step(z, lvl.Length)
		for x := 0; x < lvl.Width; x++ {
			y := r.heightmap[i]
			i++
			if y < 0 || y >= lvl.Height {
				continue
			}

			index := lvl.Index(x, y, z)
			above := world.Air
			if y < maxY {
				above = r.blocks[index+oneY]
			}

			fx, fz := float32(x), float32(z)
			switch {
			case above == world.StillWater && gravelNoise.Calc(fx, fz) > 12:
				r.blocks[index] = world.Gravel
			case above == world.Air:
				if y <= r.waterLevel && sandNoise.Calc(fx, fz) > 8 {
					r.blocks[index] = world.Sand
				} else {
					r.blocks[index] = world.Grass
				}
			}
		}
	}
}
