package terrain

import "voxelworld/internal/world"

// plantFlowers scatters patches of a single flower kind on grass. Every patch makes 10 short
// random walks of 5 steps from its centre and plants at each in-bounds step.
func (r *notchyRun) plantFlowers() {
	lvl := r.level
	oneY := lvl.OneY()
	count := lvl.Width * lvl.Length / 3000
	r.stage(StageFlowers)
	for i := 0; i < count; i++ {
		r.step(i, count)

		block := world.Dandelion + world.BlockID(r.rnd.Next(2))
		patchX := r.rnd.Next(lvl.Width)
		patchZ := r.rnd.Next(lvl.Length)

		for j := 0; j < 10; j++ {
			x, z := patchX, patchZ
			for k := 0; k < 5; k++ {
				x += r.rnd.Next(6) - r.rnd.Next(6)
				z += r.rnd.Next(6) - r.rnd.Next(6)

				if !lvl.ContainsXZ(x, z) {
					continue
				}
				y := r.height(x, z) + 1
				if y <= 0 || y >= lvl.Height {
					continue
				}

				index := lvl.Index(x, y, z)
				if r.blocks[index] == world.Air && r.blocks[index-oneY] == world.Grass {
					r.blocks[index] = block
				}
			}
		}
	}
}

// plantMushrooms scatters patches of one mushroom kind on cave floors. A patch keeps its
// random height for every walk and only plants below the column's surface.
func (r *notchyRun) plantMushrooms() {
	lvl := r.level
	oneY := lvl.OneY()
	count := lvl.Volume() / 2000
	r.stage(StageMushrooms)
	for i := 0; i < count; i++ {
		r.step(i, count)

		block := world.BrownMushroom + world.BlockID(r.rnd.Next(2))
		patchX := r.rnd.Next(lvl.Width)
		patchY := r.rnd.Next(lvl.Height)
		patchZ := r.rnd.Next(lvl.Length)

		for j := 0; j < 20; j++ {
			x, y, z := patchX, patchY, patchZ
			for k := 0; k < 5; k++ {
				x += r.rnd.Next(6) - r.rnd.Next(6)
				z += r.rnd.Next(6) - r.rnd.Next(6)

				if !lvl.ContainsXZ(x, z) {
					continue
				}
				if y >= r.height(x, z)-1 {
					continue
				}

				// Row 0 is always lava, so the guard never skips a valid spot.
				index := lvl.Index(x, y, z)
				if y > 0 && r.blocks[index] == world.Air && r.blocks[index-oneY] == world.Stone {
					r.blocks[index] = block
				}
			}
		}
	}
}
