package terrain

// createHeightmap fills one surface elevation per column. The three noise fields are built in
// a fixed order before any column is sampled.
func (r *notchyRun) createHeightmap() {
	n1 := NewCombinedNoise(r.rnd, 8, 8)
	n2 := NewCombinedNoise(r.rnd, 8, 8)
	n3 := NewOctaveNoise(r.rnd, 6)

	r.stage(StageHeightmap)
	width, length := r.level.Width, r.level.Length
	i := 0
	for z := 0; z < length; z++ {
		r.step(z, length)
		for x := 0; x < width; x++ {
			r.heightmap[i] = r.columnHeight(n1, n2, n3, x, z)
			r.minHeight = min(r.minHeight, r.heightmap[i])
			i++
		}
	}
}

func (r *notchyRun) columnHeight(n1, n2, n3 Noise, x, z int) int {
	fx, fz := float32(x), float32(z)
	hLow := n1.Calc(fx*1.3, fz*1.3)/6 - 4
	height := hLow

	if n3.Calc(fx, fz) <= 0 {
		hHigh := n2.Calc(fx*1.3, fz*1.3)/5 + 6
		height = max(hLow, hHigh)
	}

	height *= 0.5
	if height < 0 {
		height *= 0.8
	}
	return int(height + float32(r.waterLevel))
}
