package terrain

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxelworld/internal/world"
)

// OreVein describes one ore pass: how many veins a level gets, how long they run and how thick
// they are all scale with Abundance.
type OreVein struct {
	Stage     string
	Block     world.BlockID
	Abundance float32
}

// oreVeins are carved in this order after the caves.
var oreVeins = []OreVein{
	{Stage: StageCoal, Block: world.CoalOre, Abundance: 0.9},
	{Stage: StageIron, Block: world.IronOre, Abundance: 0.7},
	{Stage: StageGold, Block: world.GoldOre, Abundance: 0.5},
}

// worm is a random walker through the level. Every step moves one block along the heading
// (theta around the vertical axis, phi above the horizontal) and then lets the heading drift.
type worm struct {
	pos        mgl32.Vec3
	theta      float32
	deltaTheta float32
	phi        float32
	deltaPhi   float32
}

// startWorm draws a start cell inside the level.
func startWorm(rnd *Random, lvl *world.Level) worm {
	return worm{pos: mgl32.Vec3{
		float32(rnd.Next(lvl.Width)),
		float32(rnd.Next(lvl.Height)),
		float32(rnd.Next(lvl.Length)),
	}}
}

// aim draws the initial heading. Callers draw the walk length between startWorm and aim.
func (w *worm) aim(rnd *Random) {
	w.theta = rnd.Float() * 2 * pi32
	w.deltaTheta = 0
	w.phi = rnd.Float() * 2 * pi32
	w.deltaPhi = 0
}

func (w *worm) move() {
	cosPhi := cosF(w.phi)
	w.pos = w.pos.Add(mgl32.Vec3{
		float32(sinF(w.theta) * cosPhi),
		sinF(w.phi),
		float32(cosF(w.theta) * cosPhi),
	})
}

// steerCave turns the heading by the accumulated drift. Cave headings keep turning in one
// direction while deltaTheta has the same sign.
func (w *worm) steerCave(rnd *Random) {
	w.theta = w.theta + float32(w.deltaTheta*0.2)
	w.deltaTheta = float32(w.deltaTheta*0.9) + rnd.Float() - rnd.Float()
	w.phi = float32(w.phi*0.5) + float32(w.deltaPhi*0.25)
	w.deltaPhi = float32(w.deltaPhi*0.75) + rnd.Float() - rnd.Float()
}

// steerVein replaces theta with the drift instead of adding to it, which keeps ore veins close
// to a single compass direction.
func (w *worm) steerVein(rnd *Random) {
	w.theta = float32(w.deltaTheta * 0.2)
	w.deltaTheta = float32(w.deltaTheta*0.9) + rnd.Float() - rnd.Float()
	w.phi = float32(w.phi*0.5) + float32(w.deltaPhi*0.25)
	w.deltaPhi = float32(w.deltaPhi*0.9) + rnd.Float() - rnd.Float()
}

// taper is 0 at both ends of a walk and 1 in the middle.
func taper(step, length int) float32 {
	return sinF(float32(step) * pi32 / float32(length))
}

func (r *notchyRun) carveCaves() {
	lvl := r.level
	count := lvl.Volume() / 8192
	r.stage(StageCaves)
	for i := 0; i < count; i++ {
		r.step(i, count)

		w := startWorm(r.rnd, lvl)
		length := int(r.rnd.Float() * r.rnd.Float() * 200)
		w.aim(r.rnd)
		caveRadius := r.rnd.Float() * r.rnd.Float()

		for j := 0; j < length; j++ {
			w.move()
			w.steerCave(r.rnd)
			if r.rnd.Float() < 0.25 {
				continue
			}

			cenX := int(w.pos.X() + float32(float32(r.rnd.Next(4)-2)*0.2))
			cenY := int(w.pos.Y() + float32(float32(r.rnd.Next(4)-2)*0.2))
			cenZ := int(w.pos.Z() + float32(float32(r.rnd.Next(4)-2)*0.2))

			radius := float32(lvl.Height-cenY) / float32(lvl.Height)
			radius = 1.2 + float32((float32(radius*3.5)+1)*caveRadius)
			radius = radius * taper(j, length)
			r.fillOblateSpheroid(cenX, cenY, cenZ, radius, world.Air)
		}
	}
}

func (r *notchyRun) carveOreVeins(ore OreVein) {
	lvl := r.level
	count := int(float32(lvl.Volume()) * ore.Abundance / 16384)
	r.stage(ore.Stage)
	for i := 0; i < count; i++ {
		r.step(i, count)

		w := startWorm(r.rnd, lvl)
		length := int(r.rnd.Float() * r.rnd.Float() * 75 * ore.Abundance)
		w.aim(r.rnd)
		for j := 0; j < length; j++ {
			w.move()
			w.steerVein(r.rnd)

			radius := float32(ore.Abundance*taper(j, length)) + 1
			r.fillOblateSpheroid(int(w.pos.X()), int(w.pos.Y()), int(w.pos.Z()), radius, ore.Block)
		}
	}
}

// fillOblateSpheroid replaces Stone with block inside an ellipsoid squashed to half height
// around (x, y, z). Every other material is left alone.
func (r *notchyRun) fillOblateSpheroid(x, y, z int, radius float32, block world.BlockID) {
	lvl := r.level
	xBeg := floorF(max(float32(x)-radius, 0))
	xEnd := floorF(min(float32(x)+radius, float32(lvl.MaxX())))
	yBeg := floorF(max(float32(y)-radius, 0))
	yEnd := floorF(min(float32(y)+radius, float32(lvl.MaxY())))
	zBeg := floorF(max(float32(z)-radius, 0))
	zEnd := floorF(min(float32(z)+radius, float32(lvl.MaxZ())))

	radiusSq := radius * radius
	for yy := yBeg; yy <= yEnd; yy++ {
		dy := yy - y
		for zz := zBeg; zz <= zEnd; zz++ {
			dz := zz - z
			for xx := xBeg; xx <= xEnd; xx++ {
				dx := xx - x
				if float32(dx*dx+2*dy*dy+dz*dz) < radiusSq {
					index := lvl.Index(xx, yy, zz)
					if r.blocks[index] == world.Stone {
						r.blocks[index] = block
					}
				}
			}
		}
	}
}
