package terrain

import (
	"time"

	"github.com/sirupsen/logrus"

	"voxelworld/internal/world"
)

// Stage names reported through Progress.
const (
	StageHeightmap = "Building heightmap"
	StageFillMap   = "Filling map"
	StageStrata    = "Creating strata"
	StageCaves     = "Carving caves"
	StageCoal      = "Carving coal ore"
	StageIron      = "Carving iron ore"
	StageGold      = "Carving gold ore"
	StageEdgeWater = "Flooding edge water"
	StageWater     = "Flooding water"
	StageLava      = "Flooding lava"
	StageSurface   = "Creating surface"
	StageFlowers   = "Planting flowers"
	StageMushrooms = "Planting mushrooms"
	StageTrees     = "Planting trees"
	StageFlatAir   = "Setting air blocks"
	StageFlatDirt  = "Setting dirt blocks"
	StageFlatGrass = "Setting grass blocks"
)

// Params selects the size and seed of a level to generate.
type Params struct {
	world.Dimensions
	Seed int32
	// Winter is carried through to callers that post-process snowy levels; the generators
	// here do not read it.
	Winter bool
}

// Validate reports dimensions that cannot be generated. Generators do not call it.
func (p Params) Validate() error {
	return p.Dimensions.Validate()
}

// Generator produces a complete level from Params. Generate runs to completion on the calling
// goroutine and returns a level owned by the caller; Progress may be polled from elsewhere
// while it runs. Invalid dimensions panic.
type Generator interface {
	Name() string
	Generate(p Params) *world.Level
	Progress() *Progress
}

// NotchyGenerator reproduces the classic survival-test terrain: noise heightmap, stone and
// dirt strata, worm caves, ore veins, flooded oceans and lava pools, beaches, and flora.
type NotchyGenerator struct {
	progress Progress
	log      logrus.FieldLogger
}

func NewNotchyGenerator(logger logrus.FieldLogger) *NotchyGenerator {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &NotchyGenerator{log: logger.WithField("generator", NotchyName)}
}

func (g *NotchyGenerator) Name() string        { return NotchyName }
func (g *NotchyGenerator) Progress() *Progress { return &g.progress }

// Generate runs every stage in order against a single Random seeded from p.Seed.
func (g *NotchyGenerator) Generate(p Params) *world.Level {
	start := time.Now()
	g.progress.reset()

	r := &notchyRun{
		level:      world.NewLevel(p.Dimensions),
		heightmap:  make([]int, p.Width*p.Length),
		rnd:        NewRandom(p.Seed),
		waterLevel: p.Height / 2,
		minHeight:  p.Height,
		progress:   &g.progress,
		log:        g.log,
	}
	r.blocks = r.level.Blocks

	r.createHeightmap()
	r.createStrata()
	r.carveCaves()
	for _, ore := range oreVeins {
		r.carveOreVeins(ore)
	}
	r.floodWaterBorders()
	r.floodWater()
	r.floodLava()
	r.createSurface()
	r.plantFlowers()
	r.plantMushrooms()
	r.plantTrees()

	g.progress.finish()
	g.log.WithFields(logrus.Fields{
		"width":   p.Width,
		"height":  p.Height,
		"length":  p.Length,
		"seed":    p.Seed,
		"elapsed": time.Since(start),
	}).Info("level generated")
	return r.level
}

// notchyRun is the transient state of one generation. The heightmap is written once by
// createHeightmap and only read afterwards.
type notchyRun struct {
	level      *world.Level
	blocks     []world.BlockID
	heightmap  []int
	rnd        *Random
	waterLevel int
	minHeight  int
	progress   *Progress
	log        logrus.FieldLogger
	// floodStack is reused across flood fills.
	floodStack []int
}

func (r *notchyRun) stage(name string) {
	r.progress.begin(name)
	r.log.WithField("stage", name).Debug("generation stage")
}

// step reports i of n as the stage fraction. n is never zero when a loop body runs.
func (r *notchyRun) step(i, n int) {
	r.progress.set(float32(i) / float32(n))
}

func (r *notchyRun) height(x, z int) int {
	return r.heightmap[z*r.level.Width+x]
}
