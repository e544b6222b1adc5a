package terrain

import (
	"time"

	"github.com/sirupsen/logrus"

	"voxelworld/internal/world"
)

// FlatgrassGenerator builds a flat level: dirt up to one row below half height, a single grass
// row on top, and air above. The seed is ignored.
type FlatgrassGenerator struct {
	progress Progress
	log      logrus.FieldLogger
}

func NewFlatgrassGenerator(logger logrus.FieldLogger) *FlatgrassGenerator {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &FlatgrassGenerator{log: logger.WithField("generator", FlatgrassName)}
}

func (g *FlatgrassGenerator) Name() string        { return FlatgrassName }
func (g *FlatgrassGenerator) Progress() *Progress { return &g.progress }

func (g *FlatgrassGenerator) Generate(p Params) *world.Level {
	start := time.Now()
	g.progress.reset()
	lvl := world.NewLevel(p.Dimensions)

	half := p.Height / 2
	g.fillRows(lvl, StageFlatAir, half, lvl.MaxY(), world.Air)
	g.fillRows(lvl, StageFlatDirt, 0, half-2, world.Dirt)
	g.fillRows(lvl, StageFlatGrass, half-1, half-1, world.Grass)

	g.progress.finish()
	g.log.WithFields(logrus.Fields{
		"width":   p.Width,
		"height":  p.Height,
		"length":  p.Length,
		"elapsed": time.Since(start),
	}).Info("level generated")
	return lvl
}

// fillRows sets rows yBeg..yEnd to block. Negative bounds are clamped to 0, so a level one
// block tall still gets its single row filled.
func (g *FlatgrassGenerator) fillRows(lvl *world.Level, stage string, yBeg, yEnd int, block world.BlockID) {
	g.progress.begin(stage)
	g.log.WithField("stage", stage).Debug("generation stage")

	yBeg, yEnd = max(yBeg, 0), max(yEnd, 0)
	rows := yEnd - yBeg + 1
	for y := yBeg; y <= yEnd; y++ {
		lvl.FillLayer(y, block)
		g.progress.set(float32(y-yBeg) / float32(rows))
	}
}
