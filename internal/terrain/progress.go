package terrain

import "go.uber.org/atomic"

// Progress is the polled status of a running generation: the current stage name and how far
// through that stage the generator is. The generator writes it; any goroutine may read it at
// any time. Reads return the latest or a slightly older value and never block the writer.
type Progress struct {
	stage    atomic.String
	fraction atomic.Float32
	done     atomic.Bool
}

func (p *Progress) Stage() string     { return p.stage.Load() }
func (p *Progress) Fraction() float32 { return p.fraction.Load() }
func (p *Progress) Done() bool        { return p.done.Load() }

// Snapshot reads all three fields. They are loaded independently, so the fraction may belong
// to the stage before the one reported.
func (p *Progress) Snapshot() (stage string, fraction float32, done bool) {
	return p.stage.Load(), p.fraction.Load(), p.done.Load()
}

func (p *Progress) reset() {
	p.done.Store(false)
	p.stage.Store("")
	p.fraction.Store(0)
}

func (p *Progress) begin(stage string) {
	p.stage.Store(stage)
	p.fraction.Store(0)
}

func (p *Progress) set(fraction float32) {
	p.fraction.Store(fraction)
}

func (p *Progress) finish() {
	p.done.Store(true)
}
