package terrain

// Noise is a seeded 2D coherent noise field.
type Noise interface {
	Calc(x, y float32) float32
}

// Gradient directions for the 16 hash values packed two bits per entry, each entry
// holding component+1.
const (
	gradXFlags int32 = 0x46552222
	gradYFlags int32 = 0x2222550A
)

// ImprovedNoise is a single octave of 2D gradient noise over a shuffled permutation table.
type ImprovedNoise struct {
	p [512]uint8
}

// NewImprovedNoise shuffles a fresh permutation table with 256 Range draws from rnd.
func NewImprovedNoise(rnd *Random) *ImprovedNoise {
	n := &ImprovedNoise{}
	n.init(rnd)
	return n
}

func (n *ImprovedNoise) init(rnd *Random) {
	for i := 0; i < 256; i++ {
		n.p[i] = uint8(i)
	}
	for i := 0; i < 256; i++ {
		j := rnd.Range(i, 256)
		n.p[i], n.p[j] = n.p[j], n.p[i]
	}
	copy(n.p[256:], n.p[:256])
}

// Calc samples the noise at (x, y). Products are rounded to float32 explicitly so the compiler
// cannot contract them into fused multiply-adds.
func (n *ImprovedNoise) Calc(x, y float32) float32 {
	xFloor := noiseFloor(x)
	yFloor := noiseFloor(y)
	X, Y := xFloor&0xFF, yFloor&0xFF
	x -= float32(xFloor)
	y -= float32(yFloor)

	u := fade(x)
	v := fade(y)
	A := int(n.p[X]) + Y
	B := int(n.p[X+1]) + Y

	g22 := grad(n.p[n.p[A]], x, y)
	g12 := grad(n.p[n.p[B]], x-1, y)
	c1 := g22 + float32(u*(g12-g22))

	g21 := grad(n.p[n.p[A+1]], x, y-1)
	g11 := grad(n.p[n.p[B+1]], x-1, y-1)
	c2 := g21 + float32(u*(g11-g21))

	return c1 + float32(v*(c2-c1))
}

// noiseFloor floors like the classic generator: a negative integral input still drops by one.
func noiseFloor(v float32) int {
	if v >= 0 {
		return int(v)
	}
	return int(v) - 1
}

func fade(t float32) float32 {
	return float32(t*t*t) * (float32(t*(float32(t*6)-15)) + 10)
}

func grad(hash uint8, x, y float32) float32 {
	shift := uint(hash&0xF) << 1
	gx := float32(((gradXFlags >> shift) & 3) - 1)
	gy := float32(((gradYFlags >> shift) & 3) - 1)
	return float32(gx*x) + float32(gy*y)
}

// OctaveNoise sums several independently shuffled ImprovedNoise fields. Each octave samples at
// half the frequency and twice the amplitude of the previous one, so the output range grows
// with the octave count.
type OctaveNoise struct {
	octaves []ImprovedNoise
}

// NewOctaveNoise builds the octaves in order, each consuming rnd in turn.
func NewOctaveNoise(rnd *Random, octaves int) *OctaveNoise {
	n := &OctaveNoise{octaves: make([]ImprovedNoise, octaves)}
	for i := range n.octaves {
		n.octaves[i].init(rnd)
	}
	return n
}

func (n *OctaveNoise) Calc(x, y float32) float32 {
	var sum float32
	amplitude, freq := float32(1), float32(1)
	for i := range n.octaves {
		sum += float32(n.octaves[i].Calc(x*freq, y*freq) * amplitude)
		amplitude *= 2
		freq *= 0.5
	}
	return sum
}

// CombinedNoise warps the x input of one octave field by the output of a second.
type CombinedNoise struct {
	noise1 *OctaveNoise
	noise2 *OctaveNoise
}

// NewCombinedNoise builds noise1 before noise2; the order is part of the seed contract.
func NewCombinedNoise(rnd *Random, octaves1, octaves2 int) *CombinedNoise {
	n1 := NewOctaveNoise(rnd, octaves1)
	n2 := NewOctaveNoise(rnd, octaves2)
	return &CombinedNoise{noise1: n1, noise2: n2}
}

func (n *CombinedNoise) Calc(x, y float32) float32 {
	offset := n.noise2.Calc(x, y)
	return n.noise1.Calc(x+offset, y)
}
