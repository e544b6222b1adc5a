package terrain

const (
	randomMultiplier = 0x5DEECE66D
	randomAddend     = 0xB
	randomMask       = 1<<48 - 1
)

// Random is the 48-bit linear congruential generator every generation stage draws from.
// Its output is bit-identical to java.util.Random for the same seed, which is what makes a
// seed reproduce the same level everywhere. A Random is not safe for concurrent use.
type Random struct {
	seed uint64
}

// NewRandom returns a generator seeded with seed.
func NewRandom(seed int32) *Random {
	r := &Random{}
	r.Seed(seed)
	return r
}

// Seed resets the generator state. The seed is sign-extended before scrambling.
func (r *Random) Seed(seed int32) {
	r.seed = (uint64(int64(seed)) ^ randomMultiplier) & randomMask
}

func (r *Random) advance() uint64 {
	r.seed = (r.seed*randomMultiplier + randomAddend) & randomMask
	return r.seed
}

// Next returns a value in [0, n). n must be positive.
func (r *Random) Next(n int) int {
	if n&-n == n {
		raw := int64(r.advance() >> 17)
		return int((int64(n) * raw) >> 31)
	}

	bound := int32(n)
	for {
		bits := int32(r.advance() >> 17)
		val := bits % bound
		// int32 overflow here is the rejection signal for the biased tail.
		if bits-val+(bound-1) >= 0 {
			return int(val)
		}
	}
}

// Range returns a value in [min, max).
func (r *Random) Range(min, max int) int {
	return min + r.Next(max-min)
}

// Float returns a value in [0, 1) built from the top 24 bits of one draw.
func (r *Random) Float() float32 {
	raw := int32(r.advance() >> 24)
	return float32(raw) / float32(1<<24)
}
