package keyword

import (
	"hash/fnv"
	"math"
)

// fallbackSeed replaces a zero seed, which xorshift would never leave.
const fallbackSeed uint32 = 0x9e3779b9

// xorshift32 is Marsaglia's 32-bit xorshift generator.
type xorshift32 struct {
	state uint32
}

func newXorshift32(key string) *xorshift32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	seed := h.Sum32()
	if seed == 0 {
		seed = fallbackSeed
	}
	return &xorshift32{state: seed}
}

func (x *xorshift32) next() uint32 {
	s := x.state
	s ^= s << 13
	s ^= s >> 17
	s ^= s << 5
	x.state = s
	return s
}

// float64 returns a value in [0, 1).
func (x *xorshift32) float64() float64 {
	return float64(x.next()) / (float64(math.MaxUint32) + 1)
}

// diversityAdjustment is the score penalty for a candidate already picked
// count times.
func diversityAdjustment(cfg Config, count int64) float64 {
	if count <= 0 {
		return 0
	}
	capped := min(count, cfg.DiversityCap)
	return float64(count)*cfg.DiversityLinear + math.Log(1+cfg.DiversityLog*float64(capped))
}

// samplingWeights computes exp(-(score-best+adj)/temperature) for each
// ranked candidate. counts is keyed by candidate key.
func samplingWeights(cfg Config, ranked []Candidate, counts map[string]int64, temperature float64) []float64 {
	best := ranked[0].Score
	weights := make([]float64, len(ranked))
	for i, c := range ranked {
		adj := diversityAdjustment(cfg, counts[c.Key])
		weights[i] = math.Exp(-(c.Score - best + adj) / temperature)
	}
	return weights
}

// pickWeighted returns the index chosen by one draw from rng. A single
// candidate, or a degenerate weight vector, yields index 0.
func pickWeighted(weights []float64, rng *xorshift32) int {
	if len(weights) <= 1 {
		return 0
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return 0
	}

	r := rng.float64() * total
	for i, w := range weights {
		r -= w
		if r < 0 {
			return i
		}
	}
	return len(weights) - 1
}
