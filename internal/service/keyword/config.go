package keyword

// Config holds the empirically tuned constants of the keyword matcher.
// Changing any of them changes ranking behavior and must be re-validated
// against real dictionary data.
type Config struct {
	PrefixLen int
	PickTopK  int

	ConsonantExactWeight   float64
	BigramWeight           float64
	ConsonantOverlapWeight float64
	VowelOverlapWeight     float64

	// RejectPenalty is added to the score of gate-failing candidates kept
	// for diagnostics. Scores above RejectedScore switch sampling to
	// RejectedTemperature.
	RejectPenalty       float64
	RejectedScore       float64
	DefaultTemperature  float64
	RejectedTemperature float64

	DiversityLinear float64
	DiversityLog    float64
	DiversityCap    int64
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		PrefixLen:              5,
		PickTopK:               10,
		ConsonantExactWeight:   0.6,
		BigramWeight:           0.8,
		ConsonantOverlapWeight: 0.25,
		VowelOverlapWeight:     0.2,
		RejectPenalty:          1000,
		RejectedScore:          500,
		DefaultTemperature:     1.0,
		RejectedTemperature:    400,
		DiversityLinear:        0.15,
		DiversityLog:           0.12,
		DiversityCap:           200,
	}
}

// Options controls one Match call. Zero numeric fields fall back to the
// matcher's Config; use Matcher.DefaultOptions for a ready-made value.
type Options struct {
	// Limit caps the ranked list; zero means no cap.
	Limit           int
	IncludeRejected bool

	PrefixLen int
	Gate1Len  int
	Gate2Len  int

	PickOne  bool
	PickTopK int
	// Temperature fixes the sampling temperature; zero selects it
	// automatically from the best score.
	Temperature float64
}

func (o Options) withDefaults(cfg Config) Options {
	if o.PrefixLen <= 0 {
		o.PrefixLen = cfg.PrefixLen
	}
	if o.Gate1Len <= 0 {
		o.Gate1Len = max(1, o.PrefixLen-1)
	}
	if o.Gate2Len <= 0 {
		o.Gate2Len = o.PrefixLen
	}
	if o.PickTopK <= 0 {
		o.PickTopK = cfg.PickTopK
	}
	if o.Limit < 0 {
		o.Limit = 0
	}
	return o
}
