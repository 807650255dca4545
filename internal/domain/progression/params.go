package progression

// Params defines all configurable parameters for the progression engine.
type Params struct {
	// LevelBaseXP is the XP cost scale of the leveling curve.
	LevelBaseXP int

	// LevelExponent makes each level cost more XP than the last.
	// Values above 1 produce a super-linear (anti-grinding) curve.
	LevelExponent float64

	// MasteryIncrement is the fixed mastery delta applied when a
	// lesson is finished.
	MasteryIncrement int

	// MaxMastery is the per-topic mastery ceiling.
	MaxMastery int

	// HistoryLimit bounds the retained activity history.
	HistoryLimit int
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		LevelBaseXP:      1000,
		LevelExponent:    1.4,
		MasteryIncrement: 15,
		MaxMastery:       100,
		HistoryLimit:     50,
	}
}
