package magnet

// Result is the scoring outcome of a won run.
type Result struct {
	LevelID        int     `json:"level"`
	Stars          int     `json:"stars"` // rating, 1 to 3
	Elapsed        float64 `json:"elapsed"`
	StarsCollected int     `json:"stars_collected"`
	Coins          int     `json:"coins"`
	Gems           int     `json:"gems"`
	PolesUsed      int     `json:"poles_used"`
	HintsUsed      int     `json:"hints_used"`
	Attempts       int     `json:"attempts"`
	AllStars       bool    `json:"all_stars"`
	BeatPar        bool    `json:"beat_par"`
	NegativeOnly   bool    `json:"negative_only"`
}

// Rate returns the star rating of a completed run: 1 for finishing, 2 when
// every star collectible was gathered, 3 when a par time exists and was met.
// Meeting par overrides the all-stars rule rather than adding to it.
func Rate(l Level, starsCollected int, elapsed float64) int {
	stars := 1
	if starsCollected == l.StarCount() {
		stars = 2
	}
	if l.ParTime > 0 && elapsed <= l.ParTime {
		stars = 3
	}
	return stars
}

func (r *Run) buildResult() *Result {
	negOnly := len(r.poles) > 0
	for _, p := range r.poles {
		if p.Charge != Negative {
			negOnly = false
			break
		}
	}
	return &Result{
		LevelID:        r.level.ID,
		Stars:          Rate(r.level, r.tally.Stars, r.elapsed),
		Elapsed:        r.elapsed,
		StarsCollected: r.tally.Stars,
		Coins:          r.tally.Coins,
		Gems:           r.tally.Gems,
		PolesUsed:      len(r.poles),
		HintsUsed:      r.hintsUsed,
		Attempts:       r.attempts,
		AllStars:       r.tally.Stars == r.level.StarCount(),
		BeatPar:        r.level.ParTime > 0 && r.elapsed <= r.level.ParTime,
		NegativeOnly:   negOnly,
	}
}
