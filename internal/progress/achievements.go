package progress

// Achievement is a milestone measured against one counter of Stats.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Target      int
	counter     func(s *Stats, worldSize int) int
}

// AchievementProgress is an achievement with the player's current value.
type AchievementProgress struct {
	Achievement
	Progress int // min(counter, Target)
	Complete bool
}

var achievements = []Achievement{
	{"first_steps", "First Steps", "Complete your first level", 1,
		func(s *Stats, _ int) int { return s.LevelsCompleted }},
	{"star_collector", "Star Collector", "Collect 10 stars", 10,
		func(s *Stats, _ int) int { return s.TotalStars }},
	{"speed_demon", "Speed Demon", "Beat par time on 5 runs", 5,
		func(s *Stats, _ int) int { return s.ParTimeBeats }},
	{"perfectionist", "Perfectionist", "Get 3 stars with every star collected", 1,
		func(s *Stats, _ int) int { return s.PerfectRuns }},
	{"magnetic_master", "Magnetic Master", "Place 1000 poles", 1000,
		func(s *Stats, _ int) int { return s.PolesPlaced }},
	{"world_conqueror", "World Conqueror", "Complete every level of the first world", 1,
		func(s *Stats, worldSize int) int {
			if worldSize > 0 && s.LevelsCompleted >= worldSize {
				return 1
			}
			return 0
		}},
	{"creative_genius", "Creative Genius", "Win using only negative poles", 1,
		func(s *Stats, _ int) int { return s.NegativeOnlyWins }},
	{"minimalist", "Minimalist", "Win using a single pole", 1,
		func(s *Stats, _ int) int { return s.MinimalWins }},
}

// Achievements returns the catalog.
func Achievements() []Achievement {
	return append([]Achievement(nil), achievements...)
}

// Progress measures every achievement against the profile. worldSize is the
// number of levels in the first world.
func Progress(s *Stats, worldSize int) []AchievementProgress {
	out := make([]AchievementProgress, 0, len(achievements))
	for _, a := range achievements {
		v := a.counter(s, worldSize)
		if v > a.Target {
			v = a.Target
		}
		out = append(out, AchievementProgress{
			Achievement: a,
			Progress:    v,
			Complete:    v >= a.Target,
		})
	}
	return out
}
