package core

// LevelConfig is the static tuning for one level
type LevelConfig struct {
	Level     int
	BossHP    int
	BugCount  int
	BugSpeed  float64
	BossName  string
	TimeLimit int // seconds
}

// FinalLevel is the level whose boss ends the run
const FinalLevel = 3

// Levels is indexed by level number minus one.
var Levels = [FinalLevel]LevelConfig{
	{Level: 1, BossHP: 15, BugCount: 12, BugSpeed: 2, BossName: "Trojan.Win32", TimeLimit: 60},
	{Level: 2, BossHP: 40, BugCount: 25, BugSpeed: 3.5, BossName: "Worm.NetSky", TimeLimit: 90},
	{Level: 3, BossHP: 80, BugCount: 40, BugSpeed: 5, BossName: "Ransom.WannaCry", TimeLimit: 120},
}

// LevelFor returns the config for level n (1-based).
func LevelFor(n int) (LevelConfig, bool) {
	if n < 1 || n > FinalLevel {
		return LevelConfig{}, false
	}
	return Levels[n-1], true
}

// ReplenishKind is what the spawner tops up with on a level
func (c LevelConfig) ReplenishKind() Kind {
	if c.Level == FinalLevel {
		return KindStrong
	}
	return KindMedium
}
