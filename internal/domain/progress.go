package domain

// NeverObserved marks a boss whose kill count has not been seen since startup
const NeverObserved int64 = -1

// Progress is the progression record of a single boss.
// Level is always derived from XP, never stored independently.
type Progress struct {
	Boss          Boss
	XP            int64
	Level         int
	LastSeenCount int64
}

func NewProgress(boss Boss, experience int64) Progress {
	return Progress{
		Boss:          boss,
		XP:            experience,
		Level:         LevelForXP(experience),
		LastSeenCount: NeverObserved,
	}
}

// UpdateResult describes the outcome of applying an observed kill count
type UpdateResult struct {
	Boss        Boss
	GainedUnits int64
	GainedXP    int64
	TotalXP     int64
	OldLevel    int
	NewLevel    int
	LeveledUp   bool
}

// Gained reports whether the update increased progression
func (r UpdateResult) Gained() bool {
	return r.GainedUnits > 0
}

// BossDetail is the data behind the detail card of a single boss
type BossDetail struct {
	Progress        Progress
	CurrentLevelXP  int64
	NextLevelXP     int64
	ProgressPercent int
}

func NewBossDetail(progress Progress) BossDetail {
	return BossDetail{
		Progress:        progress,
		CurrentLevelXP:  XPForLevel(progress.Level),
		NextLevelXP:     XPForNextLevel(progress.Level),
		ProgressPercent: ProgressPercent(progress.XP, progress.Level),
	}
}

// Celebration is a level-up worth celebrating
type Celebration struct {
	Boss  Boss
	Level int
}

// IsMaxLevel reports whether the celebration is for the designated threshold level
func (c Celebration) IsMaxLevel() bool {
	return c.Level >= MaxLevel
}
