package domain

import "math"

const (
	MinLevel = 1
	MaxLevel = 99
)

// Cumulative experience required to reach each level, indexed by level
var experienceTable = buildExperienceTable()

func buildExperienceTable() [MaxLevel + 1]int64 {
	var table [MaxLevel + 1]int64

	points := 0.0
	for level := MinLevel + 1; level <= MaxLevel; level++ {
		previous := float64(level - 1)
		points += math.Floor(previous + 300.0*math.Pow(2.0, previous/7.0))
		table[level] = int64(math.Floor(points / 4.0))
	}

	return table
}

// XPForLevel returns the cumulative experience required to reach the given level.
// Levels below the minimum cost nothing, levels above the maximum cost as much as the maximum.
func XPForLevel(level int) int64 {
	if level <= MinLevel {
		return 0
	}
	if level > MaxLevel {
		return experienceTable[MaxLevel]
	}
	return experienceTable[level]
}

// XPForNextLevel returns the experience threshold of the level after the given one.
// At the maximum level the threshold plateaus at the maximum level's requirement.
func XPForNextLevel(level int) int64 {
	if level >= MaxLevel {
		return XPForLevel(MaxLevel)
	}
	return XPForLevel(level + 1)
}

func LevelForXP(experience int64) int {
	for level := MinLevel; level < MaxLevel; level++ {
		if experience < experienceTable[level+1] {
			return level
		}
	}
	return MaxLevel
}

// ProgressPercent is the floored percentage of the way from the current level to the next.
// Always 100 at the maximum level.
func ProgressPercent(experience int64, level int) int {
	if level >= MaxLevel {
		return 100
	}

	current := XPForLevel(level)
	next := XPForNextLevel(level)

	span := max(1, next-current)
	percent := int(math.Floor(100.0 * float64(experience-current) / float64(span)))

	return min(100, max(0, percent))
}
