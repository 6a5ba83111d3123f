package data

// MaxLevel is the highest level a combatant can reach.
const MaxLevel = 50

// ExperienceTable holds cumulative experience required to reach each level.
// Index = level (0-51). Level 0 and 1 require 0 exp. Medium growth curve (level³).
var ExperienceTable = [MaxLevel + 2]int64{
	0,      // 0 (unused)
	0,      // 1
	8,      // 2
	27,     // 3
	64,     // 4
	125,    // 5
	216,    // 6
	343,    // 7
	512,    // 8
	729,    // 9
	1000,   // 10
	1331,   // 11
	1728,   // 12
	2197,   // 13
	2744,   // 14
	3375,   // 15
	4096,   // 16
	4913,   // 17
	5832,   // 18
	6859,   // 19
	8000,   // 20
	9261,   // 21
	10648,  // 22
	12167,  // 23
	13824,  // 24
	15625,  // 25
	17576,  // 26
	19683,  // 27
	21952,  // 28
	24389,  // 29
	27000,  // 30
	29791,  // 31
	32768,  // 32
	35937,  // 33
	39304,  // 34
	42875,  // 35
	46656,  // 36
	50653,  // 37
	54872,  // 38
	59319,  // 39
	64000,  // 40
	68921,  // 41
	74088,  // 42
	79507,  // 43
	85184,  // 44
	91125,  // 45
	97336,  // 46
	103823, // 47
	110592, // 48
	117649, // 49
	125000, // 50
	132651, // 51 (cap for level 50 → 51 overflow)
}

// ExpForLevel returns cumulative experience required to reach level.
// Returns 0 for level <= 1 and the cap for level > MaxLevel.
func ExpForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}
	if level > MaxLevel+1 {
		level = MaxLevel + 1
	}
	return ExperienceTable[level]
}

// LevelForExp returns the level matching cumulative exp.
// Scans upward from startLevel to the highest level whose threshold is <= exp.
func LevelForExp(exp int64, startLevel int) int {
	if startLevel < 1 {
		startLevel = 1
	}
	level := min(startLevel, MaxLevel)
	for level < MaxLevel {
		if ExperienceTable[level+1] > exp {
			break
		}
		level++
	}
	return level
}
