package game

import "github.com/DuDupedrosa/memory-game-api/internal/models"

// VictoryPointByLevel is the single source of truth for how many points
// end a round. Easy boards have 3 pairs to race for, medium 5, hard 8.
// Unknown levels map to 0, which never satisfies the win check.
func VictoryPointByLevel(level int) int {
	switch level {
	case models.LevelEasy:
		return 3
	case models.LevelMedium:
		return 5
	case models.LevelHard:
		return 8
	default:
		return 0
	}
}
