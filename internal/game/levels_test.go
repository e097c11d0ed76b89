package game

import (
	"testing"

	"github.com/DuDupedrosa/memory-game-api/internal/models"
)

func TestVictoryPointByLevel(t *testing.T) {
	cases := []struct {
		level int
		want  int
	}{
		{models.LevelEasy, 3},
		{models.LevelMedium, 5},
		{models.LevelHard, 8},
		{0, 0},
		{4, 0},
		{-1, 0},
	}

	for _, tc := range cases {
		if got := VictoryPointByLevel(tc.level); got != tc.want {
			t.Errorf("VictoryPointByLevel(%d) = %d, want %d", tc.level, got, tc.want)
		}
	}
}
