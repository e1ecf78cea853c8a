package domain

import (
	"strings"
	"time"
)

type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyHard      Difficulty = "hard"
	DifficultyDifficult Difficulty = "difficult"
	DifficultyPro       Difficulty = "pro"
	DifficultyUnknown   Difficulty = "unknown"
)

// Difficulties lists the selectable difficulties, easiest first.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyHard, DifficultyDifficult, DifficultyPro}
}

// ParseDifficulty is case-insensitive; anything unrecognised is DifficultyUnknown.
func ParseDifficulty(s string) Difficulty {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyEasy, DifficultyHard, DifficultyDifficult, DifficultyPro:
		return d
	default:
		return DifficultyUnknown
	}
}

func (d Difficulty) Valid() bool {
	return d != DifficultyUnknown && ParseDifficulty(string(d)) == d
}

// TimeLimit is the drawing time granted for one round.
func (d Difficulty) TimeLimit() time.Duration {
	switch d {
	case DifficultyHard:
		return 90 * time.Second
	case DifficultyDifficult:
		return 120 * time.Second
	case DifficultyPro:
		return 160 * time.Second
	default:
		return 60 * time.Second
	}
}
