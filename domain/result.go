package domain

import "time"

// DrawingResult is one scored drawing round, as persisted and as listed by
// the results endpoint.
type DrawingResult struct {
	Id          string         `json:"id"`
	RoomId      string         `json:"roomId"`
	Prompt      string         `json:"prompt"`
	Difficulty  Difficulty     `json:"difficulty"`
	Score       int            `json:"score"`
	Feedback    string         `json:"feedback"`
	Breakdown   map[string]int `json:"breakdown"`
	PlayerCount int            `json:"playerCount"`
	Fallback    bool           `json:"fallback"`
	CreatedAt   time.Time      `json:"createdAt"`
}
