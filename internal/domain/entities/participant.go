package entities

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Session is one participant's active stretch of conversation inside
// a room. Sessions are superseded by the next StartSession call, not
// explicitly ended.
type Session struct {
	ID            uuid.UUID      `json:"id"`
	Topic         string         `json:"topic"`
	RoomID        string         `json:"room_id"`
	StartedAt     time.Time      `json:"started_at"`
	Contributions []Contribution `json:"contributions"`
	WordCount     int            `json:"word_count"`
}

// NewSession creates an empty session
func NewSession(topic, roomID string) *Session {
	return &Session{
		ID:            uuid.New(),
		Topic:         topic,
		RoomID:        roomID,
		StartedAt:     time.Now(),
		Contributions: make([]Contribution, 0),
	}
}

// Journey is a participant's lifetime aggregate across all sessions.
// Updated in the same step as each contribution append, never rolled
// back.
type Journey struct {
	TotalContributions int            `json:"total_contributions"`
	TotalWords         int            `json:"total_words"`
	Themes             map[string]int `json:"themes"`
	SessionCount       int            `json:"session_count"`
}

// NewJourney creates an empty journey aggregate
func NewJourney() *Journey {
	return &Journey{Themes: make(map[string]int)}
}

// Record folds one contribution into the aggregate
func (j *Journey) Record(c *Contribution) {
	j.TotalContributions++
	j.TotalWords += c.WordCount
	for _, theme := range c.Themes {
		j.Themes[theme]++
	}
}

// AverageWordsPerContribution returns the mean word count, rounded to
// one decimal place. Zero when no contributions have been recorded.
func (j *Journey) AverageWordsPerContribution() float64 {
	if j.TotalContributions == 0 {
		return 0
	}
	avg := float64(j.TotalWords) / float64(j.TotalContributions)
	return math.Round(avg*10) / 10
}
