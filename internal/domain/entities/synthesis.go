package entities

import (
	"time"
)

// SynthesisResult is the cross-room collective artifact produced for
// one dialogue. A new synthesis supersedes the previous one entirely;
// results are never merged.
type SynthesisResult struct {
	DialogueID      string    `json:"dialogue_id"`
	Synthesis       string    `json:"synthesis"`
	Themes          []string  `json:"themes"`
	Insights        []string  `json:"insights"`
	RoomCount       int       `json:"room_count"`
	ActiveRoomCount int       `json:"active_room_count"`
	Stage           Stage     `json:"stage"`
	GeneratedAt     time.Time `json:"generated_at"`

	// Error is set when generation failed; the partial counts gathered
	// before the failure are still populated. Synthesis failures are
	// observable data, not exceptions.
	Error string `json:"error,omitempty"`
}
