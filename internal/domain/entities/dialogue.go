package entities

import (
	"time"
)

// Stage is the lifecycle stage of a dialogue. The stage determines the
// analytical framing used when synthesizing across rooms.
type Stage string

const (
	StageConnect  Stage = "connect"
	StageExplore  Stage = "explore"
	StageDiscover Stage = "discover"
	StageHarvest  Stage = "harvest"
)

// ParseStage maps a raw string onto a known stage, defaulting to
// connect for anything unrecognized.
func ParseStage(s string) Stage {
	switch Stage(s) {
	case StageConnect, StageExplore, StageDiscover, StageHarvest:
		return Stage(s)
	default:
		return StageConnect
	}
}

// DialogueStatus constants
const (
	DialogueStatusActive    = "active"
	DialogueStatusCompleted = "completed"
)

// DialogueConfig holds per-dialogue synthesis tunables
type DialogueConfig struct {
	MinTranscriptLength int           `json:"min_transcript_length"`
	SynthesisInterval   time.Duration `json:"synthesis_interval"`
	MaxRoomsPerDialogue int           `json:"max_rooms_per_dialogue"`
}

// Dialogue is one top-level facilitated conversation event spanning a
// lifecycle stage and multiple breakout rooms.
type Dialogue struct {
	ID           string                `json:"id"`
	Title        string                `json:"title"`
	Facilitator  string                `json:"facilitator"`
	Stage        Stage                 `json:"stage"`
	Status       string                `json:"status"`
	Participants []string              `json:"participants"`
	Rooms        map[string]*RoomState `json:"rooms"`
	Config       DialogueConfig        `json:"config"`
	CreatedAt    time.Time             `json:"created_at"`

	// LastSynthesisAt is zero until the first synthesis completes.
	LastSynthesisAt time.Time `json:"last_synthesis_at,omitempty"`
}

// NewDialogue creates an active dialogue with no rooms
func NewDialogue(id, title, facilitator string, stage Stage, cfg DialogueConfig) *Dialogue {
	return &Dialogue{
		ID:           id,
		Title:        title,
		Facilitator:  facilitator,
		Stage:        stage,
		Status:       DialogueStatusActive,
		Participants: make([]string, 0),
		Rooms:        make(map[string]*RoomState),
		Config:       cfg,
		CreatedAt:    time.Now(),
	}
}

// RoomSummary is the per-room slice of a status snapshot
type RoomSummary struct {
	ID               string    `json:"id"`
	ParticipantCount int       `json:"participant_count"`
	TranscriptLength int       `json:"transcript_length"`
	LastActivity     time.Time `json:"last_activity"`
	Status           string    `json:"status"`
}

// StatusSnapshot is a point-in-time, read-only projection of a
// dialogue. It is never a source of truth.
type StatusSnapshot struct {
	DialogueID       string        `json:"dialogue_id"`
	Title            string        `json:"title"`
	Stage            Stage         `json:"stage"`
	Status           string        `json:"status"`
	RoomCount        int           `json:"room_count"`
	ParticipantCount int           `json:"participant_count"`

	// ActiveParticipantCount counts participants with a live session;
	// filled in by the orchestrator, zero when read from the engine
	// directly.
	ActiveParticipantCount int `json:"active_participant_count"`
	Rooms            []RoomSummary `json:"rooms"`
	TopThemes        []ThemeCount  `json:"top_themes"`
	HasSynthesis     bool          `json:"has_synthesis"`
	LastSynthesisAt  time.Time     `json:"last_synthesis_at,omitempty"`
}

// ThemeCount is one entry of the cross-dialogue theme tally
type ThemeCount struct {
	Theme string `json:"theme"`
	Count int    `json:"count"`
}
