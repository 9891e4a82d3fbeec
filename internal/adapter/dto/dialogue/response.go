package dialogue

import "time"

// DialogueResponse represents a dialogue in API responses
type DialogueResponse struct {
	DialogueID   string    `json:"dialogue_id"`
	Title        string    `json:"title"`
	Facilitator  string    `json:"facilitator,omitempty"`
	Stage        string    `json:"stage"`
	Status       string    `json:"status"`
	Participants []string  `json:"participants"`
	RoomCount    int       `json:"room_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// RoomResponse represents a breakout room in API responses
type RoomResponse struct {
	RoomID           string    `json:"room_id"`
	DialogueID       string    `json:"dialogue_id"`
	ParticipantIDs   []string  `json:"participant_ids"`
	TranscriptLength int       `json:"transcript_length"`
	Status           string    `json:"status"`
	LastActivity     time.Time `json:"last_activity"`
}

// UpdateTranscriptResponse reports whether the update was applied
type UpdateTranscriptResponse struct {
	Updated bool `json:"updated"`
}

// SynthesisResponse represents a synthesis result in API responses
type SynthesisResponse struct {
	DialogueID      string    `json:"dialogue_id"`
	Synthesis       string    `json:"synthesis"`
	Themes          []string  `json:"themes"`
	Insights        []string  `json:"insights"`
	RoomCount       int       `json:"room_count"`
	ActiveRoomCount int       `json:"active_room_count"`
	Stage           string    `json:"stage"`
	GeneratedAt     time.Time `json:"generated_at"`
	Error           string    `json:"error,omitempty"`
}

// RoomSummaryResponse is the per-room slice of a status response
type RoomSummaryResponse struct {
	RoomID           string    `json:"room_id"`
	ParticipantCount int       `json:"participant_count"`
	TranscriptLength int       `json:"transcript_length"`
	LastActivity     time.Time `json:"last_activity"`
	Status           string    `json:"status"`
}

// ThemeCountResponse is one theme tally entry
type ThemeCountResponse struct {
	Theme string `json:"theme"`
	Count int    `json:"count"`
}

// StatusResponse represents a dialogue status snapshot
type StatusResponse struct {
	DialogueID             string                `json:"dialogue_id"`
	Title                  string                `json:"title"`
	Stage                  string                `json:"stage"`
	Status                 string                `json:"status"`
	RoomCount              int                   `json:"room_count"`
	ParticipantCount       int                   `json:"participant_count"`
	ActiveParticipantCount int                   `json:"active_participant_count"`
	Rooms                  []RoomSummaryResponse `json:"rooms"`
	TopThemes              []ThemeCountResponse  `json:"top_themes"`
	HasSynthesis           bool                  `json:"has_synthesis"`
	LastSynthesisAt        *time.Time            `json:"last_synthesis_at,omitempty"`
}

// ContributionResponse represents one processed contribution
type ContributionResponse struct {
	ID                 string    `json:"id"`
	ParticipantID      string    `json:"participant_id"`
	Timestamp          time.Time `json:"timestamp"`
	EnhancedTranscript string    `json:"enhanced_transcript"`
	WordCount          int       `json:"word_count"`
	Themes             []string  `json:"themes"`
	Sentiment          string    `json:"sentiment"`
	KeyPoints          []string  `json:"key_points"`
	Error              string    `json:"error,omitempty"`
}

// JourneyResponse represents a participant's lifetime aggregate
type JourneyResponse struct {
	ParticipantID               string         `json:"participant_id"`
	TotalContributions          int            `json:"total_contributions"`
	TotalWords                  int            `json:"total_words"`
	AverageWordsPerContribution float64        `json:"average_words_per_contribution"`
	Themes                      map[string]int `json:"themes"`
	SessionCount                int            `json:"session_count"`
}
