package dialogue

// InitializeDialogueRequest represents the request to start a dialogue
type InitializeDialogueRequest struct {
	DialogueID   string   `json:"dialogue_id" validate:"required,min=1,max=128"`
	Title        string   `json:"title" validate:"required,min=1,max=255"`
	Facilitator  string   `json:"facilitator,omitempty" validate:"omitempty,max=255"`
	Stage        string   `json:"stage,omitempty" validate:"omitempty,oneof=connect explore discover harvest"`
	Participants []string `json:"participants,omitempty"`

	// Optional threshold overrides; zero values fall back to server
	// defaults.
	MinTranscriptLength      int `json:"min_transcript_length,omitempty" validate:"omitempty,min=1"`
	SynthesisIntervalSeconds int `json:"synthesis_interval_seconds,omitempty" validate:"omitempty,min=1"`
	MaxRooms                 int `json:"max_rooms,omitempty" validate:"omitempty,min=1,max=100"`
}

// AddRoomRequest represents the request to attach a breakout room
type AddRoomRequest struct {
	RoomID         string   `json:"room_id" validate:"required,min=1,max=128"`
	ParticipantIDs []string `json:"participant_ids,omitempty"`
}

// UpdateTranscriptRequest carries one full-transcript update from the
// speech-to-text transport. Each update replaces the previous one.
type UpdateTranscriptRequest struct {
	Transcript string            `json:"transcript"`
	Speakers   map[string]string `json:"speakers,omitempty"`
}

// GenerateSynthesisRequest represents the request to synthesize now.
// ForceRefresh tolerates both boolean true and the string "true"; it
// is normalized to a strict boolean at this boundary.
type GenerateSynthesisRequest struct {
	ForceRefresh interface{} `json:"force_refresh,omitempty"`
}

// ContributionRequest represents one raw speech chunk from a
// participant.
type ContributionRequest struct {
	ParticipantID string `json:"participant_id" validate:"required,min=1,max=128"`
	DisplayName   string `json:"display_name,omitempty" validate:"omitempty,max=255"`
	Text          string `json:"text" validate:"required,min=1"`
	AudioQuality  string `json:"audio_quality,omitempty"`
}

// StartSessionRequest represents the request to open a participant
// session.
type StartSessionRequest struct {
	ParticipantID string `json:"participant_id" validate:"required,min=1,max=128"`
	DisplayName   string `json:"display_name,omitempty" validate:"omitempty,max=255"`
	Topic         string `json:"topic" validate:"required,min=1,max=255"`
	RoomID        string `json:"room_id,omitempty" validate:"omitempty,max=128"`
}
