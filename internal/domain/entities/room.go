package entities

import (
	"time"
)

// RoomStatus constants
const (
	RoomStatusActive = "active"
	RoomStatusClosed = "closed"
)

// RoomState holds one breakout room's accumulated conversation data.
// A room belongs to exactly one dialogue. Transcript updates use
// replace semantics: each update carries the full transcript so far
// and the last write wins.
type RoomState struct {
	ID             string            `json:"id"`
	DialogueID     string            `json:"dialogue_id"`
	ParticipantIDs []string          `json:"participant_ids"`
	Transcript     string            `json:"transcript"`
	Speakers       map[string]string `json:"speakers"`
	LastActivity   time.Time         `json:"last_activity"`
	Status         string            `json:"status"`
}

// NewRoomState creates an active room attached to the given dialogue
func NewRoomState(id, dialogueID string, participantIDs []string) *RoomState {
	if participantIDs == nil {
		participantIDs = make([]string, 0)
	}
	return &RoomState{
		ID:             id,
		DialogueID:     dialogueID,
		ParticipantIDs: participantIDs,
		Speakers:       make(map[string]string),
		LastActivity:   time.Now(),
		Status:         RoomStatusActive,
	}
}

// UpdateTranscript replaces the room's transcript and speaker map and
// stamps the activity time.
func (r *RoomState) UpdateTranscript(transcript string, speakers map[string]string) {
	r.Transcript = transcript
	if speakers != nil {
		r.Speakers = speakers
	}
	r.LastActivity = time.Now()
}
