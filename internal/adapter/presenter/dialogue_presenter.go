package presenter

import (
	"time"

	"github.com/dialogueworks/dialogue-facilitator/internal/adapter/dto/dialogue"
	"github.com/dialogueworks/dialogue-facilitator/internal/domain/entities"
)

// ToDialogueResponse converts a dialogue entity to its API shape
func ToDialogueResponse(d *entities.Dialogue) *dialogue.DialogueResponse {
	return &dialogue.DialogueResponse{
		DialogueID:   d.ID,
		Title:        d.Title,
		Facilitator:  d.Facilitator,
		Stage:        string(d.Stage),
		Status:       d.Status,
		Participants: d.Participants,
		RoomCount:    len(d.Rooms),
		CreatedAt:    d.CreatedAt,
	}
}

// ToRoomResponse converts a room entity to its API shape
func ToRoomResponse(r *entities.RoomState) *dialogue.RoomResponse {
	return &dialogue.RoomResponse{
		RoomID:           r.ID,
		DialogueID:       r.DialogueID,
		ParticipantIDs:   r.ParticipantIDs,
		TranscriptLength: len(r.Transcript),
		Status:           r.Status,
		LastActivity:     r.LastActivity,
	}
}

// ToSynthesisResponse converts a synthesis result to its API shape
func ToSynthesisResponse(s *entities.SynthesisResult) *dialogue.SynthesisResponse {
	return &dialogue.SynthesisResponse{
		DialogueID:      s.DialogueID,
		Synthesis:       s.Synthesis,
		Themes:          s.Themes,
		Insights:        s.Insights,
		RoomCount:       s.RoomCount,
		ActiveRoomCount: s.ActiveRoomCount,
		Stage:           string(s.Stage),
		GeneratedAt:     s.GeneratedAt,
		Error:           s.Error,
	}
}

// ToStatusResponse converts a status snapshot to its API shape
func ToStatusResponse(s *entities.StatusSnapshot) *dialogue.StatusResponse {
	rooms := make([]dialogue.RoomSummaryResponse, 0, len(s.Rooms))
	for _, room := range s.Rooms {
		rooms = append(rooms, dialogue.RoomSummaryResponse{
			RoomID:           room.ID,
			ParticipantCount: room.ParticipantCount,
			TranscriptLength: room.TranscriptLength,
			LastActivity:     room.LastActivity,
			Status:           room.Status,
		})
	}

	themes := make([]dialogue.ThemeCountResponse, 0, len(s.TopThemes))
	for _, theme := range s.TopThemes {
		themes = append(themes, dialogue.ThemeCountResponse{
			Theme: theme.Theme,
			Count: theme.Count,
		})
	}

	var lastSynthesis *time.Time
	if !s.LastSynthesisAt.IsZero() {
		t := s.LastSynthesisAt
		lastSynthesis = &t
	}

	return &dialogue.StatusResponse{
		DialogueID:             s.DialogueID,
		Title:                  s.Title,
		Stage:                  string(s.Stage),
		Status:                 s.Status,
		RoomCount:              s.RoomCount,
		ParticipantCount:       s.ParticipantCount,
		ActiveParticipantCount: s.ActiveParticipantCount,
		Rooms:                  rooms,
		TopThemes:              themes,
		HasSynthesis:           s.HasSynthesis,
		LastSynthesisAt:        lastSynthesis,
	}
}

// ToContributionResponse converts a contribution to its API shape
func ToContributionResponse(participantID string, c entities.Contribution) *dialogue.ContributionResponse {
	return &dialogue.ContributionResponse{
		ID:                 c.ID.String(),
		ParticipantID:      participantID,
		Timestamp:          c.Timestamp,
		EnhancedTranscript: c.EnhancedTranscript,
		WordCount:          c.WordCount,
		Themes:             c.Themes,
		Sentiment:          string(c.Sentiment),
		KeyPoints:          c.KeyPoints,
		Error:              c.Error,
	}
}

// ToJourneyResponse converts a journey aggregate to its API shape
func ToJourneyResponse(participantID string, j *entities.Journey) *dialogue.JourneyResponse {
	return &dialogue.JourneyResponse{
		ParticipantID:               participantID,
		TotalContributions:          j.TotalContributions,
		TotalWords:                  j.TotalWords,
		AverageWordsPerContribution: j.AverageWordsPerContribution(),
		Themes:                      j.Themes,
		SessionCount:                j.SessionCount,
	}
}
