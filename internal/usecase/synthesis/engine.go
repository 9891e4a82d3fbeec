package synthesis

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dialogueworks/dialogue-facilitator/internal/domain/entities"
	ucerrors "github.com/dialogueworks/dialogue-facilitator/internal/usecase/errors"
	"github.com/dialogueworks/dialogue-facilitator/pkg/ai"
	"github.com/dialogueworks/dialogue-facilitator/pkg/config"
)

// Placeholder synthesis texts for the expected "nothing to synthesize
// yet" steady states. These are normal results, not errors.
const (
	emptySynthesis = "There are no active conversations yet. The synthesis will appear once rooms start talking."
	quietSynthesis = "The conversations are just beginning. Themes will emerge as participants go deeper."
)

// Engine coordinates dialogues, their rooms, and cross-room synthesis.
// All state is process-memory only; a restart loses every dialogue.
//
// Overlapping synthesis calls for the same dialogue race with
// last-writer-wins semantics: the later completion overwrites the
// cached result with no staleness check.
type Engine struct {
	mu sync.Mutex

	client   ai.Client
	logger   *zap.Logger
	defaults config.SynthesisConfig

	active    map[string]*entities.Dialogue
	completed map[string]*entities.Dialogue
	results   map[string]*entities.SynthesisResult
}

// NewEngine creates an engine with no dialogues
func NewEngine(client ai.Client, defaults config.SynthesisConfig, logger *zap.Logger) *Engine {
	return &Engine{
		client:    client,
		logger:    logger,
		defaults:  defaults,
		active:    make(map[string]*entities.Dialogue),
		completed: make(map[string]*entities.Dialogue),
		results:   make(map[string]*entities.SynthesisResult),
	}
}

// InitializeOptions configures a new dialogue. Zero threshold values
// fall back to the engine defaults.
type InitializeOptions struct {
	Title               string
	Facilitator         string
	Stage               string
	Participants        []string
	MinTranscriptLength int
	SynthesisInterval   time.Duration
	MaxRoomsPerDialogue int
}

// InitializeDialogue registers a new active dialogue
func (e *Engine) InitializeDialogue(id string, opts InitializeOptions) (*entities.Dialogue, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.active[id]; ok {
		return nil, ucerrors.ErrDialogueAlreadyExists
	}
	if _, ok := e.completed[id]; ok {
		return nil, ucerrors.ErrDialogueAlreadyExists
	}

	cfg := entities.DialogueConfig{
		MinTranscriptLength: e.defaults.MinTranscriptLength,
		SynthesisInterval:   e.defaults.SynthesisInterval,
		MaxRoomsPerDialogue: e.defaults.MaxRoomsPerDialogue,
	}
	if opts.MinTranscriptLength > 0 {
		cfg.MinTranscriptLength = opts.MinTranscriptLength
	}
	if opts.SynthesisInterval > 0 {
		cfg.SynthesisInterval = opts.SynthesisInterval
	}
	if opts.MaxRoomsPerDialogue > 0 {
		cfg.MaxRoomsPerDialogue = opts.MaxRoomsPerDialogue
	}

	dialogue := entities.NewDialogue(id, opts.Title, opts.Facilitator, entities.ParseStage(opts.Stage), cfg)
	if len(opts.Participants) > 0 {
		dialogue.Participants = append(dialogue.Participants, opts.Participants...)
	}
	e.active[id] = dialogue

	e.logger.Info("dialogue initialized",
		zap.String("dialogue_id", id),
		zap.String("stage", string(dialogue.Stage)))
	return dialogue, nil
}

// AddRoom attaches a breakout room to an active dialogue
func (e *Engine) AddRoom(dialogueID, roomID string, participantIDs []string) (*entities.RoomState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	dialogue, ok := e.active[dialogueID]
	if !ok {
		if _, ended := e.completed[dialogueID]; ended {
			return nil, ucerrors.ErrDialogueEnded
		}
		return nil, ucerrors.ErrDialogueNotFound
	}
	if _, ok := dialogue.Rooms[roomID]; ok {
		return nil, ucerrors.ErrRoomAlreadyExists
	}
	if len(dialogue.Rooms) >= dialogue.Config.MaxRoomsPerDialogue {
		return nil, ucerrors.ErrMaxRoomsReached
	}

	room := entities.NewRoomState(roomID, dialogueID, participantIDs)
	dialogue.Rooms[roomID] = room
	for _, pid := range participantIDs {
		if !contains(dialogue.Participants, pid) {
			dialogue.Participants = append(dialogue.Participants, pid)
		}
	}

	e.logger.Info("room added",
		zap.String("dialogue_id", dialogueID),
		zap.String("room_id", roomID),
		zap.Int("room_count", len(dialogue.Rooms)))
	return room, nil
}

// UpdateRoomTranscript replaces a room's transcript (last write wins)
// and reports whether the room was known. Unknown ids return false
// rather than an error so a chatty transcript transport never has to
// handle failures. Each accepted update also evaluates the
// auto-synthesis interval; idle dialogues never synthesize on their
// own.
func (e *Engine) UpdateRoomTranscript(dialogueID, roomID, transcript string, speakers map[string]string) bool {
	e.mu.Lock()

	dialogue, ok := e.active[dialogueID]
	if !ok {
		e.mu.Unlock()
		return false
	}
	room, ok := dialogue.Rooms[roomID]
	if !ok || room.Status == entities.RoomStatusClosed {
		e.mu.Unlock()
		return false
	}

	room.UpdateTranscript(transcript, speakers)
	due := e.synthesisDueLocked(dialogue)
	e.mu.Unlock()

	if due {
		go func() {
			if _, err := e.GenerateSynthesis(context.Background(), dialogueID, false); err != nil {
				e.logger.Warn("auto-synthesis failed",
					zap.String("dialogue_id", dialogueID),
					zap.Error(err))
			}
		}()
	}
	return true
}

// synthesisDueLocked checks the interval against the last synthesis
// (or creation time before the first one).
func (e *Engine) synthesisDueLocked(dialogue *entities.Dialogue) bool {
	since := dialogue.LastSynthesisAt
	if since.IsZero() {
		since = dialogue.CreatedAt
	}
	return time.Since(since) >= dialogue.Config.SynthesisInterval
}

// GenerateSynthesis produces the cross-room collective synthesis for a
// dialogue. Only an unknown dialogue id is returned as an error; every
// failure past that point is encoded in the result's Error field so
// callers always receive a well-formed result.
func (e *Engine) GenerateSynthesis(ctx context.Context, dialogueID string, forceRefresh bool) (*entities.SynthesisResult, error) {
	e.mu.Lock()
	dialogue, ok := e.active[dialogueID]
	if !ok {
		dialogue, ok = e.completed[dialogueID]
	}
	if !ok {
		e.mu.Unlock()
		return nil, ucerrors.ErrDialogueNotFound
	}

	stage := dialogue.Stage
	minLength := dialogue.Config.MinTranscriptLength
	roomCount := len(dialogue.Rooms)
	transcripts := make(map[string]string, roomCount)
	for id, room := range dialogue.Rooms {
		if len(room.Transcript) >= minLength {
			transcripts[id] = room.Transcript
		}
	}
	e.mu.Unlock()

	result := &entities.SynthesisResult{
		DialogueID:      dialogueID,
		Stage:           stage,
		RoomCount:       roomCount,
		ActiveRoomCount: len(transcripts),
		GeneratedAt:     time.Now(),
		Themes:          []string{},
		Insights:        []string{},
	}

	if len(transcripts) == 0 {
		result.Synthesis = emptySynthesis
		e.storeResult(dialogueID, result, false)
		return result, nil
	}

	// Per-room theme extraction. A failed room is downgraded to an
	// inline marker so the rest of the synthesis proceeds.
	roomThemes := make(map[string]string, len(transcripts))
	usable := 0
	for id, transcript := range transcripts {
		themes, err := e.client.ExtractThemes(ctx, transcript, forceRefresh)
		if err != nil {
			e.logger.Warn("theme extraction failed for room",
				zap.String("dialogue_id", dialogueID),
				zap.String("room_id", id),
				zap.Error(err))
			roomThemes[id] = themeErrorMarker
			continue
		}
		roomThemes[id] = themes
		if themes != "" && themes != ai.ThemesTooShort {
			usable++
		}
	}

	if usable == 0 {
		result.Synthesis = quietSynthesis
		e.storeResult(dialogueID, result, false)
		return result, nil
	}

	prompt := buildPrompt(dialogue, roomThemes)
	text, err := e.client.GenerateResponse(ctx, prompt, nil)
	if err != nil {
		e.logger.Error("synthesis generation failed",
			zap.String("dialogue_id", dialogueID),
			zap.Error(err))
		result.Error = err.Error()
		e.storeResult(dialogueID, result, false)
		return result, nil
	}

	result.Synthesis = text
	result.Themes = parseThemes(text)
	result.Insights = parseInsights(text)
	result.GeneratedAt = time.Now()
	e.storeResult(dialogueID, result, true)

	e.logger.Info("synthesis generated",
		zap.String("dialogue_id", dialogueID),
		zap.Int("room_count", roomCount),
		zap.Int("active_room_count", result.ActiveRoomCount),
		zap.Int("theme_count", len(result.Themes)))
	return result, nil
}

// storeResult caches the result under the dialogue id, optionally
// stamping the synthesis time when a provider call actually happened.
func (e *Engine) storeResult(dialogueID string, result *entities.SynthesisResult, stamp bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.results[dialogueID] = result
	if !stamp {
		return
	}
	if dialogue, ok := e.active[dialogueID]; ok {
		dialogue.LastSynthesisAt = result.GeneratedAt
	} else if dialogue, ok := e.completed[dialogueID]; ok {
		dialogue.LastSynthesisAt = result.GeneratedAt
	}
}

// GetCurrentSynthesis returns the cached synthesis, or nil when none
// has been generated yet. Unknown dialogue ids also yield nil.
func (e *Engine) GetCurrentSynthesis(dialogueID string) *entities.SynthesisResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.results[dialogueID]
}

// GetDialogueStatus builds a read-only snapshot of a dialogue, or nil
// when the id is unknown. Theme tallies are layered on by the
// orchestrator; the engine only knows rooms and synthesis state.
func (e *Engine) GetDialogueStatus(dialogueID string) *entities.StatusSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	dialogue, ok := e.active[dialogueID]
	if !ok {
		dialogue, ok = e.completed[dialogueID]
	}
	if !ok {
		return nil
	}

	rooms := make([]entities.RoomSummary, 0, len(dialogue.Rooms))
	for _, room := range dialogue.Rooms {
		rooms = append(rooms, entities.RoomSummary{
			ID:               room.ID,
			ParticipantCount: len(room.ParticipantIDs),
			TranscriptLength: len(room.Transcript),
			LastActivity:     room.LastActivity,
			Status:           room.Status,
		})
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })

	_, hasSynthesis := e.results[dialogueID]
	return &entities.StatusSnapshot{
		DialogueID:       dialogue.ID,
		Title:            dialogue.Title,
		Stage:            dialogue.Stage,
		Status:           dialogue.Status,
		RoomCount:        len(dialogue.Rooms),
		ParticipantCount: len(dialogue.Participants),
		Rooms:            rooms,
		TopThemes:        []entities.ThemeCount{},
		HasSynthesis:     hasSynthesis,
		LastSynthesisAt:  dialogue.LastSynthesisAt,
	}
}

// EndDialogue forces a final cache-bypassing synthesis, marks the
// dialogue completed, and moves it out of the active set. The
// completed record and its final synthesis remain readable.
func (e *Engine) EndDialogue(ctx context.Context, dialogueID string) (*entities.SynthesisResult, error) {
	e.mu.Lock()
	if _, ok := e.active[dialogueID]; !ok {
		e.mu.Unlock()
		if _, ended := e.completed[dialogueID]; ended {
			return nil, ucerrors.ErrDialogueEnded
		}
		return nil, ucerrors.ErrDialogueNotFound
	}
	e.mu.Unlock()

	result, err := e.GenerateSynthesis(ctx, dialogueID, true)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	dialogue, ok := e.active[dialogueID]
	if !ok {
		return result, nil
	}
	dialogue.Status = entities.DialogueStatusCompleted
	for _, room := range dialogue.Rooms {
		room.Status = entities.RoomStatusClosed
	}
	delete(e.active, dialogueID)
	e.completed[dialogueID] = dialogue

	e.logger.Info("dialogue ended",
		zap.String("dialogue_id", dialogueID),
		zap.Int("room_count", len(dialogue.Rooms)))
	return result, nil
}

// ActiveDialogueIDs lists the ids of dialogues still running
func (e *Engine) ActiveDialogueIDs() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	ids := make([]string, 0, len(e.active))
	for id := range e.active {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
