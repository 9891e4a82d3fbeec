package orchestrator

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/dialogueworks/dialogue-facilitator/internal/domain/entities"
	"github.com/dialogueworks/dialogue-facilitator/internal/usecase/analysis"
	"github.com/dialogueworks/dialogue-facilitator/internal/usecase/participant"
	"github.com/dialogueworks/dialogue-facilitator/internal/usecase/synthesis"
)

// Orchestrator composes participant trackers and the synthesis engine
// into one consumable surface. It keeps a dialogue-wide theme tally
// updated additively on every processed contribution and projects it
// into status snapshots. The tally is a read-only projection, never a
// source of truth.
type Orchestrator struct {
	mu sync.Mutex

	engine     *synthesis.Engine
	enhancer   participant.Enhancer
	classifier analysis.Classifier
	logger     *zap.Logger

	topThemeCount int
	trackers      map[string]*participant.Tracker
	themeTally    map[string]int
}

// New creates an orchestrator with an empty tracker registry
func New(engine *synthesis.Engine, enhancer participant.Enhancer, classifier analysis.Classifier, topThemeCount int, logger *zap.Logger) *Orchestrator {
	if topThemeCount <= 0 {
		topThemeCount = 5
	}
	return &Orchestrator{
		engine:        engine,
		enhancer:      enhancer,
		classifier:    classifier,
		logger:        logger,
		topThemeCount: topThemeCount,
		trackers:      make(map[string]*participant.Tracker),
		themeTally:    make(map[string]int),
	}
}

// Engine exposes the underlying synthesis engine for lifecycle calls
func (o *Orchestrator) Engine() *synthesis.Engine {
	return o.engine
}

// Tracker returns the tracker for a participant, creating one on first
// sight.
func (o *Orchestrator) Tracker(participantID, displayName string) *participant.Tracker {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.trackerLocked(participantID, displayName)
}

func (o *Orchestrator) trackerLocked(participantID, displayName string) *participant.Tracker {
	if tracker, ok := o.trackers[participantID]; ok {
		return tracker
	}
	tracker := participant.NewTracker(participantID, displayName, o.enhancer, o.classifier, o.logger)
	o.trackers[participantID] = tracker
	return tracker
}

// ProcessContribution routes one speech chunk to the participant's
// tracker and folds its themes into the dialogue-wide tally. Like the
// tracker itself, this never returns an error.
func (o *Orchestrator) ProcessContribution(ctx context.Context, participantID, displayName, rawText string, metadata entities.ContributionMetadata) entities.Contribution {
	o.mu.Lock()
	tracker := o.trackerLocked(participantID, displayName)
	o.mu.Unlock()

	contribution := tracker.ProcessContribution(ctx, rawText, metadata)

	o.mu.Lock()
	for _, theme := range contribution.Themes {
		o.themeTally[theme]++
	}
	o.mu.Unlock()

	return contribution
}

// TopThemes returns the highest-count themes from the global tally,
// ties broken alphabetically.
func (o *Orchestrator) TopThemes() []entities.ThemeCount {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.topThemesLocked()
}

func (o *Orchestrator) topThemesLocked() []entities.ThemeCount {
	themes := make([]entities.ThemeCount, 0, len(o.themeTally))
	for theme, count := range o.themeTally {
		themes = append(themes, entities.ThemeCount{Theme: theme, Count: count})
	}
	sort.Slice(themes, func(i, j int) bool {
		if themes[i].Count != themes[j].Count {
			return themes[i].Count > themes[j].Count
		}
		return themes[i].Theme < themes[j].Theme
	})
	if len(themes) > o.topThemeCount {
		themes = themes[:o.topThemeCount]
	}
	return themes
}

// Snapshot builds the full point-in-time status projection for a
// dialogue: the engine's room view decorated with the top themes and
// the active participant count. Nil when the dialogue is unknown.
func (o *Orchestrator) Snapshot(dialogueID string) *entities.StatusSnapshot {
	snapshot := o.engine.GetDialogueStatus(dialogueID)
	if snapshot == nil {
		return nil
	}

	o.mu.Lock()
	snapshot.TopThemes = o.topThemesLocked()
	active := 0
	for _, tracker := range o.trackers {
		if tracker.CurrentSession() != nil {
			active++
		}
	}
	o.mu.Unlock()

	snapshot.ActiveParticipantCount = active
	return snapshot
}

// Journey returns a participant's lifetime aggregate, or nil when the
// participant has never contributed.
func (o *Orchestrator) Journey(participantID string) *entities.Journey {
	o.mu.Lock()
	tracker, ok := o.trackers[participantID]
	o.mu.Unlock()
	if !ok {
		return nil
	}
	journey := tracker.Journey()
	return &journey
}
