package participant

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dialogueworks/dialogue-facilitator/internal/domain/entities"
	"github.com/dialogueworks/dialogue-facilitator/internal/usecase/analysis"
)

// defaultTopic is assigned when a contribution arrives with no active
// session.
const defaultTopic = "General Discussion"

// Tracker owns one participant's current session and lifetime journey.
// ProcessContribution never returns an error: enhancement failures are
// recorded on the contribution itself so a caller looping over many
// participants is never interrupted by one bad call.
type Tracker struct {
	mu sync.Mutex

	participantID string
	displayName   string

	enhancer   Enhancer
	classifier analysis.Classifier
	logger     *zap.Logger

	session *entities.Session
	journey *entities.Journey
}

// NewTracker creates a tracker with no active session
func NewTracker(participantID, displayName string, enhancer Enhancer, classifier analysis.Classifier, logger *zap.Logger) *Tracker {
	return &Tracker{
		participantID: participantID,
		displayName:   displayName,
		enhancer:      enhancer,
		classifier:    classifier,
		logger:        logger,
		journey:       entities.NewJourney(),
	}
}

// ParticipantID returns the tracked participant's id
func (t *Tracker) ParticipantID() string {
	return t.participantID
}

// DisplayName returns the participant's display metadata
func (t *Tracker) DisplayName() string {
	return t.displayName
}

// StartSession begins a new session, superseding any current one.
// Sessions are never explicitly ended; the next StartSession replaces
// the previous session wholesale.
func (t *Tracker) StartSession(topic, roomID string) *entities.Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.startSessionLocked(topic, roomID)
}

func (t *Tracker) startSessionLocked(topic, roomID string) *entities.Session {
	t.session = entities.NewSession(topic, roomID)
	t.journey.SessionCount++
	t.logger.Info("session started",
		zap.String("participant_id", t.participantID),
		zap.String("topic", topic),
		zap.String("room_id", roomID))
	return t.session
}

// ProcessContribution runs one raw speech chunk through enhancement
// and classification and appends the resulting contribution to the
// current session and the journey aggregate. If no session is active
// a default one is started first. The returned contribution is an
// independent copy; mutating it does not affect stored state.
func (t *Tracker) ProcessContribution(ctx context.Context, rawText string, metadata entities.ContributionMetadata) entities.Contribution {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session == nil {
		t.startSessionLocked(defaultTopic, "")
	}

	contribution := entities.Contribution{
		ID:                 uuid.New(),
		Timestamp:          time.Now(),
		RawTranscript:      rawText,
		EnhancedTranscript: rawText,
		Metadata:           metadata,
	}

	enhanced, err := t.enhancer.Enhance(ctx, rawText)
	if err != nil {
		contribution.Error = err.Error()
		t.logger.Warn("transcript enhancement failed, using raw text",
			zap.String("participant_id", t.participantID),
			zap.Error(err))
	} else {
		contribution.EnhancedTranscript = enhanced.Enhanced
		if contribution.Metadata.Service == "" {
			contribution.Metadata.Service = enhanced.Service
		}
	}

	contribution.WordCount = len(strings.Fields(contribution.EnhancedTranscript))
	contribution.Themes = t.classifier.Themes(contribution.EnhancedTranscript)
	contribution.Sentiment = t.classifier.Sentiment(contribution.EnhancedTranscript)
	contribution.KeyPoints = t.classifier.KeyPoints(contribution.EnhancedTranscript)

	t.session.Contributions = append(t.session.Contributions, contribution.Clone())
	t.session.WordCount += contribution.WordCount
	t.journey.Record(&contribution)

	return contribution.Clone()
}

// CurrentSession returns a snapshot of the active session, or nil when
// no session has been started.
func (t *Tracker) CurrentSession() *entities.Session {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session == nil {
		return nil
	}
	snapshot := *t.session
	snapshot.Contributions = make([]entities.Contribution, 0, len(t.session.Contributions))
	for i := range t.session.Contributions {
		snapshot.Contributions = append(snapshot.Contributions, t.session.Contributions[i].Clone())
	}
	return &snapshot
}

// Journey returns a snapshot of the lifetime aggregate
func (t *Tracker) Journey() entities.Journey {
	t.mu.Lock()
	defer t.mu.Unlock()

	snapshot := *t.journey
	snapshot.Themes = make(map[string]int, len(t.journey.Themes))
	for theme, count := range t.journey.Themes {
		snapshot.Themes[theme] = count
	}
	return snapshot
}
