package orchestrator

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dialogueworks/dialogue-facilitator/internal/domain/entities"
	"github.com/dialogueworks/dialogue-facilitator/internal/usecase/analysis"
	"github.com/dialogueworks/dialogue-facilitator/internal/usecase/participant"
	"github.com/dialogueworks/dialogue-facilitator/internal/usecase/synthesis"
	"github.com/dialogueworks/dialogue-facilitator/pkg/ai"
	"github.com/dialogueworks/dialogue-facilitator/pkg/config"
)

type passthroughEnhancer struct{}

func (passthroughEnhancer) Enhance(_ context.Context, raw string) (participant.Enhancement, error) {
	return participant.Enhancement{Enhanced: raw, Service: "test"}, nil
}

type noopAI struct{}

func (noopAI) Name() string                          { return "noop" }
func (noopAI) CheckStatus(context.Context) ai.Status { return ai.Status{Provider: "noop"} }
func (noopAI) GenerateResponse(context.Context, string, *ai.GenerateOptions) (string, error) {
	return "", nil
}
func (noopAI) ExtractThemes(context.Context, string, bool) (string, error)    { return "", nil }
func (noopAI) SummarizeText(context.Context, string, bool) (string, error)    { return "", nil }
func (noopAI) FormatTranscript(context.Context, string, bool) (string, error) { return "", nil }

func newTestOrchestrator() *Orchestrator {
	logger := zap.NewNop()
	engine := synthesis.NewEngine(noopAI{}, config.SynthesisConfig{
		MinTranscriptLength: 100,
		SynthesisInterval:   time.Hour,
		MaxRoomsPerDialogue: 20,
	}, logger)
	return New(engine, passthroughEnhancer{}, analysis.NewKeywordClassifier(), 3, logger)
}

func TestThemeTallyAccumulates(t *testing.T) {
	o := newTestOrchestrator()
	ctx := context.Background()

	o.ProcessContribution(ctx, "p1", "Alex", "our schools need more teachers", entities.ContributionMetadata{})
	o.ProcessContribution(ctx, "p2", "Sam", "the school curriculum should cover climate change", entities.ContributionMetadata{})
	o.ProcessContribution(ctx, "p1", "Alex", "local jobs matter", entities.ContributionMetadata{})

	themes := o.TopThemes()
	if len(themes) == 0 {
		t.Fatal("expected a non-empty theme tally")
	}
	if themes[0].Theme != "education" || themes[0].Count != 2 {
		t.Errorf("top theme = %+v, want education x2", themes[0])
	}
}

func TestTopThemesCapAndTieBreak(t *testing.T) {
	o := newTestOrchestrator()
	ctx := context.Background()

	// One contribution per theme: all counts tie at 1, so order is
	// alphabetical and the list caps at the configured top count.
	o.ProcessContribution(ctx, "p1", "", "climate change worries me", entities.ContributionMetadata{})
	o.ProcessContribution(ctx, "p1", "", "our local community", entities.ContributionMetadata{})
	o.ProcessContribution(ctx, "p1", "", "health care access", entities.ContributionMetadata{})
	o.ProcessContribution(ctx, "p1", "", "digital technology", entities.ContributionMetadata{})

	themes := o.TopThemes()
	if len(themes) != 3 {
		t.Fatalf("expected cap of 3 themes, got %d", len(themes))
	}
	for i := 1; i < len(themes); i++ {
		if themes[i-1].Theme > themes[i].Theme {
			t.Errorf("tie-break not alphabetical: %v", themes)
		}
	}
}

func TestSnapshotDecoration(t *testing.T) {
	o := newTestOrchestrator()
	ctx := context.Background()

	o.Engine().InitializeDialogue("d1", synthesis.InitializeOptions{Title: "Futures"})
	o.Engine().AddRoom("d1", "r1", []string{"p1"})

	o.ProcessContribution(ctx, "p1", "Alex", "community gardens", entities.ContributionMetadata{})

	snapshot := o.Snapshot("d1")
	if snapshot == nil {
		t.Fatal("expected a snapshot for a known dialogue")
	}
	if snapshot.ActiveParticipantCount != 1 {
		t.Errorf("active participants = %d, want 1", snapshot.ActiveParticipantCount)
	}
	if len(snapshot.TopThemes) == 0 {
		t.Error("expected theme tally in snapshot")
	}

	if o.Snapshot("missing") != nil {
		t.Error("unknown dialogue should yield nil")
	}
}

func TestTrackerReuse(t *testing.T) {
	o := newTestOrchestrator()
	if o.Tracker("p1", "Alex") != o.Tracker("p1", "Alex") {
		t.Error("expected the same tracker instance per participant")
	}
	if o.Journey("unknown") != nil {
		t.Error("unknown participant should yield nil journey")
	}
	o.ProcessContribution(context.Background(), "p1", "Alex", "one two", entities.ContributionMetadata{})
	journey := o.Journey("p1")
	if journey == nil || journey.TotalWords != 2 {
		t.Errorf("journey = %+v, want 2 total words", journey)
	}
}
