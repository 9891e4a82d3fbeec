package entities

import (
	"time"

	"github.com/google/uuid"
)

// Sentiment labels for a contribution
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// ContributionMetadata carries source details from the transcript
// transport (audio quality, enhancement service used, ...).
type ContributionMetadata struct {
	AudioQuality string `json:"audio_quality,omitempty"`
	Service      string `json:"service,omitempty"`
}

// Contribution is one processed speech turn from one participant.
// Records are immutable once created: only aggregate counters derived
// from them are ever recomputed.
type Contribution struct {
	ID                 uuid.UUID            `json:"id"`
	Timestamp          time.Time            `json:"timestamp"`
	RawTranscript      string               `json:"raw_transcript"`
	EnhancedTranscript string               `json:"enhanced_transcript"`
	WordCount          int                  `json:"word_count"`
	Themes             []string             `json:"themes"`
	Sentiment          Sentiment            `json:"sentiment"`
	KeyPoints          []string             `json:"key_points"`
	Metadata           ContributionMetadata `json:"metadata"`

	// Error holds the enhancement failure message when the raw text
	// had to be used as-is. Empty on the happy path.
	Error string `json:"error,omitempty"`
}

// Clone returns an independent copy so callers can hand out
// contribution values without exposing internal slices.
func (c *Contribution) Clone() Contribution {
	cp := *c
	cp.Themes = append([]string(nil), c.Themes...)
	cp.KeyPoints = append([]string(nil), c.KeyPoints...)
	return cp
}
