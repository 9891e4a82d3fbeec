package analysis

import (
	"reflect"
	"testing"

	"github.com/dialogueworks/dialogue-facilitator/internal/domain/entities"
)

func TestThemes(t *testing.T) {
	kc := NewKeywordClassifier()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single theme",
			text: "We talked about climate change and carbon emissions",
			want: []string{"climate"},
		},
		{
			name: "multiple themes sorted",
			text: "Our schools need better funding and local jobs matter",
			want: []string{"community", "economy", "education"},
		},
		{
			name: "no match falls back to general",
			text: "no matching keywords here",
			want: []string{"general"},
		},
		{
			name: "empty text",
			text: "",
			want: []string{"general"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kc.Themes(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Themes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSentiment(t *testing.T) {
	kc := NewKeywordClassifier()

	tests := []struct {
		name string
		text string
		want entities.Sentiment
	}{
		{
			name: "positive majority",
			text: "I love this idea, it gives me so much hope",
			want: entities.SentimentPositive,
		},
		{
			name: "negative majority",
			text: "I am worried and frustrated about this problem",
			want: entities.SentimentNegative,
		},
		{
			name: "tie is neutral",
			text: "there is a good side but also a bad side",
			want: entities.SentimentNeutral,
		},
		{
			name: "no keywords is neutral",
			text: "the meeting starts at nine",
			want: entities.SentimentNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := kc.Sentiment(tt.text); got != tt.want {
				t.Errorf("Sentiment() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyPoints(t *testing.T) {
	kc := NewKeywordClassifier()

	t.Run("picks marked sentences", func(t *testing.T) {
		text := "The weather was nice. I think we need more bike lanes. " +
			"We should also plant trees downtown. Lunch was fine."
		got := kc.KeyPoints(text)
		want := []string{
			"I think we need more bike lanes",
			"We should also plant trees downtown",
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("KeyPoints() = %v, want %v", got, want)
		}
	})

	t.Run("caps at three", func(t *testing.T) {
		text := "I think one. I think two. I think three. I think four."
		if got := kc.KeyPoints(text); len(got) != 3 {
			t.Errorf("expected 3 key points, got %d", len(got))
		}
	})

	t.Run("falls back to first sentence", func(t *testing.T) {
		got := kc.KeyPoints("Nothing notable here. Still nothing.")
		want := []string{"Nothing notable here"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("KeyPoints() = %v, want %v", got, want)
		}
	})

	t.Run("empty text", func(t *testing.T) {
		if got := kc.KeyPoints(""); len(got) != 0 {
			t.Errorf("expected no key points, got %v", got)
		}
	})
}
