package analysis

import (
	"regexp"
	"strings"

	"github.com/dialogueworks/dialogue-facilitator/internal/domain/entities"
)

// Classifier derives themes, sentiment, and key points from enhanced
// transcript text. The keyword implementation below is deliberately
// simple; a model-backed implementation can replace it without
// touching the orchestration layer.
type Classifier interface {
	Themes(text string) []string
	Sentiment(text string) entities.Sentiment
	KeyPoints(text string) []string
}

// themeTaxonomy maps each theme to the keywords that signal it.
var themeTaxonomy = map[string][]string{
	"climate":    {"climate", "carbon", "emission", "warming", "renewable", "sustainab", "environment"},
	"technology": {"technology", "digital", "software", "internet", "online", "computer", "data", "device"},
	"community":  {"community", "neighborhood", "neighbour", "local", "together", "volunteer", "belonging"},
	"education":  {"education", "school", "teacher", "student", "learning", "curriculum", "university"},
	"health":     {"health", "medical", "doctor", "hospital", "wellness", "mental", "care"},
	"economy":    {"economy", "economic", "job", "employment", "business", "income", "afford", "money"},
	"justice":    {"justice", "equity", "equality", "rights", "fairness", "discrimination", "inclusion"},
}

var positiveWords = []string{
	"good", "great", "love", "hope", "excited", "happy", "wonderful",
	"agree", "better", "positive", "opportunity", "grateful", "inspiring",
}

var negativeWords = []string{
	"bad", "worried", "afraid", "angry", "sad", "terrible", "frustrat",
	"disagree", "worse", "negative", "problem", "concern", "struggle",
}

var keyPointMarkers = []string{
	"i think", "we should", "we need", "important", "the key", "what matters",
	"my hope", "i believe", "we could", "imagine if",
}

var sentenceSplit = regexp.MustCompile(`[.!?]+\s*`)

// KeywordClassifier is the deterministic keyword/regex implementation
// of Classifier.
type KeywordClassifier struct{}

// NewKeywordClassifier creates a KeywordClassifier
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

// Themes matches the text against the fixed taxonomy. There is always
// at least one theme: unmatched text yields ["general"].
func (kc *KeywordClassifier) Themes(text string) []string {
	lower := strings.ToLower(text)
	themes := make([]string, 0)
	for theme, keywords := range themeTaxonomy {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				themes = append(themes, theme)
				break
			}
		}
	}
	if len(themes) == 0 {
		return []string{"general"}
	}
	sortThemes(themes)
	return themes
}

// Sentiment counts positive and negative keyword hits; the majority
// wins and a tie is neutral.
func (kc *KeywordClassifier) Sentiment(text string) entities.Sentiment {
	lower := strings.ToLower(text)

	positive := 0
	for _, w := range positiveWords {
		positive += strings.Count(lower, w)
	}
	negative := 0
	for _, w := range negativeWords {
		negative += strings.Count(lower, w)
	}

	switch {
	case positive > negative:
		return entities.SentimentPositive
	case negative > positive:
		return entities.SentimentNegative
	default:
		return entities.SentimentNeutral
	}
}

// KeyPoints picks up to three sentences that carry an opinion or
// proposal marker, falling back to the first sentence when none match.
func (kc *KeywordClassifier) KeyPoints(text string) []string {
	sentences := sentenceSplit.Split(text, -1)
	points := make([]string, 0, 3)

	for _, sentence := range sentences {
		s := strings.TrimSpace(sentence)
		if s == "" {
			continue
		}
		lower := strings.ToLower(s)
		for _, marker := range keyPointMarkers {
			if strings.Contains(lower, marker) {
				points = append(points, s)
				break
			}
		}
		if len(points) == 3 {
			return points
		}
	}

	if len(points) == 0 {
		for _, sentence := range sentences {
			if s := strings.TrimSpace(sentence); s != "" {
				return []string{s}
			}
		}
	}
	return points
}

// sortThemes keeps theme output deterministic regardless of map
// iteration order.
func sortThemes(themes []string) {
	for i := 1; i < len(themes); i++ {
		for j := i; j > 0 && themes[j] < themes[j-1]; j-- {
			themes[j], themes[j-1] = themes[j-1], themes[j]
		}
	}
}
