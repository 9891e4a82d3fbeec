package synthesis

import (
	"reflect"
	"testing"
)

const sampleGeneration = `## Summary
The group is converging on local action.

## Collective Themes
1. Community resilience
2. Shared resources
3. Local food systems

## Cross-Room Patterns
Both rooms kept returning to neighborhood-scale solutions.

## Unique Insights
- One room connected food systems to school curricula
- Another proposed a tool-lending library

## Guiding Questions
What would it take to start this month?
`

func TestParseThemes(t *testing.T) {
	got := parseThemes(sampleGeneration)
	want := []string{"Community resilience", "Shared resources", "Local food systems"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseThemes() = %v, want %v", got, want)
	}
}

func TestParseThemesCapsAtFive(t *testing.T) {
	text := "## Themes\n1. a\n2. b\n3. c\n4. d\n5. e\n6. f\n"
	if got := parseThemes(text); len(got) != 5 {
		t.Errorf("expected 5 themes, got %d", len(got))
	}
}

func TestParseInsights(t *testing.T) {
	got := parseInsights(sampleGeneration)
	want := []string{
		"One room connected food systems to school curricula",
		"Another proposed a tool-lending library",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseInsights() = %v, want %v", got, want)
	}
}

func TestSectionEndsAtNextHeading(t *testing.T) {
	text := "## Collective Themes\n1. inside\n## Other\n2. outside\n"
	got := parseThemes(text)
	if !reflect.DeepEqual(got, []string{"inside"}) {
		t.Errorf("parseThemes() = %v, want [inside]", got)
	}
}

func TestParseMissingSections(t *testing.T) {
	text := "free prose with no headings at all"
	if got := parseThemes(text); len(got) != 0 {
		t.Errorf("expected no themes, got %v", got)
	}
	if got := parseInsights(text); len(got) != 0 {
		t.Errorf("expected no insights, got %v", got)
	}
}

func TestStripNumberPrefix(t *testing.T) {
	tests := []struct {
		line string
		want string
		ok   bool
	}{
		{"1. first", "first", true},
		{"12) twelfth", "twelfth", true},
		{"no number", "", false},
		{"3.", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := stripNumberPrefix(tt.line)
		if got != tt.want || ok != tt.ok {
			t.Errorf("stripNumberPrefix(%q) = (%q, %v), want (%q, %v)", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}
