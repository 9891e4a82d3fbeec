package synthesis

import (
	"strings"
)

// maxParsedThemes caps the theme list pulled from generated text.
const maxParsedThemes = 5

// parseSection returns the lines between the first `##` heading whose
// title contains the keyword and the next `##` heading (or end of
// text). Matching is case-insensitive.
func parseSection(text, keyword string) []string {
	lines := strings.Split(text, "\n")
	keyword = strings.ToLower(keyword)

	inSection := false
	section := make([]string, 0)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "##") {
			if inSection {
				break
			}
			heading := strings.ToLower(strings.TrimLeft(trimmed, "# "))
			inSection = strings.Contains(heading, keyword)
			continue
		}
		if inSection && trimmed != "" {
			section = append(section, trimmed)
		}
	}
	return section
}

// parseThemes pulls numbered-list items from the "Themes" section.
func parseThemes(text string) []string {
	themes := make([]string, 0, maxParsedThemes)
	for _, line := range parseSection(text, "themes") {
		if item, ok := stripNumberPrefix(line); ok {
			themes = append(themes, item)
			if len(themes) == maxParsedThemes {
				break
			}
		}
	}
	return themes
}

// parseInsights pulls bulleted items from the "Insights" section.
func parseInsights(text string) []string {
	insights := make([]string, 0)
	for _, line := range parseSection(text, "insights") {
		if item, ok := stripBulletPrefix(line); ok {
			insights = append(insights, item)
		}
	}
	return insights
}

// stripNumberPrefix matches "1. item" / "2) item" style list lines.
func stripNumberPrefix(line string) (string, bool) {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(line) {
		return "", false
	}
	if line[i] != '.' && line[i] != ')' {
		return "", false
	}
	item := strings.TrimSpace(line[i+1:])
	if item == "" {
		return "", false
	}
	return item, true
}

// stripBulletPrefix matches "- item" / "* item" / "• item" lines.
func stripBulletPrefix(line string) (string, bool) {
	for _, prefix := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(line, prefix) {
			item := strings.TrimSpace(strings.TrimPrefix(line, prefix))
			if item == "" {
				return "", false
			}
			return item, true
		}
	}
	return "", false
}
