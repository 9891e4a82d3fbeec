package synthesis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dialogueworks/dialogue-facilitator/internal/domain/entities"
)

// stageFramings embed the analytical lens for each lifecycle stage.
var stageFramings = map[entities.Stage]string{
	entities.StageConnect:  "Participants are getting to know each other. Focus on how trust is forming and where common ground is emerging across rooms.",
	entities.StageExplore:  "Participants are surfacing different perspectives. Focus on the diversity of viewpoints and the productive tensions between them.",
	entities.StageDiscover: "Participants are finding new possibilities together. Focus on the shared insights and unexpected connections crystallizing across rooms.",
	entities.StageHarvest:  "Participants are drawing conclusions. Focus on commitments, convergence, and the collective wisdom to carry forward.",
}

const defaultFraming = "Focus on the overall patterns and shared meaning emerging across rooms."

// themeErrorMarker replaces a room's theme text when its extraction
// failed. It still appears inline so facilitators can see which room
// was skipped.
const themeErrorMarker = "Error extracting themes"

// framingFor returns the stage-specific analytical framing
func framingFor(stage entities.Stage) string {
	if framing, ok := stageFramings[stage]; ok {
		return framing
	}
	return defaultFraming
}

// buildPrompt composes the cross-room synthesis prompt: dialogue
// stage, stage framing, every room's extracted theme text, and the
// fixed section headings the parser scans for.
func buildPrompt(dialogue *entities.Dialogue, roomThemes map[string]string) string {
	roomIDs := make([]string, 0, len(roomThemes))
	for id := range roomThemes {
		roomIDs = append(roomIDs, id)
	}
	sort.Strings(roomIDs)

	var b strings.Builder
	fmt.Fprintf(&b, "You are synthesizing a facilitated dialogue titled %q, currently in the %q stage.\n", dialogue.Title, dialogue.Stage)
	b.WriteString(framingFor(dialogue.Stage))
	b.WriteString("\n\nThemes extracted from each breakout room:\n\n")
	for _, id := range roomIDs {
		fmt.Fprintf(&b, "Room %s:\n%s\n\n", id, roomThemes[id])
	}
	b.WriteString(`Synthesize the collective conversation. Respond with exactly these sections:

## Summary
A short paragraph capturing the collective state of the dialogue.

## Collective Themes
A numbered list of at most five themes shared across rooms.

## Cross-Room Patterns
A short paragraph on patterns appearing in multiple rooms.

## Unique Insights
A bulleted list of insights that appeared in only one room but matter to all.

## Guiding Questions
Two or three questions to deepen the next round of conversation.
`)
	return b.String()
}
