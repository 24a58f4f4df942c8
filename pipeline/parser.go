package pipeline

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/intellicredit/creditmemory/core"
)

// The reasoning service's output is an unreliable collaborator; parsing is
// a strict mini-grammar over literal tags, and every field has a fail-closed
// default. Absent a readable FINAL_STATUS the decision is REJECTED.
const (
	DefaultConfidence  = 50
	DefaultExplanation = "Decision based on historical similarity."
)

var (
	statusPattern     = regexp.MustCompile(`FINAL_STATUS:\s*\[?(APPROVED|REJECTED)\]?`)
	confidencePattern = regexp.MustCompile(`CONFIDENCE_LEVEL:\s*(\d+)%`)
	explainPattern    = regexp.MustCompile(`(?s)EXPLANATION:\s*(.*?)(?:SUGGESTIONS:|$)`)
	suggestPattern    = regexp.MustCompile(`(?s)SUGGESTIONS:\s*(.*)`)
)

// Verdict is the structured decision extracted from the oracle's free text.
type Verdict struct {
	Status      core.DecisionStatus
	Confidence  int
	Explanation string
	Suggestions []string
}

// ParseVerdict extracts the structured decision fields. It never fails:
// any unreadable field takes its documented default.
func ParseVerdict(raw string) Verdict {
	v := Verdict{
		Status:      core.DecisionRejected,
		Confidence:  DefaultConfidence,
		Explanation: DefaultExplanation,
	}

	if m := statusPattern.FindStringSubmatch(raw); m != nil {
		v.Status = core.DecisionStatus(m[1])
	}
	if m := confidencePattern.FindStringSubmatch(raw); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			if n > 100 {
				n = 100
			}
			v.Confidence = n
		}
	}
	if m := explainPattern.FindStringSubmatch(raw); m != nil {
		if text := strings.TrimSpace(m[1]); text != "" {
			v.Explanation = text
		}
	}
	if m := suggestPattern.FindStringSubmatch(raw); m != nil {
		v.Suggestions = splitSuggestions(m[1])
	}
	return v
}

// splitSuggestions turns the suggestions block into trimmed non-empty
// lines, stripping leading list markers.
func splitSuggestions(block string) []string {
	var out []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• \t")
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
